package config

import (
	"fmt"
	"strings"
	"time"
)

// DifficultyPreset represents a named difficulty level.
// Every preset keeps the interval constant for the whole game.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset parses a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// IntervalForPreset returns the tick interval for a preset.
// The fixed preset uses the configured interval.
func IntervalForPreset(preset DifficultyPreset, configured time.Duration) time.Duration {
	switch preset {
	case DifficultyEasy:
		return 200 * time.Millisecond
	case DifficultyHard:
		return 90 * time.Millisecond
	case DifficultyFixed:
		if configured > 0 {
			return configured
		}
	}
	return 140 * time.Millisecond
}

// IsFixedPreset returns true if the preset takes the interval from the config.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
