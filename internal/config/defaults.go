package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultConfig returns the hardcoded configuration.
// It matches defaults/snake.yaml and is used if the embedded file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Grid: GridConfig{
			Width:    24,
			Height:   14,
			Boundary: "wall",
		},
		Snake: SnakeConfig{
			StartLength: 3,
		},
		Timing: TimingConfig{
			Difficulty:   string(DifficultyNormal),
			TickInterval: 140 * time.Millisecond,
		},
		Storage: StorageConfig{
			Path:   "~/.snake/replays.db",
			Record: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
