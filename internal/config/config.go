// Package config provides YAML-based configuration loading and difficulty
// presets for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains all configuration for the game and its surroundings.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Snake   SnakeConfig   `yaml:"snake"`
	Timing  TimingConfig  `yaml:"timing"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// GridConfig defines the board.
type GridConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Boundary string `yaml:"boundary"` // "wall" or "wrap"
}

// SnakeConfig defines the starting snake.
type SnakeConfig struct {
	StartLength int `yaml:"start_length"`
}

// TimingConfig picks the constant tick interval.
type TimingConfig struct {
	Difficulty   string        `yaml:"difficulty"`    // easy, normal, hard or fixed
	TickInterval time.Duration `yaml:"tick_interval"` // Used by the fixed preset
}

// StorageConfig defines where the replay journal lives.
type StorageConfig struct {
	Path   string `yaml:"path"`
	Record bool   `yaml:"record"`
}

// LogConfig defines the log file. An empty File discards logs.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Validate reports the first problem found, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Grid.Width < snake.MinGridSize || c.Grid.Height < snake.MinGridSize {
		return fmt.Errorf("%w: grid %dx%d is smaller than %dx%d",
			ErrInvalidConfig, c.Grid.Width, c.Grid.Height, snake.MinGridSize, snake.MinGridSize)
	}
	if _, err := snake.ParseBoundary(c.Grid.Boundary); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Snake.StartLength < 0 || c.Snake.StartLength > c.Grid.Width-2 {
		return fmt.Errorf("%w: start length %d does not fit a grid %d wide",
			ErrInvalidConfig, c.Snake.StartLength, c.Grid.Width)
	}
	preset, err := ParsePreset(c.Timing.Difficulty)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if preset == DifficultyFixed && c.Timing.TickInterval <= 0 {
		return fmt.Errorf("%w: fixed difficulty needs a positive tick_interval", ErrInvalidConfig)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

// Interval returns the tick interval selected by the difficulty preset.
// The config must be valid.
func (c Config) Interval() time.Duration {
	preset, _ := ParsePreset(c.Timing.Difficulty)
	return IntervalForPreset(preset, c.Timing.TickInterval)
}

// Game converts the board settings into an engine config.
func (c Config) Game(seed int64) (snake.Config, error) {
	boundary, err := snake.ParseBoundary(c.Grid.Boundary)
	if err != nil {
		return snake.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return snake.Config{
		Width:       c.Grid.Width,
		Height:      c.Grid.Height,
		Boundary:    boundary,
		StartLength: c.Snake.StartLength,
		Seed:        seed,
	}, nil
}
