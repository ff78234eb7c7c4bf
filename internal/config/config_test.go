package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "snake.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Embedded defaults = %+v, expected %+v", cfg, DefaultConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
grid:
  width: 12
  boundary: wrap
timing:
  difficulty: fixed
  tick_interval: 75ms
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Grid.Width != 12 || cfg.Grid.Boundary != "wrap" {
		t.Errorf("Grid = %+v, expected width 12 wrap", cfg.Grid)
	}
	// Unset fields keep their defaults
	if cfg.Grid.Height != 14 || cfg.Snake.StartLength != 3 {
		t.Errorf("Partial file should keep defaults, got %+v", cfg)
	}
	if cfg.Interval() != 75*time.Millisecond {
		t.Errorf("Interval() = %v, expected 75ms", cfg.Interval())
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Load() of a missing explicit file should fail")
	}
}

func TestLoadInvalid(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "grid:\n  width: 3\n")

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load() = %+v, expected defaults", cfg)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, filepath.Join(work, "configs"), "grid:\n  width: 30\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Grid.Width != 30 {
		t.Errorf("Local configs/snake.yaml should be used, width = %d", cfg.Grid.Width)
	}

	if err := os.MkdirAll(filepath.Join(home, ".snake"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, ".snake", "config.yaml"), []byte("grid:\n  width: 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Grid.Width != 40 {
		t.Errorf("User config should win over local, width = %d", cfg.Grid.Width)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"min grid", func(c *Config) { c.Grid.Width, c.Grid.Height = 5, 5 }, true},
		{"narrow grid", func(c *Config) { c.Grid.Width = 4 }, false},
		{"short grid", func(c *Config) { c.Grid.Height = 4 }, false},
		{"wrap", func(c *Config) { c.Grid.Boundary = "wrap" }, true},
		{"bad boundary", func(c *Config) { c.Grid.Boundary = "bounce" }, false},
		{"long snake", func(c *Config) { c.Snake.StartLength = 23 }, false},
		{"negative snake", func(c *Config) { c.Snake.StartLength = -1 }, false},
		{"bad difficulty", func(c *Config) { c.Timing.Difficulty = "insane" }, false},
		{"fixed without interval", func(c *Config) {
			c.Timing.Difficulty = "fixed"
			c.Timing.TickInterval = 0
		}, false},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.valid {
				t.Errorf("Validate() = %v, expected valid=%v", err, tt.valid)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestGameConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.Boundary = "wrap"

	gc, err := cfg.Game(42)
	if err != nil {
		t.Fatalf("Game() failed: %v", err)
	}
	expected := snake.Config{Width: 24, Height: 14, Boundary: snake.BoundaryWrap, StartLength: 3, Seed: 42}
	if gc != expected {
		t.Errorf("Game() = %+v, expected %+v", gc, expected)
	}
	if _, err := snake.NewGame(gc); err != nil {
		t.Errorf("NewGame() rejected a converted config: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/player")

	tests := []struct {
		in, expected string
	}{
		{"~/.snake/replays.db", "/home/player/.snake/replays.db"},
		{"/tmp/x.db", "/tmp/x.db"},
		{"~", "~"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandHome(tt.in); got != tt.expected {
			t.Errorf("ExpandHome(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
