// snake is a terminal snake game with a replay journal.
//
// Usage:
//
//	snake play [variant]     - Play a board (picker when omitted)
//	snake list               - List available boards
//	snake replays            - Browse recorded runs
//	snake replay <id>        - Watch a recorded run
//	snake replay <id> --verify
//	                         - Re-simulate a run and check its result
//
// Global flags:
//
//	--config <path>     - Config YAML (default search: ~/.snake/config.yaml, ./configs/snake.yaml)
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set replay journal path (default: ~/.snake/replays.db)
//	--log-file <path>   - Write logs to a file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

var (
	appConfig config.Config
	logger    = log.New(io.Discard)
	logFile   *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - steer a growing snake in your terminal",
	Long: `Snake is a terminal game: eat food to grow, avoid the walls and your own tail.

Available commands:
  play     - Play a board
  list     - Show all boards
  replays  - Browse recorded runs
  replay   - Watch or verify one run

Examples:
  snake play
  snake play classic --difficulty hard
  snake play wrap --seed 42
  snake replay 1f3a9c2e --verify`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to replay journal (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
}

// setup loads the config and opens the log file before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg

	l, f, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	logger, logFile = l, f
	logger.Debug("config loaded", "command", cmd.Name(), "grid", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height))
	return nil
}

// newLogger builds the file logger. The game owns the terminal, so logs never go to stderr.
func newLogger(cfg config.LogConfig) (*log.Logger, *os.File, error) {
	if cfg.File == "" {
		return log.New(io.Discard), nil, nil
	}

	f, err := os.OpenFile(config.ExpandHome(cfg.File), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
	})
	if cfg.Level != "" {
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("invalid log level: %w", err)
		}
		l.SetLevel(level)
	}
	return l, f, nil
}

// openStore opens the journal, or returns nil with a warning if it cannot.
func openStore() *storage.Store {
	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay journal: %v\n", err)
		logger.Warn("could not open replay journal", "error", err)
		return nil
	}
	return store
}
