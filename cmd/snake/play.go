package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagDifficulty string
	flagNoRecord   bool
	flagCustom     bool
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the given board, or pick one from a menu.

Controls:
  Arrows/WASD/HJKL - Steer
  P                - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot to ~/.snake/screenshots
  Q/Esc/Ctrl+C     - Quit

Difficulty options (the speed never changes during a game):
  easy   - 200ms per move
  normal - 140ms per move
  hard   - 90ms per move
  fixed  - timing.tick_interval from the config

Examples:
  snake play
  snake play classic
  snake play wrap --difficulty hard
  snake play tiny --seed 7 --no-record
  snake play --custom --config ./my-board.yaml`,
	Args: cobra.MatchAll(cobra.MaximumNArgs(1), knownBoard),
	RunE: runPlay,
}

// knownBoard rejects an unknown board before the terminal is taken over.
func knownBoard(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || flagCustom || registry.Exists(args[0]) {
		return nil
	}
	return fmt.Errorf("unknown board %q, run 'snake list' to see available boards", args[0])
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save this session to the replay journal")
	playCmd.Flags().BoolVar(&flagCustom, "custom", false, "Use the board from the config file instead of a preset board")
}

// board is a resolved grid with the name it is journaled under.
type board struct {
	id    string
	title string
	grid  config.GridConfig
}

// boardFor resolves a registered variant, or the config's own grid for --custom.
func boardFor(id string) (board, error) {
	if flagCustom {
		return board{id: "custom", title: "Custom", grid: appConfig.Grid}, nil
	}
	v, err := registry.Get(id)
	if err != nil {
		return board{}, fmt.Errorf("unknown board %q, run 'snake list' to see available boards", id)
	}
	return board{
		id:    v.ID,
		title: v.Title,
		grid:  config.GridConfig{Width: v.Width, Height: v.Height, Boundary: v.Boundary},
	}, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	if err := requireTerminal(); err != nil {
		return err
	}

	preset, err := config.ParsePreset(appConfig.Timing.Difficulty)
	if flagDifficulty != "" {
		preset, err = config.ParsePreset(flagDifficulty)
	}
	if err != nil {
		return err
	}

	var store *storage.Store
	if appConfig.Storage.Record && !flagNoRecord {
		store = openStore()
	}
	if store != nil {
		defer store.Close()
	}

	if len(args) == 1 || flagCustom {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		b, err := boardFor(id)
		if err != nil {
			return err
		}
		return play(cmd.Context(), store, b, preset)
	}

	// Menu loop: return to the picker after every session.
	for {
		width, height := termSize()
		result, err := tui.RunMenu(preset, appConfig.Timing.TickInterval, width, height)
		if err != nil {
			return err
		}
		if result.Quit {
			return nil
		}
		preset = result.Difficulty

		if result.WantsReplays {
			if err := browseReplays(cmd.Context(), store); err != nil {
				return err
			}
			continue
		}

		b := board{
			id:    result.Variant.ID,
			title: result.Variant.Title,
			grid: config.GridConfig{
				Width:    result.Variant.Width,
				Height:   result.Variant.Height,
				Boundary: result.Variant.Boundary,
			},
		}
		if err := play(cmd.Context(), store, b, preset); err != nil {
			return err
		}
	}
}

// play runs one session on b. store may be nil.
func play(ctx context.Context, store *storage.Store, b board, preset config.DifficultyPreset) error {
	cfg := appConfig
	cfg.Grid = b.grid
	cfg.Timing.Difficulty = string(preset)
	if err := cfg.Validate(); err != nil {
		return err
	}
	interval := cfg.Interval()

	newRound := func() (tui.Round, error) {
		seed := flagSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		gcfg, err := cfg.Game(seed)
		if err != nil {
			return tui.Round{}, err
		}
		game, err := snake.NewGame(gcfg)
		if err != nil {
			return tui.Round{}, err
		}

		round := tui.Round{Game: game}
		if store != nil {
			rec, err := store.NewRecorder(b.id, gcfg, interval)
			if err != nil {
				logger.Warn("recording disabled for this round", "error", err)
			} else {
				round.Recorder = rec
			}
		}
		logger.Info("round started", "board", b.id, "seed", seed, "interval", interval)
		return round, nil
	}

	summary, err := tui.Run(ctx, tui.Options{
		Title:         fmt.Sprintf(" %s · %s", b.title, preset),
		Interval:      interval,
		Logger:        logger,
		NewRound:      newRound,
		ScreenshotDir: filepath.Join(config.DataDir(), "screenshots"),
	})
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}

func printSummary(s tui.Summary) {
	if s.Rounds == 0 {
		return
	}
	last := s.Last
	fmt.Printf("Score: %d  Length: %d  Ticks: %d", last.Score, len(last.Body), last.Tick)
	if last.Over() {
		fmt.Printf("  (%s)", last.Outcome)
	}
	fmt.Println()
	if n := len(s.RunIDs); n > 0 {
		fmt.Printf("Watch it again: snake replay %s\n", shortID(s.RunIDs[n-1]))
	}
}

func shortID(id string) string {
	return storage.Run{ID: id}.ShortID()
}

// requireTerminal fails fast when stdin or stdout is not a TTY.
func requireTerminal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("snake needs an interactive terminal")
	}
	return nil
}

// termSize returns the terminal size, falling back to 80x24.
func termSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
