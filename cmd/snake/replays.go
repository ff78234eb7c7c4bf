package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/input"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagVerify bool

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded runs",
	Long: `Opens a table of the most recent runs in the replay journal.

Controls:
  Up/Down  - Select a run
  Enter    - Watch it
  V        - Verify it reproduces
  X        - Delete it
  Esc/Q    - Leave`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Watch or verify a recorded run",
	Long: `Plays a recorded run back at its original speed. The id may be any
unique prefix of the run ID shown by 'snake replays'.

With --verify the run is re-simulated without a terminal and its score,
outcome and length are checked against the journal. The exit code is 1
if they differ.

Examples:
  snake replay 1f3a9c2e
  snake replay 1f3a --verify`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagVerify, "verify", false, "Re-simulate and check the recorded result")
}

func runReplays(cmd *cobra.Command, _ []string) error {
	if err := requireTerminal(); err != nil {
		return err
	}
	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	return browseReplays(cmd.Context(), store)
}

// browseReplays shows the browser until the user leaves, playing chosen runs in between.
func browseReplays(ctx context.Context, store *storage.Store) error {
	if store == nil {
		return errors.New("replay journal is not available")
	}
	for {
		width, height := termSize()
		id, _, err := tui.RunReplays(store, width, height)
		if err != nil {
			return err
		}
		if id == "" {
			return nil
		}
		if err := watch(ctx, store, id); err != nil {
			return err
		}
	}
}

func runReplay(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagVerify {
		return verify(store, args[0])
	}
	if err := requireTerminal(); err != nil {
		return err
	}
	return watch(cmd.Context(), store, args[0])
}

func verify(store *storage.Store, id string) error {
	rec, err := replay.Load(store, id)
	if err != nil {
		return err
	}
	report, err := replay.Verify(rec)
	if err != nil {
		logger.Error("replay verification failed", "run", rec.Run.ID, "error", err)
		return err
	}
	fmt.Printf("Run %s reproduces: score %d, %s after %d ticks\n",
		rec.Run.ShortID(), report.Actual.Score, rec.Run.Outcome, report.Actual.Tick)
	return nil
}

// watch plays a recorded run back through the tick loop.
func watch(ctx context.Context, store *storage.Store, id string) error {
	rec, err := replay.Load(store, id)
	if err != nil {
		return err
	}

	interval := rec.Run.Interval
	if interval <= 0 {
		interval = appConfig.Interval()
	}

	newRound := func() (tui.Round, error) {
		game, err := rec.Game()
		if err != nil {
			return tui.Round{}, err
		}
		ch := input.NewChannel()
		return tui.Round{Game: game, Channel: ch, Source: rec.Source(ch)}, nil
	}

	logger.Info("watching replay", "run", rec.Run.ID, "moves", len(rec.Moves))
	_, err = tui.Run(ctx, tui.Options{
		Title:         fmt.Sprintf(" Replay %s · %s · score %d", rec.Run.ShortID(), rec.Run.Variant, rec.Run.Score),
		Interval:      interval,
		Logger:        logger,
		NewRound:      newRound,
		ScreenshotDir: filepath.Join(config.DataDir(), "screenshots"),
	})
	return err
}
