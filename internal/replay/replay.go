// Package replay loads journaled runs and re-simulates them.
//
// A run is fully determined by its settings, its seed and the directions
// consumed per tick, so replaying those through a fresh game must reproduce
// the recorded score, outcome and tick count.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/input"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// ErrMismatch is wrapped when a re-simulation diverges from the journal.
var ErrMismatch = errors.New("replay: run does not reproduce")

// Journal is the read side of the replay store.
type Journal interface {
	Run(idOrPrefix string) (storage.Run, error)
	Inputs(runID string) ([]storage.Input, error)
}

// Recording is a run with its inputs keyed by tick.
type Recording struct {
	Run   storage.Run
	Moves map[uint64]snake.Direction
}

// Load fetches a run and its inputs.
func Load(j Journal, idOrPrefix string) (Recording, error) {
	run, err := j.Run(idOrPrefix)
	if err != nil {
		return Recording{}, err
	}
	inputs, err := j.Inputs(run.ID)
	if err != nil {
		return Recording{}, err
	}

	moves := make(map[uint64]snake.Direction, len(inputs))
	for _, in := range inputs {
		moves[in.Tick] = in.Direction
	}
	return Recording{Run: run, Moves: moves}, nil
}

// Game creates the initial game of the recording.
func (r Recording) Game() (*snake.Game, error) {
	return snake.NewGame(r.Run.Game)
}

// Source returns a tick-keyed input source; quit and pause come from live.
func (r Recording) Source(live *input.Channel) *input.Script {
	return input.NewScript(r.Moves, live)
}

// Report is the outcome of a verification.
type Report struct {
	Expected snake.Snapshot // Score, Tick and Outcome from the journal
	Actual   snake.Snapshot
}

// OK reports whether the re-simulation matches.
func (r Report) OK() bool {
	return r.Expected.Score == r.Actual.Score &&
		r.Expected.Tick == r.Actual.Tick &&
		r.Expected.Outcome == r.Actual.Outcome
}

// Verify re-simulates the recording without a clock or renderer.
// Abandoned runs are replayed up to their last recorded tick and are expected
// to still be running there.
func Verify(rec Recording) (Report, error) {
	run := rec.Run
	if run.Outcome == "" {
		return Report{}, fmt.Errorf("replay: run %s is still in progress", run.ShortID())
	}

	game, err := rec.Game()
	if err != nil {
		return Report{}, fmt.Errorf("replay: run %s: %w", run.ShortID(), err)
	}

	report := Report{Expected: snake.Snapshot{
		Score:   run.Score,
		Tick:    run.Ticks,
		Outcome: snake.ParseOutcome(run.Outcome),
	}}

	for game.Phase() == snake.PhaseRunning && game.Ticks() < run.Ticks {
		var pending *snake.Direction
		if d, ok := rec.Moves[game.Ticks()+1]; ok {
			pending = &d
		}
		if _, err := game.Tick(pending); err != nil {
			return report, fmt.Errorf("replay: run %s: %w", run.ShortID(), err)
		}
	}

	report.Actual = game.Snapshot()
	if !report.OK() {
		return report, fmt.Errorf("%w: expected score %d outcome %s at tick %d, got score %d outcome %s at tick %d",
			ErrMismatch,
			report.Expected.Score, report.Expected.Outcome, report.Expected.Tick,
			report.Actual.Score, report.Actual.Outcome, report.Actual.Tick)
	}
	return report, nil
}
