package storage

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/loop"
)

// Recorder journals one game. Inputs are buffered in memory and written
// together with the result so the loop never waits on disk mid-game.
// It is safe for concurrent use: the UI may abandon a run while the loop
// is still recording it.
type Recorder struct {
	store *Store
	runID string

	mu     sync.Mutex
	inputs []Input
	done   bool
}

// Ensure Recorder implements loop.Recorder
var _ loop.Recorder = (*Recorder)(nil)

// NewRecorder begins a run and returns its recorder.
func (s *Store) NewRecorder(variant string, cfg snake.Config, interval time.Duration) (*Recorder, error) {
	id, err := s.BeginRun(variant, cfg, interval)
	if err != nil {
		return nil, err
	}
	return &Recorder{store: s, runID: id}, nil
}

// RunID returns the ID of the run being recorded.
func (r *Recorder) RunID() string {
	return r.runID
}

// RecordInput buffers the direction consumed on tick.
func (r *Recorder) RecordInput(tick uint64, d snake.Direction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return nil
	}
	r.inputs = append(r.inputs, Input{Tick: tick, Direction: d})
	return nil
}

// Finish writes the inputs and the final result.
func (r *Recorder) Finish(final snake.Snapshot) error {
	return r.close(final, final.Outcome.String())
}

// Abandon writes what was played so far and marks the run as quit.
// It does nothing if the run already finished.
func (r *Recorder) Abandon(last snake.Snapshot) error {
	return r.close(last, OutcomeQuit)
}

func (r *Recorder) close(snap snake.Snapshot, outcome string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return nil
	}
	r.done = true
	return r.store.FinishRun(r.runID, r.inputs, snap.Score, snap.Tick, outcome)
}
