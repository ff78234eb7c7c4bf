package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/input"
)

type frameSink struct {
	frames chan snake.Snapshot
}

func newFrameSink() *frameSink {
	return &frameSink{frames: make(chan snake.Snapshot, 256)}
}

func (f *frameSink) Draw(snap snake.Snapshot) {
	f.frames <- snap
}

func (f *frameSink) next(t *testing.T) snake.Snapshot {
	t.Helper()
	select {
	case s := <-f.frames:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a frame")
		return snake.Snapshot{}
	}
}

type recordedInput struct {
	tick uint64
	dir  snake.Direction
}

type memRecorder struct {
	inputs   []recordedInput
	finished []snake.Snapshot
	err      error
}

func (r *memRecorder) RecordInput(tick uint64, d snake.Direction) error {
	r.inputs = append(r.inputs, recordedInput{tick, d})
	return r.err
}

func (r *memRecorder) Finish(final snake.Snapshot) error {
	r.finished = append(r.finished, final)
	return r.err
}

// manualTicker hands the loop a channel the test controls.
func manualTicker(ch chan time.Time) Ticker {
	return func(time.Duration) (<-chan time.Time, func()) {
		return ch, func() {}
	}
}

func newTestGame(t *testing.T, cells []snake.Cell, heading snake.Direction, food snake.Cell) *snake.Game {
	t.Helper()
	g, err := snake.Restore(snake.Config{Width: 10, Height: 10, Seed: 5}, cells, heading, food)
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	return g
}

type runResult struct {
	res Result
	err error
}

func startLoop(l *Loop, ctx context.Context) chan runResult {
	out := make(chan runResult, 1)
	go func() {
		res, err := l.Run(ctx)
		out <- runResult{res, err}
	}()
	return out
}

func waitResult(t *testing.T, ch chan runResult) runResult {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
		return runResult{}
	}
}

func TestRunUntilWall(t *testing.T) {
	game := newTestGame(t, []snake.Cell{{Row: 2, Col: 7}}, snake.DirRight, snake.Cell{Row: 9, Col: 0})
	ticks := make(chan time.Time, 10)
	for range 10 {
		ticks <- time.Now()
	}
	sink := newFrameSink()
	rec := &memRecorder{}

	l := New(game, input.NewChannel(), sink, Options{Ticker: manualTicker(ticks), Recorder: rec})
	res, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if res.Quit {
		t.Error("Result.Quit should be false for a game over")
	}
	if res.Final.Outcome != snake.OutcomeWall || res.Final.Tick != 3 {
		t.Errorf("Final outcome %v at tick %d, expected wall at tick 3", res.Final.Outcome, res.Final.Tick)
	}
	if len(sink.frames) != 4 {
		t.Errorf("Expected 4 frames (initial + 3 ticks), got %d", len(sink.frames))
	}
	if len(rec.finished) != 1 || rec.finished[0].Outcome != snake.OutcomeWall {
		t.Errorf("Recorder.Finish calls = %v", rec.finished)
	}
	if len(ticks) != 7 {
		t.Errorf("Loop should stop consuming ticks at game over, %d left", len(ticks))
	}
}

func TestRunConsumesInputOncePerTick(t *testing.T) {
	game := newTestGame(t, []snake.Cell{{Row: 2, Col: 2}, {Row: 2, Col: 1}}, snake.DirRight, snake.Cell{Row: 9, Col: 9})
	ticks := make(chan time.Time)
	sink := newFrameSink()
	rec := &memRecorder{}
	ch := input.NewChannel()

	l := New(game, ch, sink, Options{Ticker: manualTicker(ticks), Recorder: rec})
	done := startLoop(l, context.Background())
	sink.next(t) // initial frame

	ch.Send(input.SignalUp)
	ch.Send(input.SignalDown) // latest wins
	ticks <- time.Now()
	f1 := sink.next(t)
	if f1.Head() != (snake.Cell{Row: 3, Col: 2}) || f1.Heading != snake.DirDown {
		t.Errorf("After tick 1: head %v heading %v, expected (3,2) down", f1.Head(), f1.Heading)
	}

	ticks <- time.Now()
	f2 := sink.next(t)
	if f2.Head() != (snake.Cell{Row: 4, Col: 2}) {
		t.Errorf("After tick 2: head %v, expected (4,2)", f2.Head())
	}

	ch.Quit()
	r := waitResult(t, done)
	if r.err != nil || !r.res.Quit {
		t.Errorf("Run() = %+v, %v; expected quit", r.res, r.err)
	}

	if len(rec.inputs) != 1 || rec.inputs[0] != (recordedInput{1, snake.DirDown}) {
		t.Errorf("Recorded inputs = %v, expected [{1 down}]", rec.inputs)
	}
	if len(rec.finished) != 0 {
		t.Error("Quit should not finish the recording")
	}
}

func TestRunPaused(t *testing.T) {
	game := newTestGame(t, []snake.Cell{{Row: 2, Col: 2}}, snake.DirRight, snake.Cell{Row: 9, Col: 9})
	ticks := make(chan time.Time)
	sink := newFrameSink()
	ch := input.NewChannel()

	l := New(game, ch, sink, Options{Ticker: manualTicker(ticks)})
	done := startLoop(l, context.Background())
	sink.next(t)

	ch.Send(input.SignalPause)
	ch.Send(input.SignalDown)
	ticks <- time.Now()
	f := sink.next(t)
	if !f.Paused || f.Tick != 0 || f.Head() != (snake.Cell{Row: 2, Col: 2}) {
		t.Errorf("Paused frame = %+v, expected no movement", f)
	}

	// The direction pressed while paused applies on resume.
	ch.Send(input.SignalPause)
	ticks <- time.Now()
	f = sink.next(t)
	if f.Paused || f.Head() != (snake.Cell{Row: 3, Col: 2}) {
		t.Errorf("Resumed frame head %v paused %v, expected (3,2) running", f.Head(), f.Paused)
	}

	ch.Quit()
	waitResult(t, done)
}

func TestRunContextCancel(t *testing.T) {
	game := newTestGame(t, []snake.Cell{{Row: 2, Col: 2}}, snake.DirRight, snake.Cell{Row: 9, Col: 9})
	sink := newFrameSink()
	ctx, cancel := context.WithCancel(context.Background())

	l := New(game, input.NewChannel(), sink, Options{Ticker: manualTicker(make(chan time.Time))})
	done := startLoop(l, ctx)
	sink.next(t)

	cancel()
	r := waitResult(t, done)
	if !r.res.Quit || r.err != nil {
		t.Errorf("Run() = %+v, %v; expected quit without error", r.res, r.err)
	}
}

func TestQuitDoesNotWaitForInterval(t *testing.T) {
	game := newTestGame(t, []snake.Cell{{Row: 2, Col: 2}}, snake.DirRight, snake.Cell{Row: 9, Col: 9})
	sink := newFrameSink()
	ch := input.NewChannel()

	l := New(game, ch, sink, Options{Interval: time.Hour})
	done := startLoop(l, context.Background())
	sink.next(t)

	start := time.Now()
	ch.Quit()
	waitResult(t, done)
	if time.Since(start) > time.Second {
		t.Error("Quit should stop the loop without waiting for the tick interval")
	}
}

func TestRunRealTicker(t *testing.T) {
	game := newTestGame(t, []snake.Cell{{Row: 5, Col: 7}}, snake.DirRight, snake.Cell{Row: 0, Col: 0})
	sink := newFrameSink()

	l := New(game, input.NewChannel(), sink, Options{Interval: time.Millisecond})
	res, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Final.Outcome != snake.OutcomeWall {
		t.Errorf("Outcome = %v, expected wall", res.Final.Outcome)
	}
}

func TestRunFinishedGame(t *testing.T) {
	game := newTestGame(t, []snake.Cell{{Row: 2, Col: 9}}, snake.DirRight, snake.Cell{Row: 9, Col: 9})
	if _, err := game.Tick(nil); err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}
	sink := newFrameSink()

	l := New(game, input.NewChannel(), sink, Options{Ticker: manualTicker(make(chan time.Time))})
	res, err := l.Run(context.Background())
	if err != nil || !res.Final.Over() {
		t.Errorf("Run() on a finished game = %+v, %v", res, err)
	}
	if len(sink.frames) != 1 {
		t.Errorf("Expected only the final frame, got %d", len(sink.frames))
	}
}

func TestRecorderErrorsAreNotFatal(t *testing.T) {
	game := newTestGame(t, []snake.Cell{{Row: 2, Col: 8}}, snake.DirRight, snake.Cell{Row: 9, Col: 9})
	ticks := make(chan time.Time, 5)
	for range 5 {
		ticks <- time.Now()
	}
	ch := input.NewChannel()
	ch.Send(input.SignalRight)
	rec := &memRecorder{err: errors.New("disk full")}

	l := New(game, ch, newFrameSink(), Options{Ticker: manualTicker(ticks), Recorder: rec})
	res, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Final.Outcome != snake.OutcomeWall {
		t.Errorf("Outcome = %v, expected wall", res.Final.Outcome)
	}
}
