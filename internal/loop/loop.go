// Package loop drives a game at a fixed wall-clock interval.
//
// Each wake-up reads and clears the pending input once, applies one tick,
// and hands an immutable snapshot to the renderer. The loop ends when the
// game is over, when the input source signals quit, or when the context is
// cancelled; in every case it stops before the next interval elapses.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// DefaultInterval is the tick interval used when none is configured.
const DefaultInterval = 140 * time.Millisecond

// Source supplies directions and the out-of-band quit and pause state.
// input.Channel and input.Script implement it.
type Source interface {
	Take() (snake.Direction, bool)
	Paused() bool
	Done() <-chan struct{}
}

// Renderer draws frames. Draw must not block for long; it runs on the loop goroutine.
type Renderer interface {
	Draw(snap snake.Snapshot)
}

// Recorder is notified of every consumed direction and of the final state.
// Failures are logged and otherwise ignored.
type Recorder interface {
	RecordInput(tick uint64, d snake.Direction) error
	Finish(final snake.Snapshot) error
}

// Ticker produces wake-ups. The stop function releases its resources.
type Ticker func(interval time.Duration) (ticks <-chan time.Time, stop func())

// Options configures a Loop. Zero values pick sensible defaults.
type Options struct {
	Interval time.Duration
	Recorder Recorder
	Logger   *log.Logger
	Ticker   Ticker
}

// Result describes how a run ended.
type Result struct {
	Final snake.Snapshot
	Quit  bool // Stopped by the player or the context rather than by game over
}

// Loop owns a game for the duration of Run.
type Loop struct {
	game     *snake.Game
	source   Source
	renderer Renderer
	recorder Recorder
	interval time.Duration
	ticker   Ticker
	logger   *log.Logger
}

// New creates a loop for game reading from source and drawing to renderer.
func New(game *snake.Game, source Source, renderer Renderer, opts Options) *Loop {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Ticker == nil {
		opts.Ticker = realTicker
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Loop{
		game:     game,
		source:   source,
		renderer: renderer,
		recorder: opts.Recorder,
		interval: opts.Interval,
		ticker:   opts.Ticker,
		logger:   opts.Logger.WithPrefix("loop"),
	}
}

func realTicker(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

// Run blocks until the game ends, the source quits or ctx is cancelled.
// The only error it returns is a rejected tick, which means the game was
// already over when handed to the loop.
func (l *Loop) Run(ctx context.Context) (Result, error) {
	snap := l.game.Snapshot()
	l.renderer.Draw(snap)
	if snap.Over() {
		return Result{Final: snap}, nil
	}

	ticks, stop := l.ticker(l.interval)
	defer stop()

	l.logger.Debug("loop started", "interval", l.interval, "width", snap.Width, "height", snap.Height)

	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("loop cancelled", "tick", l.game.Ticks())
			return Result{Final: l.game.Snapshot(), Quit: true}, nil
		case <-l.source.Done():
			l.logger.Debug("quit requested", "tick", l.game.Ticks())
			return Result{Final: l.game.Snapshot(), Quit: true}, nil
		case <-ticks:
		}

		// A quit that raced with the tick still wins.
		select {
		case <-l.source.Done():
			return Result{Final: l.game.Snapshot(), Quit: true}, nil
		default:
		}

		if l.source.Paused() {
			paused := l.game.Snapshot()
			paused.Paused = true
			l.renderer.Draw(paused)
			continue
		}

		next, err := l.step()
		if err != nil {
			return Result{Final: l.game.Snapshot()}, err
		}
		l.renderer.Draw(next)

		if next.Over() {
			l.logger.Info("game over", "outcome", next.Outcome, "score", next.Score, "ticks", next.Tick)
			l.finish(next)
			return Result{Final: next}, nil
		}
	}
}

// step consumes the pending input and advances the game once.
func (l *Loop) step() (snake.Snapshot, error) {
	var pending *snake.Direction
	if d, ok := l.source.Take(); ok {
		pending = &d
		if l.recorder != nil {
			if err := l.recorder.RecordInput(l.game.Ticks()+1, d); err != nil {
				l.logger.Warn("could not record input", "error", err)
			}
		}
	}

	ev, err := l.game.Tick(pending)
	if err != nil {
		return snake.Snapshot{}, err
	}
	if ev != snake.EventMoved {
		l.logger.Debug("tick", "n", l.game.Ticks(), "event", ev, "score", l.game.Score())
	}
	return l.game.Snapshot(), nil
}

func (l *Loop) finish(final snake.Snapshot) {
	if l.recorder == nil {
		return
	}
	if err := l.recorder.Finish(final); err != nil {
		l.logger.Warn("could not finish recording", "error", err)
	}
}
