package input

import (
	"sync"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Channel holds at most one pending direction plus the quit and pause state.
// All methods are safe for concurrent use.
type Channel struct {
	mu      sync.Mutex
	pending snake.Direction
	has     bool
	paused  bool

	quit     chan struct{}
	quitOnce sync.Once
}

// NewChannel creates an empty channel.
func NewChannel() *Channel {
	return &Channel{quit: make(chan struct{})}
}

// Send delivers a signal. Directions overwrite any direction not yet taken,
// Quit closes Done, Pause toggles the paused flag, anything else is dropped.
func (c *Channel) Send(sig Signal) {
	if d, ok := sig.Direction(); ok {
		c.mu.Lock()
		c.pending = d
		c.has = true
		c.mu.Unlock()
		return
	}

	switch sig {
	case SignalQuit:
		c.quitOnce.Do(func() { close(c.quit) })
	case SignalPause:
		c.mu.Lock()
		c.paused = !c.paused
		c.mu.Unlock()
	}
}

// Take returns the pending direction, if any, and clears it.
func (c *Channel) Take() (snake.Direction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.pending, c.has
	c.has = false
	return d, ok
}

// Paused reports whether the player has paused the game.
func (c *Channel) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Done is closed once a quit signal has been sent.
func (c *Channel) Done() <-chan struct{} {
	return c.quit
}

// Quit is shorthand for Send(SignalQuit).
func (c *Channel) Quit() {
	c.Send(SignalQuit)
}
