package input

import "github.com/vovakirdan/tui-snake/internal/games/snake"

// Script replays recorded directions. Take is keyed by tick: the n-th call
// returns the direction recorded for tick n. Quit and pause still come from
// the wrapped live Channel so a replay can be stopped or paused.
type Script struct {
	live  *Channel
	moves map[uint64]snake.Direction
	tick  uint64
}

// NewScript creates a replay source over moves, keyed by 1-based tick number.
func NewScript(moves map[uint64]snake.Direction, live *Channel) *Script {
	return &Script{live: live, moves: moves}
}

// Take returns the direction recorded for the next tick.
func (s *Script) Take() (snake.Direction, bool) {
	s.tick++
	d, ok := s.moves[s.tick]
	return d, ok
}

// Paused reports the live channel's pause state.
func (s *Script) Paused() bool {
	return s.live.Paused()
}

// Done is closed when the live channel receives quit.
func (s *Script) Done() <-chan struct{} {
	return s.live.Done()
}
