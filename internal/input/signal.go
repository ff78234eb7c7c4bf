// Package input bridges asynchronous key presses to the fixed-rate tick loop.
//
// Key handlers call Channel.Send from their own goroutine whenever a key
// arrives; the tick loop calls Channel.Take exactly once per tick. Only the
// most recent direction survives between two ticks.
package input

import "github.com/vovakirdan/tui-snake/internal/games/snake"

// Signal is an abstract input event, already decoupled from physical keys.
type Signal int

const (
	SignalNone Signal = iota
	SignalUp
	SignalDown
	SignalLeft
	SignalRight
	SignalPause
	SignalQuit
)

// Direction returns the snake direction for a directional signal.
func (s Signal) Direction() (snake.Direction, bool) {
	switch s {
	case SignalUp:
		return snake.DirUp, true
	case SignalDown:
		return snake.DirDown, true
	case SignalLeft:
		return snake.DirLeft, true
	case SignalRight:
		return snake.DirRight, true
	}
	return 0, false
}

func (s Signal) String() string {
	switch s {
	case SignalUp:
		return "Up"
	case SignalDown:
		return "Down"
	case SignalLeft:
		return "Left"
	case SignalRight:
		return "Right"
	case SignalPause:
		return "Pause"
	case SignalQuit:
		return "Quit"
	default:
		return "None"
	}
}
