// Package tui provides the Bubble Tea integration for the snake game.
// The tick loop runs in its own goroutine and posts frames into the
// program; key presses go the other way through an input.Channel.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/loop"
)

// frameMsg carries a snapshot drawn by the tick loop.
type frameMsg snake.Snapshot

// roundDoneMsg is sent when a loop returns.
type roundDoneMsg struct {
	id     int
	result loop.Result
	err    error
}

// frameSink is the loop.Renderer used by the TUI. It holds at most one
// pending frame; a newer frame replaces one the UI has not picked up yet.
type frameSink chan snake.Snapshot

func newFrameSink() frameSink {
	return make(frameSink, 1)
}

// Draw implements loop.Renderer. It never blocks.
func (f frameSink) Draw(snap snake.Snapshot) {
	for {
		select {
		case f <- snap:
			return
		default:
		}
		select {
		case <-f:
		default:
		}
	}
}

// wait returns a command that delivers the next frame.
func (f frameSink) wait() tea.Cmd {
	return func() tea.Msg {
		return frameMsg(<-f)
	}
}
