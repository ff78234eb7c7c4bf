package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/input"
	"github.com/vovakirdan/tui-snake/internal/loop"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Round is one game handed to the tick loop.
type Round struct {
	Game     *snake.Game
	Source   loop.Source       // Defaults to Channel
	Channel  *input.Channel    // Receives the player's keys
	Recorder *storage.Recorder // Optional journal
}

// NewRoundFunc builds a fresh round. It is called once at start and again on every restart.
type NewRoundFunc func() (Round, error)

// Options configures a play session.
type Options struct {
	Title         string // Shown in the status line
	Interval      time.Duration
	Logger        *log.Logger
	NewRound      NewRoundFunc
	ScreenshotDir string // Empty disables screenshots
}

// Summary describes a finished session.
type Summary struct {
	Last   snake.Snapshot // Final frame of the last round
	Rounds int
	RunIDs []string // Journal IDs of recorded rounds
}

// Model is the Bubble Tea model for a play session.
type Model struct {
	ctx    context.Context
	opts   Options
	logger *log.Logger

	screen *core.Screen
	frames frameSink
	keys   GameKeyMap
	help   help.Model

	ch       *input.Channel
	recorder *storage.Recorder
	loop     *loop.Loop
	roundID  int
	running  bool

	snap     snake.Snapshot
	summary  Summary
	status   string
	err      error
	width    int
	height   int
	quitting bool
}

// NewModel creates a model and prepares its first round.
func NewModel(ctx context.Context, opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.NewRound == nil {
		return Model{}, errors.New("tui: no round factory")
	}

	m := Model{
		ctx:    ctx,
		opts:   opts,
		logger: opts.Logger.WithPrefix("tui"),
		screen: core.NewScreen(0, 0),
		frames: newFrameSink(),
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
	}
	if err := m.prepareRound(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// prepareRound builds the next round and its loop without starting it.
func (m *Model) prepareRound() error {
	r, err := m.opts.NewRound()
	if err != nil {
		return fmt.Errorf("tui: cannot start round: %w", err)
	}
	if r.Channel == nil {
		r.Channel = input.NewChannel()
	}
	if r.Source == nil {
		r.Source = r.Channel
	}

	lopts := loop.Options{Interval: m.opts.Interval, Logger: m.opts.Logger}
	if r.Recorder != nil {
		lopts.Recorder = r.Recorder
		m.summary.RunIDs = append(m.summary.RunIDs, r.Recorder.RunID())
	}

	m.ch = r.Channel
	m.recorder = r.Recorder
	m.loop = loop.New(r.Game, r.Source, m.frames, lopts)
	m.roundID++
	m.running = true
	m.snap = r.Game.Snapshot()
	m.summary.Rounds++
	m.keys.Restart.SetEnabled(false)
	return nil
}

// runRound returns a command that blocks on the loop for this round.
func (m Model) runRound() tea.Cmd {
	l, id, ctx := m.loop, m.roundID, m.ctx
	return func() tea.Msg {
		res, err := l.Run(ctx)
		return roundDoneMsg{id: id, result: res, err: err}
	}
}

// Init starts the first round.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.runRound(), m.frames.wait())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		m.snap = snake.Snapshot(msg)
		return m, m.frames.wait()

	case roundDoneMsg:
		return m.handleRoundDone(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		if m.running {
			return m, nil
		}
		if err := m.prepareRound(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.status = ""
		m.logger.Debug("restart", "round", m.summary.Rounds)
		return m, m.runRound()
	}

	sig := m.keys.Signal(msg)
	if sig == input.SignalQuit {
		m.quitting = true
		if !m.running {
			return m, tea.Quit
		}
		// The loop stops within one interval and reports back through roundDoneMsg.
		m.ch.Quit()
		return m, nil
	}
	if sig != input.SignalNone && m.running {
		m.ch.Send(sig)
	}
	return m, nil
}

// handleRoundDone finalizes a round: journal, status line and, if quitting, exit.
func (m Model) handleRoundDone(msg roundDoneMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.roundID {
		return m, nil
	}
	m.running = false
	m.snap = msg.result.Final
	m.summary.Last = msg.result.Final

	if msg.err != nil {
		m.err = msg.err
		return m, tea.Quit
	}

	if msg.result.Quit && m.recorder != nil {
		if err := m.recorder.Abandon(msg.result.Final); err != nil {
			m.logger.Warn("could not save abandoned run", "error", err)
		}
	}

	if m.quitting || msg.result.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	m.keys.Restart.SetEnabled(true)
	return m, nil
}

// saveScreenshot saves the current frame as plain text.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	shot := m.renderBoard()
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.opts.ScreenshotDir, fmt.Sprintf("snake_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(shot.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.status = "saved " + path
	m.logger.Info("screenshot saved", "path", path)
}

// renderBoard draws the latest frame into the screen buffer and returns it.
func (m *Model) renderBoard() *core.Screen {
	needW, needH := snake.RequiredSize(m.snap.Width, m.snap.Height)
	w, h := max(m.width, needW), needH
	if m.height > 0 {
		w, h = m.width, max(m.height-footerHeight, 0)
	}
	m.screen.Resize(w, h)
	snake.Render(m.screen, m.snap)
	return m.screen
}

const footerHeight = 2

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the board, a status line and the key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.renderBoard()))
	b.WriteString("\n")

	status := m.opts.Title
	if m.status != "" {
		status += "  " + m.status
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Summary returns what happened during the session.
func (m Model) Summary() Summary {
	return m.summary
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Run plays rounds until the player quits.
func Run(ctx context.Context, opts Options) (Summary, error) {
	model, err := NewModel(ctx, opts)
	if err != nil {
		return Summary{}, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if m, ok := finalModel.(Model); ok {
		model = m
	}
	// A killed or failed program leaves the loop running; stop it and journal the round.
	model.shutdown()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return model.Summary(), err
	}
	return model.Summary(), model.Err()
}

// shutdown stops the current loop and marks an unfinished recorded round as quit.
// Rounds that already finished or were abandoned are left alone.
func (m Model) shutdown() {
	m.ch.Quit()
	if m.recorder == nil {
		return
	}
	if err := m.recorder.Abandon(m.snap); err != nil {
		m.logger.Warn("could not save abandoned run", "error", err)
	}
}
