package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// MenuModel is the Bubble Tea model for the variant picker.
// Up/down chooses a variant, left/right cycles the difficulty preset.
type MenuModel struct {
	variants   []registry.Variant
	cursor     int
	difficulty int           // Index into config.Presets
	fixed      time.Duration // Configured interval behind the fixed preset
	width      int
	height     int
	keyMapper  *KeyMapper
	quitting   bool
	selected   bool
	replays    bool
}

// NewMenuModel creates a picker with the given preset preselected.
// fixed is the configured interval shown next to the fixed preset.
func NewMenuModel(preset config.DifficultyPreset, fixed time.Duration, width, height int) MenuModel {
	m := MenuModel{
		variants:  registry.List(),
		fixed:     fixed,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	for i, p := range config.Presets {
		if p == preset {
			m.difficulty = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.variants)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.difficulty = (m.difficulty + len(config.Presets) - 1) % len(config.Presets)

	case MenuActionRight:
		m.difficulty = (m.difficulty + 1) % len(config.Presets)

	case MenuActionSelect:
		if len(m.variants) > 0 {
			m.selected = true
			return m, tea.Quit
		}

	case MenuActionReplays:
		m.replays = true
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S N A K E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a board", m.width))
	b.WriteString("\n\n")

	for i, v := range m.variants {
		line := fmt.Sprintf("  %-12s %2dx%-2d %s", v.Title, v.Width, v.Height, v.Boundary)
		if i == m.cursor {
			line = menuActiveStyle.Render("> " + line[2:])
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.variants) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(menuDimStyle.Render(m.variants[m.cursor].Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	speed := fmt.Sprintf("< Speed: %s >", m.Difficulty())
	if p := m.Difficulty(); config.IsFixedPreset(p) {
		speed = fmt.Sprintf("< Speed: %s %s >", p, config.IntervalForPreset(p, m.fixed))
	}
	b.WriteString(centerText(speed, m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Board  |  Left/Right: Speed  |  Enter: Play  |  Tab: Replays  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Difficulty returns the highlighted preset.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return config.Presets[m.difficulty]
}

// Selected returns the chosen variant, or false if none was chosen.
func (m MenuModel) Selected() (registry.Variant, bool) {
	if !m.selected || len(m.variants) == 0 {
		return registry.Variant{}, false
	}
	return m.variants[m.cursor], true
}

// WantsReplays returns true if the user asked for the replay browser.
func (m MenuModel) WantsReplays() bool {
	return m.replays
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Variant      registry.Variant
	Difficulty   config.DifficultyPreset
	WantsReplays bool
	Quit         bool
}

// RunMenu runs the picker and returns the selection result.
func RunMenu(preset config.DifficultyPreset, fixed time.Duration, width, height int) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(preset, fixed, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Quit: true}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Quit: true}, nil
	}

	result := MenuResult{Difficulty: m.Difficulty()}
	if m.WantsReplays() {
		result.WantsReplays = true
		return result, nil
	}
	v, ok := m.Selected()
	if !ok {
		result.Quit = true
		return result, nil
	}
	result.Variant = v
	return result, nil
}
