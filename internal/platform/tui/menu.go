package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pixel-snake/internal/config"
	"github.com/vovakirdan/pixel-snake/internal/core"
	"github.com/vovakirdan/pixel-snake/internal/games/snake"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fda4af"))

// MenuChoice is an entry of the main menu.
type MenuChoice int

const (
	MenuPlay MenuChoice = iota
	MenuDifficulty
	MenuScores
	MenuQuit
)

// MenuItem represents a selectable menu entry.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	best      int
	preset    config.DifficultyPreset
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
}

// NewMenuModel creates a new menu model. best is shown under the title.
func NewMenuModel(cfg core.RuntimeConfig, best int, preset config.DifficultyPreset) MenuModel {
	return MenuModel{
		items: []MenuItem{
			{Choice: MenuPlay, Title: "Play"},
			{Choice: MenuDifficulty, Title: "Difficulty"},
			{Choice: MenuScores, Title: "High Scores"},
			{Choice: MenuQuit, Title: "Quit"},
		},
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		best:      best,
		preset:    preset,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
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
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true

	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, len(m.items)-1)

	case MenuActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, len(m.items)-1)

	case MenuActionSelect:
		selected := m.items[m.cursor]
		if selected.Choice == MenuQuit {
			m.quitting = true
			return m, nil
		}
		m.selected = &selected

	case MenuActionScoreboard:
		m.selected = &MenuItem{Choice: MenuScores, Title: "High Scores"}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("P I X E L   S N A K E", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Eat the hearts. Mind the trees.", m.width))
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Best: %d   Difficulty: %s", m.best, m.preset), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(helpStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// bestScore reads the persisted best score for the menu header.
func bestScore(store snake.BestStore) int {
	if store == nil {
		return 0
	}
	raw, ok, err := store.Get(snake.BestScoreKey)
	if err != nil || !ok {
		return 0
	}
	var best int
	if _, err := fmt.Sscanf(raw, "%d", &best); err != nil {
		return 0
	}
	return best
}
