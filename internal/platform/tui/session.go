package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pixel-snake/internal/config"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenDifficulty
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game -> menu, with the
// difficulty picker and scoreboard reachable from the menu.
// It is the top-level model for SSH sessions and the local menu command.
type SessionModel struct {
	opts       Options
	preset     config.DifficultyPreset
	screen     sessionScreen
	menu       MenuModel
	difficulty DifficultyModel
	game       *GameModel
	scores     ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts Options) SessionModel {
	opts = opts.withDefaults()
	preset := opts.Preset
	if preset == "" {
		preset = config.DifficultyNormal
	}

	m := SessionModel{
		opts:   opts,
		preset: preset,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.opts.Config, bestScore(m.opts.Best), m.preset)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Config.ScreenW = wsm.Width
		m.opts.Config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenDifficulty:
		return m.updateDifficulty(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	switch selected.Choice {
	case MenuPlay:
		return m.startGame()
	case MenuDifficulty:
		m.screen = screenDifficulty
		m.difficulty = NewDifficultyModel(m.opts.Config.ScreenW, m.opts.Config.ScreenH, m.preset)
		return m, m.difficulty.Init()
	case MenuScores:
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.opts.Store, m.opts.Logger, m.opts.Config.ScreenW, m.opts.Config.ScreenH)
		return m, m.scores.Init()
	}

	return m, cmd
}

// startGame builds a fresh engine for the current preset.
func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	rules, err := m.opts.RulesFor(m.preset)
	if err == nil {
		opts := m.opts
		opts.Rules = rules
		engine, buildErr := opts.NewEngine()
		if buildErr == nil {
			game := NewGameModel(engine, opts)
			m.game = &game
			m.screen = screenGame
			m.opts.Logger.Debug("game started", "preset", m.preset)
			return m, m.game.Init()
		}
		err = buildErr
	}

	m.opts.Logger.Error("cannot start game", "preset", m.preset, "error", err)
	m.menu = m.newMenu()
	return m, nil
}

// updateDifficulty handles updates in the preset picker.
func (m SessionModel) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.difficulty.Update(msg)
	if d, ok := newModel.(DifficultyModel); ok {
		m.difficulty = d
	}

	switch {
	case m.difficulty.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.difficulty.Selected() != nil:
		m.preset = *m.difficulty.Selected()
		return m.backToMenu()
	case m.difficulty.WantsBack():
		return m.backToMenu()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		return m.backToMenu()
	}

	return m, cmd
}

// updateScores handles updates on the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if s, ok := newModel.(ScoreboardModel); ok {
		m.scores = s
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenDifficulty:
		return m.difficulty.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Preset returns the currently selected difficulty.
func (m SessionModel) Preset() config.DifficultyPreset {
	return m.preset
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
