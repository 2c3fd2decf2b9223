package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixel-snake/internal/config"
	"github.com/vovakirdan/pixel-snake/internal/core"
	"github.com/vovakirdan/pixel-snake/internal/games/snake"
	"github.com/vovakirdan/pixel-snake/internal/storage"
)

// Options carries what a game screen needs from the host.
type Options struct {
	Rules  snake.Rules
	Store  *storage.Store  // Score history, optional
	Best   snake.BestStore // Defaults to Store, then an in-memory store
	Logger *log.Logger
	Config core.RuntimeConfig

	// Settings and Preset let menus rebuild Rules for another difficulty.
	// When Settings is nil, Rules is used as is.
	Settings *config.SnakeConfig
	Preset   config.DifficultyPreset
}

// withDefaults fills in the optional collaborators.
func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Config.ScreenW <= 0 || o.Config.ScreenH <= 0 {
		seed := o.Config.Seed
		o.Config = core.DefaultConfig()
		o.Config.Seed = seed
	}
	if o.Best == nil {
		if o.Store != nil {
			o.Best = o.Store
		} else {
			o.Best = snake.NewMemoryStore()
		}
	}
	return o
}

// RulesFor returns the rules for preset, derived from Settings when present.
func (o Options) RulesFor(preset config.DifficultyPreset) (snake.Rules, error) {
	if o.Settings == nil {
		return o.Rules, nil
	}
	cfg := *o.Settings
	config.ApplySnakePreset(&cfg, preset)
	return cfg.Rules()
}

// NewEngine builds an engine from the options. A zero seed means time-based.
func (o Options) NewEngine() (*snake.Engine, error) {
	o = o.withDefaults()
	seed := o.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return snake.New(o.Rules,
		snake.WithSeed(seed),
		snake.WithBestStore(o.Best),
		snake.WithLogger(o.Logger),
	)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// GameModel is the Bubble Tea model for one snake game.
// The tick timer is re-armed after every tick with the engine's current speed.
type GameModel struct {
	engine     *snake.Engine
	store      *storage.Store
	logger     *log.Logger
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	keys       GameKeyMap
	help       help.Model
	gen        uint64 // Generation of the armed tick timer
	paused     bool
	quitting   bool
	backToMenu bool
	quitOnBack bool // Standalone games have no menu to return to
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a game model around engine.
func NewGameModel(engine *snake.Engine, opts Options) GameModel {
	opts = opts.withDefaults()
	h := help.New()
	h.Width = opts.Config.ScreenW

	return GameModel{
		engine:    engine,
		store:     opts.Store,
		logger:    opts.Logger,
		screen:    core.NewScreen(opts.Config.ScreenW, max(0, opts.Config.ScreenH-1)),
		config:    opts.Config,
		keyMapper: NewKeyMapper(),
		keys:      DefaultGameKeyMap(),
		help:      h,
		gen:       nextTickGen(),
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.gen, m.engine.Speed())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(0, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	over := m.State().GameOver

	switch {
	case action.IsDirection():
		if !m.paused && !over {
			m.engine.SetPendingDirection(ActionDirection(action))
		}

	case action == core.ActionPause:
		if over {
			return m, nil
		}
		m.paused = !m.paused
		// Any armed timer is abandoned; resuming arms a fresh one
		m.gen = nextTickGen()
		if !m.paused {
			return m, tickCmd(m.gen, m.engine.Speed())
		}

	case action == core.ActionRestart:
		if over {
			return m.restart()
		}

	case action == core.ActionBack:
		// Leaving a running game takes a pause first
		if !m.paused && !over {
			return m, nil
		}
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// restart starts a new game on the same engine.
func (m GameModel) restart() (tea.Model, tea.Cmd) {
	m.engine.Reset()
	m.paused = false
	m.scoreSaved = false
	m.gen = nextTickGen()
	m.logger.Debug("game restarted")
	return m, tickCmd(m.gen, m.engine.Speed())
}

// handleTick advances the engine once and arms the next tick.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.paused {
		return m, nil
	}

	res := m.engine.Advance()
	if res.Cause != snake.CauseNone {
		m.saveScore()
		return m, nil
	}

	return m, tickCmd(m.gen, m.engine.Speed())
}

// saveScore records the finished game once.
func (m *GameModel) saveScore() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	snap := m.engine.Snapshot()
	m.logger.Info("game over", "score", snap.Score, "length", snap.Len(), "cause", snap.Cause)
	if m.store == nil || snap.Score == 0 {
		return
	}

	_, err := m.store.SaveScore(storage.ScoreEntry{
		GameID: snake.GameID,
		Score:  snap.Score,
		Length: snap.Len(),
		Stones: len(snap.Stones),
		Cause:  string(snap.Cause),
	})
	if err != nil {
		m.logger.Warn("could not save score", "error", err)
	}
}

// saveScreenshot saves the current screen to a text file.
func (m *GameModel) saveScreenshot() {
	snake.Render(m.screen, m.engine.Snapshot(), m.paused)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".pixelsnake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	filename := fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	snake.Render(m.screen, m.engine.Snapshot(), m.paused)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Paused reports whether the game is paused.
func (m GameModel) Paused() bool {
	return m.paused
}

// State reports the score summary, including whether the game is paused.
func (m GameModel) State() core.GameState {
	state := m.engine.State()
	state.Paused = m.paused
	return state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a single game in the terminal.
func Run(opts Options) error {
	opts = opts.withDefaults()
	engine, err := opts.NewEngine()
	if err != nil {
		return err
	}

	model := NewGameModel(engine, opts)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
