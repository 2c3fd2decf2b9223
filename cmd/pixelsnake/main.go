// pixelsnake is a terminal Snake game with corner trees, piling stones and a
// persisted best score.
//
// Usage:
//
//	pixelsnake play          - Play a single game
//	pixelsnake menu          - Start the menu (play, difficulty, scores)
//	pixelsnake scores        - Show the score history
//	pixelsnake serve         - Start SSH server for remote play
//	pixelsnake simulate      - Let the autopilot play headless
//	pixelsnake config        - Print the effective game config
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.pixelsnake/scores.db)
//	--config <path>       - Load a custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pixel-snake/internal/config"
	"github.com/vovakirdan/pixel-snake/internal/core"
	"github.com/vovakirdan/pixel-snake/internal/games/snake"
	"github.com/vovakirdan/pixel-snake/internal/platform/tui"
	"github.com/vovakirdan/pixel-snake/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pixelsnake",
	Short: "Pixel Snake - the classic snake game in your terminal",
	Long: `Pixel Snake is a terminal snake game played on a square field.
Trees stand in the corners, every fifth apple drops a stone on the
field and makes the snake faster.

Available commands:
  play      - Play a single game
  menu      - Menu with difficulty picker and scoreboard
  scores    - View score history
  serve     - Start SSH server for remote play
  simulate  - Watch the autopilot play headless
  config    - Print the effective game config

Examples:
  pixelsnake play
  pixelsnake play --difficulty hard
  pixelsnake menu --config ./my-snake.yaml
  pixelsnake serve --ssh :2222
  pixelsnake simulate --speed 0`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (TUI commands log nowhere by default)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the command logger. Full-screen commands pass nil for
// fallback so log lines never tear the UI; they only log with --log-file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		if mkErr := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); mkErr != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", mkErr)
		}
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		out = f
		closeFn = func() { f.Close() }
	}
	if out == nil {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
	})
	return logger, closeFn, nil
}

// gameSettings is the loaded config plus the rules for the chosen preset.
type gameSettings struct {
	base   config.SnakeConfig
	preset config.DifficultyPreset
	rules  snake.Rules
}

// loadSettings reads --config and applies --difficulty.
func loadSettings() (gameSettings, error) {
	base, err := config.LoadSnake(flagConfig)
	if err != nil {
		return gameSettings{}, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return gameSettings{}, err
	}

	cfg := base
	config.ApplySnakePreset(&cfg, preset)
	rules, err := cfg.Rules()
	if err != nil {
		return gameSettings{}, err
	}
	return gameSettings{base: base, preset: preset, rules: rules}, nil
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// openStoreOrWarn opens the score database. The game still works without one.
func openStoreOrWarn() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// tuiOptions assembles the options shared by play and menu.
func tuiOptions(s gameSettings, store *storage.Store, logger *log.Logger) tui.Options {
	width, height := terminalSize()
	base := s.base
	return tui.Options{
		Rules:  s.rules,
		Store:  store,
		Logger: logger,
		Config: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
		},
		Settings: &base,
		Preset:   s.preset,
	}
}
