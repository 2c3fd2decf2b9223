package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-snake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a single game",
	Long: `Start a game of Pixel Snake right away.

Controls:
  Arrows/WASD/HJKL  - Steer
  P/Space           - Pause
  R                 - Restart
  Ctrl+S            - Save a screenshot
  B/Esc             - Quit (when paused or after game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slow start, stones every 8 apples
  normal - 150ms start, stones every 5 apples
  hard   - Fast start, stones every 4 apples
  fixed  - Speed never changes

Examples:
  pixelsnake play
  pixelsnake play --difficulty easy
  pixelsnake play --seed 42
  pixelsnake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	settings, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(nil, "pixelsnake")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store := openStoreOrWarn()

	runErr := tui.Run(tuiOptions(settings, store, logger))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fail("running game: %v", runErr)
	}
}
