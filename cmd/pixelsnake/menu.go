package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-snake/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Pixel Snake with a menu",
	Long: `Start Pixel Snake in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
When the game is paused or over, B returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  Q            - Quit

Examples:
  pixelsnake menu
  pixelsnake menu --difficulty hard
  pixelsnake menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
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

	runErr := tui.RunSession(tuiOptions(settings, store, logger))

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fail("running menu: %v", runErr)
	}
}
