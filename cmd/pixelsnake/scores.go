package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pixel-snake/internal/games/snake"
	"github.com/vovakirdan/pixel-snake/internal/platform/tui"
	"github.com/vovakirdan/pixel-snake/internal/storage"
)

var (
	flagScoresPlain bool
	flagScoresLimit int
	flagScoresClear bool
	flagResetBest   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the score history",
	Long: `Display the best runs recorded in the scores database.

In a terminal this opens the interactive scoreboard (Tab switches
between top and recent runs). With --plain, or when stdout is not a
terminal, the top runs are printed as text.

Examples:
  pixelsnake scores
  pixelsnake scores --plain --limit 20
  pixelsnake scores --clear
  pixelsnake scores --clear --reset-best`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print scores as text instead of the interactive table")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to print with --plain")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the score history (the best score is kept)")
	scoresCmd.Flags().BoolVar(&flagResetBest, "reset-best", false, "With --clear, also forget the best score")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := clearScores(os.Stdout, store, flagResetBest); err != nil {
			store.Close()
			fail("%v", err)
		}
		return
	}

	if !flagScoresPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		logger, closeLog, logErr := newLogger(nil, "pixelsnake")
		if logErr != nil {
			store.Close()
			fail("%v", logErr)
		}
		defer closeLog()

		width, height := terminalSize()
		if err := tui.RunScoreboard(store, logger, width, height); err != nil {
			store.Close()
			closeLog()
			fail("running scoreboard: %v", err)
		}
		return
	}

	if err := printScores(os.Stdout, store, flagScoresLimit); err != nil {
		store.Close()
		fail("%v", err)
	}
}

// clearScores drops the score history and, with resetBest, the best score.
func clearScores(w io.Writer, store *storage.Store, resetBest bool) error {
	if err := store.ClearScores(snake.GameID); err != nil {
		return fmt.Errorf("clearing scores: %w", err)
	}
	fmt.Fprintln(w, "Score history cleared.")

	if resetBest {
		if err := store.Delete(snake.BestScoreKey); err != nil {
			return fmt.Errorf("resetting best score: %w", err)
		}
		fmt.Fprintln(w, "Best score reset.")
	}
	return nil
}

func printScores(w io.Writer, store *storage.Store, limit int) error {
	scores, err := store.TopScores(snake.GameID, limit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintln(w, "High Scores - Pixel Snake")
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'pixelsnake play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-6s  %-6s  %-6s  %-14s  %s\n", "Rank", "Score", "Length", "Stones", "Ended by", "Date")
	fmt.Fprintf(w, "  %-4s  %-6s  %-6s  %-6s  %-14s  %s\n", "----", "-----", "------", "------", "--------", "----")
	for i, entry := range scores {
		fmt.Fprintf(w, "  %-4d  %-6d  %-6d  %-6d  %-14s  %s\n",
			i+1, entry.Score, entry.Length, entry.Stones,
			snake.CauseText(snake.Cause(entry.Cause)),
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	if stats, err := store.GetGameStats(snake.GameID); err == nil {
		fmt.Fprintf(w, "Games: %d  Average: %.1f  Longest snake: %d\n", stats.GamesCount, stats.AvgScore, stats.LongestRun)
	}
	if top, err := store.HighScore(snake.GameID); err == nil {
		fmt.Fprintf(w, "Top run: %d\n", top)
	}
	if best, ok, err := store.Get(snake.BestScoreKey); err == nil && ok {
		fmt.Fprintf(w, "Best: %s\n", best)
	}
	return nil
}
