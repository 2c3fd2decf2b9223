package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-snake/internal/games/snake"
	"github.com/vovakirdan/pixel-snake/internal/loop"
	"github.com/vovakirdan/pixel-snake/internal/storage"
)

var (
	flagSimGames int
	flagSimTicks uint64
	flagSimSpeed float64
	flagSimSave  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the autopilot play headless",
	Long: `Run games without a UI. The autopilot steers, the tick timer follows
the engine speed, and a summary is logged after every game.

--speed scales every tick interval: 1 is real time, 0.5 is twice as
fast and 0 runs as fast as possible.

Examples:
  pixelsnake simulate
  pixelsnake simulate --games 20 --speed 0
  pixelsnake simulate --seed 7 --ticks 500 --log-level debug
  pixelsnake simulate --speed 0 --save`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimGames, "games", 1, "Number of games to play")
	simulateCmd.Flags().Uint64Var(&flagSimTicks, "ticks", 0, "Tick cap per game (0 = until game over)")
	simulateCmd.Flags().Float64Var(&flagSimSpeed, "speed", 1, "Time scale for tick intervals (0 = no waiting)")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record finished games in the scores database")
}

func runSimulate(_ *cobra.Command, _ []string) {
	settings, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(os.Stderr, "simulate")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	var best snake.BestStore = snake.NewMemoryStore()
	var store *storage.Store
	if flagSimSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			closeLog()
			fail("opening scores database: %v", err)
		}
		defer store.Close()
		best = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for game := 1; game <= max(1, flagSimGames); game++ {
		seed := flagSeed
		if seed != 0 {
			seed += int64(game - 1)
		} else {
			seed = time.Now().UnixNano()
		}

		snap, err := simulateGame(ctx, settings.rules, seed, best, logger.With("game", game))
		if errors.Is(err, context.Canceled) {
			logger.Info("interrupted", "game", game)
			return
		}
		if err != nil && !errors.Is(err, loop.ErrTickLimit) {
			if store != nil {
				store.Close()
			}
			closeLog()
			fail("game %d: %v", game, err)
		}

		logger.Info("game finished",
			"game", game,
			"seed", seed,
			"ticks", snap.Tick,
			"score", snap.Score,
			"length", snap.Len(),
			"stones", len(snap.Stones),
			"speed", snap.Speed,
			"cause", snap.Cause,
			"best", snap.Best,
		)

		if store != nil && snap.Phase == snake.PhaseGameOver && snap.Score > 0 {
			if _, err := store.SaveScore(storage.ScoreEntry{
				Score:  snap.Score,
				Length: snap.Len(),
				Stones: len(snap.Stones),
				Cause:  string(snap.Cause),
			}); err != nil {
				logger.Warn("could not save score", "error", err)
			}
		}
	}
}

// simulateGame plays one autopilot game and returns the final state.
func simulateGame(ctx context.Context, rules snake.Rules, seed int64, best snake.BestStore, logger *log.Logger) (snake.Snapshot, error) {
	engine, err := snake.New(rules,
		snake.WithSeed(seed),
		snake.WithBestStore(best),
		snake.WithLogger(logger),
	)
	if err != nil {
		return snake.Snapshot{}, err
	}

	l := loop.New(engine,
		loop.WithTimeScale(flagSimSpeed),
		loop.WithMaxTicks(flagSimTicks),
		loop.WithLogger(logger),
		loop.WithBeforeTick(func(s snake.Snapshot) {
			engine.SetPendingDirection(snake.NextDirection(s))
		}),
		loop.WithOnTick(func(res snake.TickResult, s snake.Snapshot) {
			if res.Ate {
				logger.Debug("ate", "tick", s.Tick, "score", s.Score, "stone", res.StoneAdded, "speed", s.Speed)
			}
		}),
	)

	runErr := l.Run(ctx)
	return engine.Snapshot(), runErr
}
