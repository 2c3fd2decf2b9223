// Package loop drives a snake engine on a wall-clock timer outside of any UI.
// It backs headless simulation and is the reference for how a host should
// schedule ticks: one Advance per timer fire, then re-arm with the speed the
// engine reports after that tick.
package loop

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixel-snake/internal/games/snake"
)

var (
	// ErrStopped is returned by Run after Stop.
	ErrStopped = errors.New("loop: stopped")
	// ErrTickLimit is returned by Run when the tick cap is reached mid-game.
	ErrTickLimit = errors.New("loop: tick limit reached")
)

// Engine is the part of the snake engine the loop drives.
type Engine interface {
	Advance() snake.TickResult
	Speed() time.Duration
	Phase() snake.Phase
	Snapshot() snake.Snapshot
}

// Loop schedules ticks for one game.
type Loop struct {
	engine Engine
	logger *log.Logger

	scale      float64
	maxTicks   uint64
	beforeTick func(snake.Snapshot)
	onTick     func(snake.TickResult, snake.Snapshot)

	ticks    uint64
	stopChan chan struct{}
	stopOnce sync.Once
}

// Option configures a Loop.
type Option func(*Loop)

// WithTimeScale multiplies every tick interval. 0 runs as fast as possible.
func WithTimeScale(scale float64) Option {
	return func(l *Loop) {
		l.scale = max(0, scale)
	}
}

// WithMaxTicks caps the number of ticks Run will execute. 0 means no cap.
func WithMaxTicks(n uint64) Option {
	return func(l *Loop) {
		l.maxTicks = n
	}
}

// WithBeforeTick registers a hook that sees the state right before each tick.
// It is where automated input goes.
func WithBeforeTick(fn func(snake.Snapshot)) Option {
	return func(l *Loop) {
		l.beforeTick = fn
	}
}

// WithOnTick registers an observer called after each tick.
func WithOnTick(fn func(snake.TickResult, snake.Snapshot)) Option {
	return func(l *Loop) {
		l.onTick = fn
	}
}

// WithLogger sets the loop logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// New creates a loop for engine.
func New(engine Engine, opts ...Option) *Loop {
	l := &Loop{
		engine:   engine,
		scale:    1,
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}
	return l
}

// Run blocks until the game ends (nil), ctx is done (ctx.Err()), Stop is
// called (ErrStopped) or the tick cap is hit (ErrTickLimit).
// The timer is always stopped on return.
func (l *Loop) Run(ctx context.Context) error {
	if l.engine.Phase() != snake.PhasePlaying {
		return nil
	}

	timer := time.NewTimer(l.interval(l.engine.Speed()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stopChan:
			return ErrStopped
		case <-timer.C:
		}

		if l.beforeTick != nil {
			l.beforeTick(l.engine.Snapshot())
		}
		res := l.engine.Advance()
		l.ticks++

		if res.SpeedChanged {
			l.logger.Debug("speed up", "tick", l.ticks, "speed", l.engine.Speed())
		}
		if l.onTick != nil {
			l.onTick(res, l.engine.Snapshot())
		}

		if l.engine.Phase() != snake.PhasePlaying {
			l.logger.Debug("loop finished", "ticks", l.ticks, "cause", res.Cause)
			return nil
		}
		if l.maxTicks > 0 && l.ticks >= l.maxTicks {
			return ErrTickLimit
		}

		// Re-arm with the interval after this tick's update
		timer.Reset(l.interval(l.engine.Speed()))
	}
}

// Stop makes Run return ErrStopped. It is safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}

// Ticks returns how many ticks Run has executed. Only read it after Run returns.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

func (l *Loop) interval(speed time.Duration) time.Duration {
	return time.Duration(float64(speed) * l.scale)
}
