// Package snake implements the Pixel Snake engine: a tick-driven simulation on
// a square grid with corner trees, food, stones that pile up as the score
// grows, and a persisted best score.
//
// The engine owns no timer. A host calls Advance once per tick and re-arms its
// timer with Speed after every call.
package snake

import (
	"io"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixel-snake/internal/core"
)

// GameID identifies the snake game in score storage.
const GameID = "snake"

// Phase is the engine's game phase.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "game_over"
	// PhaseWon is reserved. No rule currently transitions to it.
	PhaseWon Phase = "won"
)

// Cause records why a game ended.
type Cause string

const (
	CauseNone        Cause = ""
	CauseOutOfBounds Cause = "out-of-bounds"
	CauseWall        Cause = "wall-collision"
	CauseStone       Cause = "stone-collision"
	CauseSelf        Cause = "self-collision"
)

// TickResult reports what happened during one Advance call.
type TickResult struct {
	Moved        bool
	Ate          bool
	StoneAdded   bool
	SpeedChanged bool
	BestChanged  bool
	Cause        Cause // Set when this tick ended the game
}

// Engine is the authoritative snake game state.
// All methods are safe for concurrent use; Advance calls never overlap.
type Engine struct {
	mu sync.Mutex

	rules  Rules
	rng    *rand.Rand
	store  BestStore
	logger *log.Logger

	walls    map[Point]struct{}
	wallList []Point

	tick      uint64
	snake     []Point // Head at index 0
	food      Point
	hasFood   bool
	stones    []Point
	direction Direction
	pending   Direction // Applied on the next Advance
	score     int
	best      int
	speed     time.Duration
	phase     Phase
	cause     Cause
	mealTick  uint64 // Tick of the last meal, 0 if none this game
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed seeds the placement RNG for reproducible games.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithBestStore attaches the persistence collaborator for the best score.
func WithBestStore(s BestStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLogger sets the logger used for collisions and persistence failures.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New validates the rules and returns an engine ready to play.
// The best score is read from the BestStore, if any.
func New(rules Rules, opts ...Option) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{rules: rules}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}

	e.wallList = rules.WallCells()
	e.walls = make(map[Point]struct{}, len(e.wallList))
	for _, w := range e.wallList {
		e.walls[w] = struct{}{}
	}

	e.best = e.loadBest()
	e.reset()
	return e, nil
}

// Rules returns the rules the engine was built with.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Reset starts a new game. The best score survives.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

func (e *Engine) reset() {
	e.tick = 0
	e.snake = []Point{e.rules.Start}
	// Every game, try-again included, starts with food on the initial cell
	// rather than where the last game left it.
	e.food = e.rules.InitialFood
	e.hasFood = true
	e.stones = nil
	e.direction = e.rules.StartDirection
	e.pending = e.rules.StartDirection
	e.score = 0
	e.speed = e.rules.InitialSpeed
	e.phase = PhasePlaying
	e.cause = CauseNone
	e.mealTick = 0
}

// SetPendingDirection queues d for the next tick. A request for the exact
// opposite of the current direction is ignored. Reports whether d was queued.
func (e *Engine) SetPendingDirection(d Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !d.Valid() || d == e.direction.Opposite() {
		return false
	}
	e.pending = d
	return true
}

// Advance runs one tick. It is a no-op unless the game is playing.
func (e *Engine) Advance() TickResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhasePlaying {
		return TickResult{}
	}
	e.tick++

	e.direction = e.pending
	newHead := e.snake[0].Add(e.direction.Vector())

	if cause := e.collision(newHead); cause != CauseNone {
		e.phase = PhaseGameOver
		e.cause = cause
		e.logger.Debug("game over", "cause", cause, "head", newHead, "score", e.score, "tick", e.tick)
		return TickResult{Cause: cause}
	}

	e.snake = append(e.snake, Point{})
	copy(e.snake[1:], e.snake[:len(e.snake)-1])
	e.snake[0] = newHead

	res := TickResult{Moved: true}
	if e.hasFood && newHead == e.food {
		e.score++
		e.mealTick = e.tick
		res.Ate = true

		if e.rules.MilestoneEvery > 0 && e.score%e.rules.MilestoneEvery == 0 {
			if next := max(e.speed-e.rules.SpeedStep, e.rules.MinSpeed); next != e.speed {
				e.speed = next
				res.SpeedChanged = true
			}
			if stone, ok := e.place(); ok {
				e.stones = append(e.stones, stone)
				res.StoneAdded = true
			} else {
				e.logger.Warn("no free cell for a stone", "score", e.score)
			}
		}

		e.food, e.hasFood = e.place()
		if !e.hasFood {
			e.logger.Warn("no free cell for food", "score", e.score)
		}
	} else {
		e.snake = e.snake[:len(e.snake)-1]
	}

	if e.score > e.best {
		e.best = e.score
		res.BestChanged = true
		e.saveBest()
	}
	return res
}

// collision returns the first terminal condition for newHead, checked in
// order: bounds, walls, stones, body (tail included).
func (e *Engine) collision(p Point) Cause {
	if !p.InSquare(e.rules.GridSize) {
		return CauseOutOfBounds
	}
	if _, hit := e.walls[p]; hit {
		return CauseWall
	}
	for _, s := range e.stones {
		if s == p {
			return CauseStone
		}
	}
	for _, seg := range e.snake {
		if seg == p {
			return CauseSelf
		}
	}
	return CauseNone
}

// Speed returns the current tick interval.
func (e *Engine) Speed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.speed
}

// Phase returns the current game phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Score returns the current score.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// Best returns the best score seen across sessions.
func (e *Engine) Best() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.best
}

// State returns the platform-level summary of the game.
func (e *Engine) State() core.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return core.GameState{
		Score:    e.score,
		Best:     e.best,
		GameOver: e.phase != PhasePlaying,
	}
}

func (e *Engine) loadBest() int {
	if e.store == nil {
		return 0
	}
	best, err := e.readBest()
	if err != nil {
		e.logger.Warn("could not read best score", "error", err)
	}
	return best
}

// readBest returns the stored best, or 0 when it is absent or malformed.
func (e *Engine) readBest() (int, error) {
	raw, ok, err := e.store.Get(BestScoreKey)
	if err != nil || !ok {
		return 0, err
	}
	best, err := strconv.Atoi(raw)
	if err != nil || best < 0 {
		e.logger.Warn("ignoring malformed best score", "value", raw)
		return 0, nil
	}
	return best, nil
}

// saveBest raises the stored best to e.best. Other engines may share the
// store, so a higher stored value wins and is adopted.
func (e *Engine) saveBest() {
	if e.store == nil {
		return
	}

	if ms, ok := e.store.(MaxStore); ok {
		stored, err := ms.SetMax(BestScoreKey, e.best)
		if err != nil {
			e.logger.Warn("could not persist best score", "error", err, "best", e.best)
			return
		}
		e.best = max(e.best, stored)
		return
	}

	stored, err := e.readBest()
	if err == nil && stored >= e.best {
		e.best = stored
		return
	}
	if err := e.store.Set(BestScoreKey, strconv.Itoa(e.best)); err != nil {
		e.logger.Warn("could not persist best score", "error", err, "best", e.best)
	}
}
