package snake

import (
	"slices"
	"time"
)

// Snapshot is a read-only copy of the engine state for renderers, observers
// and tests. Mutating it never affects the engine.
type Snapshot struct {
	Tick      uint64
	GridSize  int
	Snake     []Point // Head first
	Food      Point
	HasFood   bool
	Stones    []Point
	Walls     []Point
	Direction Direction
	Pending   Direction
	Score     int
	Best      int
	Speed     time.Duration
	Phase     Phase
	Cause     Cause
	MealTick  uint64
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		Tick:      e.tick,
		GridSize:  e.rules.GridSize,
		Snake:     slices.Clone(e.snake),
		Food:      e.food,
		HasFood:   e.hasFood,
		Stones:    slices.Clone(e.stones),
		Walls:     slices.Clone(e.wallList),
		Direction: e.direction,
		Pending:   e.pending,
		Score:     e.score,
		Best:      e.best,
		Speed:     e.speed,
		Phase:     e.phase,
		Cause:     e.cause,
		MealTick:  e.mealTick,
	}
}

// Head returns the head cell.
func (s Snapshot) Head() Point {
	if len(s.Snake) == 0 {
		return Point{}
	}
	return s.Snake[0]
}

// Len returns the snake length.
func (s Snapshot) Len() int {
	return len(s.Snake)
}

// Blocked reports whether moving the head onto p would end the game.
func (s Snapshot) Blocked(p Point) bool {
	if !p.InSquare(s.GridSize) {
		return true
	}
	return slices.Contains(s.Walls, p) || slices.Contains(s.Stones, p) || slices.Contains(s.Snake, p)
}

// JustAte reports whether the snake ate during the latest tick.
func (s Snapshot) JustAte() bool {
	return s.MealTick != 0 && s.MealTick == s.Tick
}
