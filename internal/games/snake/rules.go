package snake

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRules is returned by New and Rules.Validate for rule sets that
// cannot produce a playable initial state.
var ErrInvalidRules = errors.New("snake: invalid rules")

// Rules holds the fixed parameters of a game.
type Rules struct {
	GridSize    int     // Side of the square field
	CornerBlock int     // Side of the wall block placed in each corner (0 = none)
	ExtraWalls  []Point // Additional static wall cells

	Start          Point
	StartDirection Direction
	InitialFood    Point

	InitialSpeed time.Duration // Tick interval at game start
	MinSpeed     time.Duration // Floor for the tick interval
	SpeedStep    time.Duration // Interval decrease per milestone

	// MilestoneEvery is the score period at which speed drops and a stone appears.
	MilestoneEvery int

	// MaxPlacementAttempts caps rejection sampling before falling back to a
	// scan of the free cells.
	MaxPlacementAttempts int
}

// DefaultRules returns the classic 15x15 field with corner trees.
func DefaultRules() Rules {
	return Rules{
		GridSize:             15,
		CornerBlock:          2,
		Start:                Point{X: 7, Y: 7},
		StartDirection:       DirUp,
		InitialFood:          Point{X: 7, Y: 4},
		InitialSpeed:         150 * time.Millisecond,
		MinSpeed:             80 * time.Millisecond,
		SpeedStep:            10 * time.Millisecond,
		MilestoneEvery:       5,
		MaxPlacementAttempts: 1024,
	}
}

// CornerWalls returns a block x block square of cells in each corner of an
// n x n grid, top-left first.
func CornerWalls(n, block int) []Point {
	if block <= 0 || n <= 0 {
		return nil
	}
	block = min(block, n)
	origins := []Point{
		{X: 0, Y: 0},
		{X: n - block, Y: 0},
		{X: 0, Y: n - block},
		{X: n - block, Y: n - block},
	}

	seen := make(map[Point]struct{}, 4*block*block)
	cells := make([]Point, 0, 4*block*block)
	for _, o := range origins {
		for dy := range block {
			for dx := range block {
				p := Point{X: o.X + dx, Y: o.Y + dy}
				if _, dup := seen[p]; dup {
					continue
				}
				seen[p] = struct{}{}
				cells = append(cells, p)
			}
		}
	}
	return cells
}

// WallCells returns the deduplicated static walls: corner blocks, then extras.
func (r Rules) WallCells() []Point {
	cells := CornerWalls(r.GridSize, r.CornerBlock)
	seen := make(map[Point]struct{}, len(cells)+len(r.ExtraWalls))
	for _, c := range cells {
		seen[c] = struct{}{}
	}
	for _, w := range r.ExtraWalls {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		cells = append(cells, w)
	}
	return cells
}

// Validate checks that the rules describe a playable game.
func (r Rules) Validate() error {
	n := r.GridSize
	switch {
	case n < 3:
		return fmt.Errorf("%w: grid size %d is below 3", ErrInvalidRules, n)
	case r.CornerBlock < 0 || 2*r.CornerBlock >= n:
		return fmt.Errorf("%w: corner block %d does not fit a %dx%d grid", ErrInvalidRules, r.CornerBlock, n, n)
	case !r.StartDirection.Valid():
		return fmt.Errorf("%w: start direction %v", ErrInvalidRules, r.StartDirection)
	case r.InitialSpeed <= 0 || r.MinSpeed <= 0:
		return fmt.Errorf("%w: speeds must be positive", ErrInvalidRules)
	case r.MinSpeed > r.InitialSpeed:
		return fmt.Errorf("%w: min speed %v exceeds initial speed %v", ErrInvalidRules, r.MinSpeed, r.InitialSpeed)
	case r.SpeedStep < 0:
		return fmt.Errorf("%w: negative speed step", ErrInvalidRules)
	case r.MilestoneEvery < 0:
		return fmt.Errorf("%w: negative milestone period", ErrInvalidRules)
	case r.MaxPlacementAttempts < 0:
		return fmt.Errorf("%w: negative placement attempts", ErrInvalidRules)
	}

	walls := make(map[Point]struct{})
	for _, w := range r.WallCells() {
		if !w.InSquare(n) {
			return fmt.Errorf("%w: wall %v outside the grid", ErrInvalidRules, w)
		}
		walls[w] = struct{}{}
	}

	for name, p := range map[string]Point{"start": r.Start, "initial food": r.InitialFood} {
		if !p.InSquare(n) {
			return fmt.Errorf("%w: %s %v outside the grid", ErrInvalidRules, name, p)
		}
		if _, hit := walls[p]; hit {
			return fmt.Errorf("%w: %s %v is a wall", ErrInvalidRules, name, p)
		}
	}
	if r.Start == r.InitialFood {
		return fmt.Errorf("%w: initial food on the start cell", ErrInvalidRules)
	}
	return nil
}
