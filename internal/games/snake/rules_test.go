package snake

import (
	"errors"
	"testing"
	"time"
)

func TestCornerWalls(t *testing.T) {
	walls := CornerWalls(15, 2)
	if len(walls) != 16 {
		t.Fatalf("CornerWalls(15, 2) returned %d cells, expected 16", len(walls))
	}

	set := make(map[Point]bool, len(walls))
	for _, w := range walls {
		set[w] = true
	}
	for _, p := range []Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 13, Y: 0}, {X: 14, Y: 1}, {X: 0, Y: 14}, {X: 14, Y: 14}} {
		if !set[p] {
			t.Errorf("Expected %v to be a corner tree", p)
		}
	}
	for _, p := range []Point{{X: 2, Y: 0}, {X: 7, Y: 7}, {X: 12, Y: 14}} {
		if set[p] {
			t.Errorf("Did not expect %v to be a corner tree", p)
		}
	}

	if got := CornerWalls(15, 0); len(got) != 0 {
		t.Errorf("CornerWalls(15, 0) = %v, expected none", got)
	}
}

func TestWallCellsDeduplicatesExtras(t *testing.T) {
	r := DefaultRules()
	r.ExtraWalls = []Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 5, Y: 5}}

	if got := len(r.WallCells()); got != 17 {
		t.Errorf("len(WallCells()) = %d, expected 17", got)
	}
}

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Rules)
		ok     bool
	}{
		{"defaults", func(*Rules) {}, true},
		{"no corner trees", func(r *Rules) { r.CornerBlock = 0 }, true},
		{"zero milestone disables milestones", func(r *Rules) { r.MilestoneEvery = 0 }, true},
		{"tiny grid", func(r *Rules) { r.GridSize = 2 }, false},
		{"corner blocks overlap", func(r *Rules) { r.CornerBlock = 8 }, false},
		{"no start direction", func(r *Rules) { r.StartDirection = DirNone }, false},
		{"zero speed", func(r *Rules) { r.InitialSpeed = 0 }, false},
		{"floor above start speed", func(r *Rules) { r.MinSpeed = 200 * time.Millisecond }, false},
		{"negative step", func(r *Rules) { r.SpeedStep = -time.Millisecond }, false},
		{"negative attempts", func(r *Rules) { r.MaxPlacementAttempts = -1 }, false},
		{"start on a tree", func(r *Rules) { r.Start = Point{X: 0, Y: 0} }, false},
		{"food off the grid", func(r *Rules) { r.InitialFood = Point{X: 15, Y: 4} }, false},
		{"food on start", func(r *Rules) { r.InitialFood = r.Start }, false},
		{"extra wall off the grid", func(r *Rules) { r.ExtraWalls = []Point{{X: -1, Y: 3}} }, false},
		{"extra wall on start", func(r *Rules) { r.ExtraWalls = []Point{{X: 7, Y: 7}} }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := DefaultRules()
			tc.modify(&r)
			err := r.Validate()

			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidRules) {
				t.Errorf("Validate() = %v, expected ErrInvalidRules", err)
			}
		})
	}
}

func TestNewRejectsInvalidRules(t *testing.T) {
	r := DefaultRules()
	r.GridSize = 1
	if _, err := New(r); !errors.Is(err, ErrInvalidRules) {
		t.Errorf("New() error = %v, expected ErrInvalidRules", err)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"up", DirUp, true},
		{"Down", DirDown, true},
		{" left ", DirLeft, true},
		{"RIGHT", DirRight, true},
		{"north", DirNone, false},
		{"", DirNone, false},
	}

	for _, tc := range tests {
		got, err := ParseDirection(tc.in)
		if got != tc.want || (err == nil) != tc.ok {
			t.Errorf("ParseDirection(%q) = %v, %v; expected %v (ok=%v)", tc.in, got, err, tc.want, tc.ok)
		}
	}
}

func TestDirectionVectors(t *testing.T) {
	for _, d := range Directions {
		if d.Vector().Add(d.Opposite().Vector()) != (Point{}) {
			t.Errorf("%v and its opposite do not cancel out", d)
		}
	}
	if DirNone.Valid() || DirNone.Opposite() != DirNone {
		t.Error("DirNone should be invalid and its own opposite")
	}
}
