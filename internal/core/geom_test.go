package core

import "testing"

func TestPointOps(t *testing.T) {
	p := Pt(7, 7)

	if got := p.Add(Pt(0, -1)); got != Pt(7, 6) {
		t.Errorf("Add() = %v, expected (7,6)", got)
	}
	if got := Pt(1, -1).Neg(); got != Pt(-1, 1) {
		t.Errorf("Neg() = %v, expected (-1,1)", got)
	}
	if got := Pt(0, 0).Manhattan(Pt(3, -4)); got != 7 {
		t.Errorf("Manhattan() = %d, expected 7", got)
	}
}

func TestPointInSquare(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		n    int
		want bool
	}{
		{"origin", Pt(0, 0), 15, true},
		{"far corner", Pt(14, 14), 15, true},
		{"x at edge", Pt(15, 3), 15, false},
		{"negative y", Pt(3, -1), 15, false},
		{"empty grid", Pt(0, 0), 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.InSquare(tc.n); got != tc.want {
				t.Errorf("InSquare(%d) = %v, expected %v", tc.n, got, tc.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.want)
		}
	}
}

func TestAbs(t *testing.T) {
	if Abs(-3) != 3 || Abs(3) != 3 || Abs(0) != 0 {
		t.Error("Abs returned wrong value")
	}
}
