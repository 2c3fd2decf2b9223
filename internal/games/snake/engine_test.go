package snake

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(DefaultRules(), append([]Option{WithSeed(42)}, opts...)...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}

// aim points the snake at dir without going through the reversal guard.
func aim(e *Engine, dir Direction) {
	e.direction = dir
	e.pending = dir
}

func TestInitialState(t *testing.T) {
	e := newTestEngine(t)
	snap := e.Snapshot()

	if snap.Len() != 1 || snap.Head() != (Point{X: 7, Y: 7}) {
		t.Errorf("Expected single segment at (7,7), got %v", snap.Snake)
	}
	if snap.Direction != DirUp || snap.Pending != DirUp {
		t.Errorf("Expected initial direction up, got %v/%v", snap.Direction, snap.Pending)
	}
	if !snap.HasFood || snap.Food != (Point{X: 7, Y: 4}) {
		t.Errorf("Expected food at (7,4), got %v", snap.Food)
	}
	if snap.Speed != 150*time.Millisecond {
		t.Errorf("Expected initial speed 150ms, got %v", snap.Speed)
	}
	if snap.Phase != PhasePlaying || snap.Score != 0 || len(snap.Stones) != 0 {
		t.Errorf("Unexpected initial state: %+v", snap)
	}
	if len(snap.Walls) != 16 {
		t.Errorf("Expected 16 corner trees, got %d", len(snap.Walls))
	}
}

func TestEatFirstFood(t *testing.T) {
	e := newTestEngine(t)

	wantHeads := []Point{{X: 7, Y: 6}, {X: 7, Y: 5}, {X: 7, Y: 4}}
	var res TickResult
	for i, want := range wantHeads {
		res = e.Advance()
		if got := e.Snapshot().Head(); got != want {
			t.Fatalf("tick %d: head = %v, expected %v", i+1, got, want)
		}
	}

	if !res.Ate {
		t.Error("Third tick should report eating")
	}
	snap := e.Snapshot()
	if snap.Score != 1 {
		t.Errorf("Score = %d, expected 1", snap.Score)
	}
	if !slices.Equal(snap.Snake, []Point{{X: 7, Y: 4}, {X: 7, Y: 5}}) {
		t.Errorf("Snake = %v, expected [(7,4) (7,5)]", snap.Snake)
	}
	if !snap.HasFood {
		t.Fatal("New food should have been placed")
	}
	if slices.Contains(snap.Snake, snap.Food) || slices.Contains(snap.Walls, snap.Food) {
		t.Errorf("New food %v overlaps snake or walls", snap.Food)
	}
	if !snap.Food.InSquare(snap.GridSize) {
		t.Errorf("New food %v outside the grid", snap.Food)
	}
}

func TestReversalRejected(t *testing.T) {
	e := newTestEngine(t)

	if e.SetPendingDirection(DirDown) {
		t.Error("Down while moving up should be rejected")
	}
	if e.Snapshot().Pending != DirUp {
		t.Errorf("Pending should stay up, got %v", e.Snapshot().Pending)
	}

	e.Advance()
	if got := e.Snapshot().Head(); got != (Point{X: 7, Y: 6}) {
		t.Errorf("Snake should keep moving up, head at %v", got)
	}
}

func TestNoReversalAnyDirection(t *testing.T) {
	for _, d := range Directions {
		t.Run(d.String(), func(t *testing.T) {
			e := newTestEngine(t)
			aim(e, d)

			if e.SetPendingDirection(d.Opposite()) {
				t.Errorf("Reversal %v -> %v accepted", d, d.Opposite())
			}
			if e.pending != d {
				t.Errorf("Pending = %v, expected %v", e.pending, d)
			}
		})
	}
}

func TestQuickDoubleInputCannotReverse(t *testing.T) {
	e := newTestEngine(t)

	if !e.SetPendingDirection(DirLeft) {
		t.Fatal("Left should be accepted while moving up")
	}
	// Current direction is still up, so down stays forbidden
	if e.SetPendingDirection(DirDown) {
		t.Error("Down should be rejected before the tick consumes left")
	}
	if e.pending != DirLeft {
		t.Errorf("Pending = %v, expected left", e.pending)
	}

	if !e.SetPendingDirection(DirRight) {
		t.Error("Right is orthogonal to up and should be accepted")
	}
	e.Advance()
	if got := e.Snapshot().Head(); got != (Point{X: 8, Y: 7}) {
		t.Errorf("Head = %v, expected (8,7)", got)
	}
}

func TestInvalidDirectionIgnored(t *testing.T) {
	e := newTestEngine(t)
	if e.SetPendingDirection(DirNone) {
		t.Error("DirNone should be rejected")
	}
	if e.pending != DirUp {
		t.Errorf("Pending = %v, expected up", e.pending)
	}
}

func TestCollisionCauses(t *testing.T) {
	tests := []struct {
		name   string
		snake  []Point
		stones []Point
		dir    Direction
		want   Cause
	}{
		{
			name:  "out of bounds left edge",
			snake: []Point{{X: 0, Y: 7}},
			dir:   DirLeft,
			want:  CauseOutOfBounds,
		},
		{
			name:  "out of bounds bottom edge",
			snake: []Point{{X: 7, Y: 14}},
			dir:   DirDown,
			want:  CauseOutOfBounds,
		},
		{
			name:  "corner tree",
			snake: []Point{{X: 2, Y: 0}},
			dir:   DirLeft,
			want:  CauseWall,
		},
		{
			name:   "stone",
			snake:  []Point{{X: 7, Y: 7}},
			stones: []Point{{X: 7, Y: 6}},
			dir:    DirUp,
			want:   CauseStone,
		},
		{
			name:  "own tail",
			snake: []Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}},
			dir:   DirRight,
			want:  CauseSelf,
		},
		{
			name:   "tree beats stone on the same cell",
			snake:  []Point{{X: 2, Y: 0}},
			stones: []Point{{X: 1, Y: 0}},
			dir:    DirLeft,
			want:   CauseWall,
		},
		{
			name:   "stone beats body on the same cell",
			snake:  []Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}},
			stones: []Point{{X: 6, Y: 5}},
			dir:    DirRight,
			want:   CauseStone,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t)
			e.snake = tc.snake
			e.stones = tc.stones
			e.food = Point{X: 10, Y: 10}
			aim(e, tc.dir)

			res := e.Advance()
			if res.Cause != tc.want {
				t.Errorf("Cause = %q, expected %q", res.Cause, tc.want)
			}
			if res.Moved {
				t.Error("A fatal tick should not move the snake")
			}
			if e.Phase() != PhaseGameOver {
				t.Errorf("Phase = %v, expected game over", e.Phase())
			}
			if e.Snapshot().Cause != tc.want {
				t.Errorf("Snapshot cause = %q, expected %q", e.Snapshot().Cause, tc.want)
			}
		})
	}
}

func TestAdvanceAfterGameOverIsNoop(t *testing.T) {
	e := newTestEngine(t)
	e.snake = []Point{{X: 0, Y: 7}}
	e.stones = []Point{{X: 5, Y: 5}}
	aim(e, DirLeft)
	e.Advance()

	before := e.Snapshot()
	for range 10 {
		if res := e.Advance(); res != (TickResult{}) {
			t.Fatalf("Advance after game over returned %+v", res)
		}
		e.SetPendingDirection(DirUp)
	}
	after := e.Snapshot()

	if !slices.Equal(before.Snake, after.Snake) || !slices.Equal(before.Stones, after.Stones) {
		t.Error("Snake or stones changed after game over")
	}
	if before.Score != after.Score || before.Tick != after.Tick {
		t.Error("Score or tick changed after game over")
	}
}

func TestMilestoneAddsStoneAndSpeedsUp(t *testing.T) {
	e := newTestEngine(t)
	e.score = 4
	e.food = Point{X: 7, Y: 6}

	res := e.Advance()
	if !res.Ate || !res.StoneAdded || !res.SpeedChanged {
		t.Fatalf("Expected meal, stone and speed change, got %+v", res)
	}

	snap := e.Snapshot()
	if snap.Score != 5 {
		t.Errorf("Score = %d, expected 5", snap.Score)
	}
	if snap.Speed != 140*time.Millisecond {
		t.Errorf("Speed = %v, expected 140ms", snap.Speed)
	}
	if len(snap.Stones) != 1 {
		t.Fatalf("Expected 1 stone, got %d", len(snap.Stones))
	}

	stone := snap.Stones[0]
	if slices.Contains(snap.Snake, stone) || slices.Contains(snap.Walls, stone) {
		t.Errorf("Stone %v overlaps snake or walls", stone)
	}
	if snap.Food == stone {
		t.Errorf("Food placed on the new stone %v", stone)
	}
}

func TestNonMilestoneMealKeepsSpeed(t *testing.T) {
	e := newTestEngine(t)
	e.score = 2
	e.food = Point{X: 7, Y: 6}

	res := e.Advance()
	if !res.Ate || res.StoneAdded || res.SpeedChanged {
		t.Errorf("Unexpected result for score 3: %+v", res)
	}
	if e.Speed() != 150*time.Millisecond {
		t.Errorf("Speed = %v, expected 150ms", e.Speed())
	}
}

func TestSpeedFloor(t *testing.T) {
	e := newTestEngine(t)
	rules := e.Rules()
	prev := e.Speed()

	for i := range 200 {
		e.snake = []Point{rules.Start}
		e.stones = nil
		e.food = rules.Start.Add(DirUp.Vector())
		e.hasFood = true
		aim(e, DirUp)

		if res := e.Advance(); !res.Ate {
			t.Fatalf("meal %d: expected to eat, got %+v", i+1, res)
		}

		speed := e.Speed()
		if speed < rules.MinSpeed {
			t.Fatalf("Speed %v dropped below floor %v at score %d", speed, rules.MinSpeed, e.Score())
		}
		if speed > prev {
			t.Fatalf("Speed increased from %v to %v at score %d", prev, speed, e.Score())
		}
		prev = speed
	}

	if e.Speed() != rules.MinSpeed {
		t.Errorf("Speed = %v, expected floor %v", e.Speed(), rules.MinSpeed)
	}
}

func TestGrowthBoundsAndPlacement(t *testing.T) {
	e := newTestEngine(t)
	meals := 0

	for tick := 0; tick < 2000 && e.Phase() == PhasePlaying; tick++ {
		before := e.Snapshot()
		e.SetPendingDirection(NextDirection(before))
		res := e.Advance()
		snap := e.Snapshot()

		if res.Ate {
			meals++
		}
		if res.Moved && snap.Len() != 1+meals {
			t.Fatalf("tick %d: length %d, expected %d", tick, snap.Len(), 1+meals)
		}

		for _, p := range snap.Snake {
			if !p.InSquare(snap.GridSize) {
				t.Fatalf("tick %d: segment %v out of bounds", tick, p)
			}
		}
		for i, s := range snap.Stones {
			if !s.InSquare(snap.GridSize) {
				t.Fatalf("tick %d: stone %v out of bounds", tick, s)
			}
			if slices.Contains(snap.Walls, s) || slices.Contains(snap.Stones[:i], s) {
				t.Fatalf("tick %d: stone %v overlaps walls or another stone", tick, s)
			}
		}
		if res.StoneAdded {
			stone := snap.Stones[len(snap.Stones)-1]
			if slices.Contains(snap.Snake, stone) {
				t.Fatalf("tick %d: new stone %v on the snake", tick, stone)
			}
		}
		if res.Ate && snap.HasFood {
			if !snap.Food.InSquare(snap.GridSize) {
				t.Fatalf("tick %d: food %v out of bounds", tick, snap.Food)
			}
			if slices.Contains(snap.Snake, snap.Food) || slices.Contains(snap.Walls, snap.Food) || slices.Contains(snap.Stones, snap.Food) {
				t.Fatalf("tick %d: food %v on an occupied cell", tick, snap.Food)
			}
		}
	}

	if meals == 0 {
		t.Error("Autopilot should have eaten at least once")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		e := newTestEngine(t)
		for range 300 {
			if e.Phase() != PhasePlaying {
				break
			}
			e.SetPendingDirection(NextDirection(e.Snapshot()))
			e.Advance()
		}
		return e.Snapshot()
	}

	a, b := run(), run()
	if a.Tick != b.Tick || a.Score != b.Score || a.Food != b.Food {
		t.Errorf("Runs diverged: tick %d/%d score %d/%d food %v/%v", a.Tick, b.Tick, a.Score, b.Score, a.Food, b.Food)
	}
	if !slices.Equal(a.Snake, b.Snake) || !slices.Equal(a.Stones, b.Stones) {
		t.Error("Runs diverged in snake or stones")
	}
}

func TestReset(t *testing.T) {
	e := newTestEngine(t)
	e.score = 4
	e.food = Point{X: 7, Y: 6}
	e.Advance()
	e.SetPendingDirection(DirLeft)
	e.Advance()

	e.Reset()
	snap := e.Snapshot()

	if !slices.Equal(snap.Snake, []Point{{X: 7, Y: 7}}) {
		t.Errorf("Snake = %v after reset", snap.Snake)
	}
	if snap.Direction != DirUp || snap.Pending != DirUp {
		t.Errorf("Direction = %v/%v after reset", snap.Direction, snap.Pending)
	}
	if snap.Score != 0 || len(snap.Stones) != 0 || snap.Tick != 0 {
		t.Errorf("Score/stones/tick not cleared: %+v", snap)
	}
	if snap.Speed != 150*time.Millisecond || snap.Phase != PhasePlaying || snap.Cause != CauseNone {
		t.Errorf("Speed/phase/cause not reset: %+v", snap)
	}
	if snap.Food != (Point{X: 7, Y: 4}) || !snap.HasFood {
		t.Errorf("Food = %v after reset, expected (7,4)", snap.Food)
	}
	if snap.Best != 5 {
		t.Errorf("Best = %d, expected 5 to survive reset", snap.Best)
	}
}

func TestBestScorePersistence(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Set(BestScoreKey, "7"); err != nil {
		t.Fatal(err)
	}

	e := newTestEngine(t, WithBestStore(store))
	if e.Best() != 7 {
		t.Fatalf("Best = %d, expected 7 from store", e.Best())
	}

	e.score = 7
	e.food = Point{X: 7, Y: 6}
	res := e.Advance()
	if !res.BestChanged || e.Best() != 8 {
		t.Fatalf("Expected best to move to 8, got %d (%+v)", e.Best(), res)
	}

	v, ok, _ := store.Get(BestScoreKey)
	if !ok || v != "8" {
		t.Errorf("Stored best = %q (present %v), expected \"8\"", v, ok)
	}

	// A later engine starts from the stored value
	e2 := newTestEngine(t, WithBestStore(store))
	if e2.Best() != 8 {
		t.Errorf("Second engine best = %d, expected 8", e2.Best())
	}
}

func TestBestScoreMalformedOrMissing(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
	}{
		{"missing", "", false},
		{"garbage", "lots", true},
		{"negative", "-3", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := NewMemoryStore()
			if tc.set {
				store.Set(BestScoreKey, tc.value) //nolint:errcheck // memory store never fails
			}
			e := newTestEngine(t, WithBestStore(store))
			if e.Best() != 0 {
				t.Errorf("Best = %d, expected 0", e.Best())
			}
		})
	}
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }
func (failingStore) Set(string, string) error        { return errors.New("disk on fire") }

func TestBestScoreStoreErrorsAreNotFatal(t *testing.T) {
	e := newTestEngine(t, WithBestStore(failingStore{}))
	e.food = Point{X: 7, Y: 6}

	res := e.Advance()
	if !res.Ate || !res.BestChanged || e.Best() != 1 {
		t.Errorf("Engine should keep tracking best despite store errors, got %+v best=%d", res, e.Best())
	}
}

// plainStore hides MemoryStore.SetMax so the engine falls back to Get and Set.
type plainStore struct{ m *MemoryStore }

func (p plainStore) Get(key string) (string, bool, error) { return p.m.Get(key) }
func (p plainStore) Set(key, value string) error          { return p.m.Set(key, value) }

// eatAhead puts food in front of the head and advances onto it.
func eatAhead(e *Engine) TickResult {
	e.food = e.snake[0].Add(e.direction.Vector())
	e.hasFood = true
	return e.Advance()
}

func TestSharedBestNeverRegresses(t *testing.T) {
	tests := []struct {
		name  string
		store func(*MemoryStore) BestStore
	}{
		{"atomic max", func(m *MemoryStore) BestStore { return m }},
		{"get and set", func(m *MemoryStore) BestStore { return plainStore{m} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mem := NewMemoryStore()
			a := newTestEngine(t, WithBestStore(tc.store(mem)))
			b := newTestEngine(t, WithBestStore(tc.store(mem)))

			for range 3 {
				if res := eatAhead(b); !res.Ate {
					t.Fatalf("Session B did not eat: %+v", res)
				}
			}
			if res := eatAhead(a); !res.Ate || a.Score() != 1 {
				t.Fatalf("Session A did not eat: %+v", res)
			}

			if v, _, _ := mem.Get(BestScoreKey); v != "3" {
				t.Errorf("Persisted best = %q after scores 3 and 1, expected \"3\"", v)
			}
			if a.Best() != 3 {
				t.Errorf("Session A best = %d, expected the shared 3", a.Best())
			}

			// A beating the shared best still raises it
			eatAhead(a)
			eatAhead(a)
			eatAhead(a)
			if v, _, _ := mem.Get(BestScoreKey); v != "4" || a.Best() != 4 {
				t.Errorf("Persisted best = %q, engine best = %d; expected 4", v, a.Best())
			}
		})
	}
}

func TestMemoryStoreSetMax(t *testing.T) {
	m := NewMemoryStore()
	steps := []struct{ value, want int }{{2, 2}, {1, 2}, {2, 2}, {6, 6}}
	for _, s := range steps {
		if got, _ := m.SetMax(BestScoreKey, s.value); got != s.want {
			t.Errorf("SetMax(%d) = %d, expected %d", s.value, got, s.want)
		}
	}

	m.Set("junk", "lots") //nolint:errcheck // memory store never fails
	if got, _ := m.SetMax("junk", 1); got != 1 {
		t.Errorf("SetMax over malformed = %d, expected 1", got)
	}
}

func TestPlacementFallsBackToScan(t *testing.T) {
	rules := DefaultRules()
	rules.MaxPlacementAttempts = 0
	e, err := New(rules, WithSeed(7))
	if err != nil {
		t.Fatal(err)
	}

	p, ok := e.place()
	if !ok {
		t.Fatal("Expected a free cell")
	}
	if e.occupied(p) {
		t.Errorf("Fallback picked occupied cell %v", p)
	}
}

func TestPlacementOnFullGrid(t *testing.T) {
	rules := DefaultRules()
	rules.GridSize = 3
	rules.CornerBlock = 0
	rules.Start = Point{X: 1, Y: 1}
	rules.InitialFood = Point{X: 0, Y: 0}
	e, err := New(rules, WithSeed(7))
	if err != nil {
		t.Fatal(err)
	}

	e.snake = nil
	for y := range 3 {
		for x := range 3 {
			e.snake = append(e.snake, Point{X: x, Y: y})
		}
	}
	e.hasFood = false

	if _, ok := e.place(); ok {
		t.Error("Placement on a full grid should fail")
	}
}

func TestConcurrentInputAndTicks(t *testing.T) {
	e := newTestEngine(t)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := range 500 {
			e.SetPendingDirection(Directions[i%4])
			_ = e.Snapshot()
		}
	}()
	for range 500 {
		e.Advance()
	}
	<-done

	snap := e.Snapshot()
	for _, p := range snap.Snake {
		if !p.InSquare(snap.GridSize) {
			t.Fatalf("Segment %v out of bounds", p)
		}
	}
}
