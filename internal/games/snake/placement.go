package snake

// place picks a random free cell by rejection sampling. After
// MaxPlacementAttempts misses it falls back to a uniform pick among the free
// cells, and reports false only when the grid has none.
func (e *Engine) place() (Point, bool) {
	n := e.rules.GridSize
	for range e.rules.MaxPlacementAttempts {
		p := Point{X: e.rng.Intn(n), Y: e.rng.Intn(n)}
		if !e.occupied(p) {
			return p, true
		}
	}

	free := e.freeCells()
	if len(free) == 0 {
		return Point{}, false
	}
	e.logger.Debug("placement fell back to free-cell scan", "free", len(free))
	return free[e.rng.Intn(len(free))], true
}

// occupied reports whether p holds a wall, stone, snake segment or the food.
func (e *Engine) occupied(p Point) bool {
	if _, hit := e.walls[p]; hit {
		return true
	}
	if e.hasFood && e.food == p {
		return true
	}
	for _, s := range e.stones {
		if s == p {
			return true
		}
	}
	for _, seg := range e.snake {
		if seg == p {
			return true
		}
	}
	return false
}

func (e *Engine) freeCells() []Point {
	n := e.rules.GridSize
	var free []Point
	for y := range n {
		for x := range n {
			p := Point{X: x, Y: y}
			if !e.occupied(p) {
				free = append(free, p)
			}
		}
	}
	return free
}
