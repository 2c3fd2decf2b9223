package snake

// NextDirection picks a move for the demo/simulation driver. It only
// considers safe cells, prefers moves whose reachable area can still hold the
// whole snake, and among those heads for the food. When every move is fatal it
// keeps the current direction.
func NextDirection(s Snapshot) Direction {
	head := s.Head()
	best := DirNone
	bestRoomy := false
	bestDist := 0
	bestArea := 0

	for _, d := range Directions {
		if d == s.Direction.Opposite() {
			continue
		}
		next := head.Add(d.Vector())
		if s.Blocked(next) {
			continue
		}

		area := reachable(s, next, s.Len()+1)
		roomy := area > s.Len()
		dist := 0
		if s.HasFood {
			dist = next.Manhattan(s.Food)
		}

		better := false
		switch {
		case best == DirNone:
			better = true
		case roomy != bestRoomy:
			better = roomy
		case !roomy:
			better = area > bestArea
		default:
			better = dist < bestDist
		}
		if better {
			best, bestRoomy, bestDist, bestArea = d, roomy, dist, area
		}
	}

	if best == DirNone {
		return s.Direction
	}
	return best
}

// reachable counts free cells connected to start, stopping once limit is hit.
func reachable(s Snapshot, start Point, limit int) int {
	seen := map[Point]struct{}{start: {}}
	queue := []Point{start}
	for len(queue) > 0 && len(seen) < limit {
		p := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
			q := p.Add(d.Vector())
			if _, ok := seen[q]; ok || s.Blocked(q) {
				continue
			}
			seen[q] = struct{}{}
			queue = append(queue, q)
		}
	}
	return len(seen)
}
