package closest

import (
	"cmp"
	"math"
	"slices"

	"github.com/cwbudde/closestpair/internal/geom"
)

// smallPartition is the largest partition solved by brute force instead of
// being split further
const smallPartition = 5

// SolveDeterministic finds the closest pair by divide and conquer in
// O(n log n).
//
// Inputs of up to five points are handed to BruteForce unchanged. Larger
// inputs are reordered in place: sorted by x first, then every partition is
// left sorted by y, so on return points is sorted by y. Callers must not rely
// on the original order.
func SolveDeterministic(points []*geom.Point) (geom.Pair, error) {
	if len(points) < 2 {
		return geom.Pair{}, tooFew(len(points))
	}
	if len(points) <= smallPartition {
		return bruteForce(points), nil
	}

	slices.SortFunc(points, byX)

	scratch := make([]*geom.Point, len(points))
	return divideAndConquer(points, scratch), nil
}

// divideAndConquer expects points sorted by x and returns them sorted by y.
// scratch must be at least as long as points and is used by the merge step.
func divideAndConquer(points, scratch []*geom.Point) geom.Pair {
	n := len(points)
	if n <= smallPartition {
		slices.SortFunc(points, byY)
		return bruteForce(points)
	}

	m := n / 2

	// Must be taken before recursing: the halves come back sorted by y.
	var median float64
	if n%2 == 0 {
		median = (points[m-1].X + points[m].X) / 2
	} else {
		median = points[m].X
	}

	left := divideAndConquer(points[:m], scratch[:m])
	right := divideAndConquer(points[m:], scratch[m:n])

	best := left
	if right.Dist < left.Dist {
		best = right
	}

	best = searchStrip(points, m, median, best)
	mergeByY(points, m, scratch[:n])

	return best
}

// searchStrip looks for a cross pair closer than best. points[:m] and
// points[m:] are each sorted by y. Only points strictly within best.Dist of
// the median in x are considered, and for a left point pi only right points
// with y in (pi.Y-dist, pi.Y+dist).
//
// j is the lowest right-half candidate and never moves backwards: the lower
// y bound only grows because the left half is y-sorted and dist only shrinks.
func searchStrip(points []*geom.Point, m int, median float64, best geom.Pair) geom.Pair {
	n := len(points)
	dist := best.Dist

	j := m
	for i := 0; i < m; i++ {
		pi := points[i]
		if math.Abs(pi.X-median) >= dist {
			continue
		}

		lower := pi.Y - dist
		upper := pi.Y + dist

		for j < n {
			pj := points[j]
			if math.Abs(pj.X-median) < dist && pj.Y > lower {
				break
			}
			j++
		}

		for r := j; r < n; r++ {
			pr := points[r]
			if pr.Y >= upper {
				break
			}
			if math.Abs(pr.X-median) >= dist {
				continue
			}
			if d := pi.Dist(pr); d < dist {
				best = geom.Pair{A: pi, B: pr, Dist: d}
				dist = d
			}
		}
	}

	return best
}

// mergeByY merges the y-sorted runs points[:m] and points[m:] in place
// through buf (len(buf) == len(points)). Ties keep the left element first.
func mergeByY(points []*geom.Point, m int, buf []*geom.Point) {
	n := len(points)
	copy(buf, points)

	l, r := 0, m
	for k := 0; k < n; k++ {
		if r == n || (l < m && buf[l].Y <= buf[r].Y) {
			points[k] = buf[l]
			l++
		} else {
			points[k] = buf[r]
			r++
		}
	}
}

func byX(a, b *geom.Point) int { return cmp.Compare(a.X, b.X) }

func byY(a, b *geom.Point) int { return cmp.Compare(a.Y, b.Y) }

// Deterministic adapts SolveDeterministic to the Solver interface
type Deterministic struct{}

func (Deterministic) Name() Algorithm { return DeterministicAlgorithm }

func (Deterministic) Solve(points []*geom.Point) (geom.Pair, error) {
	return SolveDeterministic(points)
}
