package closest

import "github.com/cwbudde/closestpair/internal/geom"

// BruteForce examines all n(n-1)/2 pairs in (i, j>i) order. The first pair
// with the minimum distance wins; later ties do not replace it. points is not
// modified.
func BruteForce(points []*geom.Point) (geom.Pair, error) {
	if len(points) < 2 {
		return geom.Pair{}, tooFew(len(points))
	}
	return bruteForce(points), nil
}

// bruteForce assumes len(points) >= 2
func bruteForce(points []*geom.Point) geom.Pair {
	best := geom.NewPair(points[0], points[1])

	for i := 0; i < len(points)-1; i++ {
		pi := points[i]
		for j := i + 1; j < len(points); j++ {
			if d := pi.Dist(points[j]); d < best.Dist {
				best = geom.Pair{A: pi, B: points[j], Dist: d}
			}
		}
	}

	return best
}

// BruteForceSolver adapts BruteForce to the Solver interface
type BruteForceSolver struct{}

func (BruteForceSolver) Name() Algorithm { return BruteForceAlgorithm }

func (BruteForceSolver) Solve(points []*geom.Point) (geom.Pair, error) {
	return BruteForce(points)
}
