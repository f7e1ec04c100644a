package closest

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/cwbudde/closestpair/internal/geom"
	"github.com/cwbudde/closestpair/internal/grid"
)

// Randomized is the incremental randomized solver. It runs in O(n) expected
// time for inputs in the non-negative quadrant.
type Randomized struct {
	// Rand drives the shuffle. nil selects the default deterministic stream.
	Rand *rand.Rand

	// OnRebuild, if set, is called after every grid rebuild with the new grid,
	// the points it holds and the pair that triggered the rebuild.
	OnRebuild func(g *grid.Grid, inserted []*geom.Point, best geom.Pair)
}

func (s *Randomized) Name() Algorithm { return RandomizedAlgorithm }

// SolveRandomized runs the randomized solver with rng (nil allowed)
func SolveRandomized(points []*geom.Point, rng *rand.Rand) (geom.Pair, error) {
	s := &Randomized{Rand: rng}
	return s.Solve(points)
}

// Solve shuffles points in place and inserts them one by one into a grid
// whose cell size is the best distance found so far. Each new point is
// compared against its cell and the adjacent ones. Whenever the best distance
// shrinks the grid is discarded and rebuilt from every point already
// processed.
//
// Coordinates must be non-negative; otherwise grid.ErrNegativeCoordinate is
// returned and points is left untouched.
func (s *Randomized) Solve(points []*geom.Point) (geom.Pair, error) {
	n := len(points)
	if n < 2 {
		return geom.Pair{}, tooFew(n)
	}
	for i, p := range points {
		if p.X < 0 || p.Y < 0 {
			return geom.Pair{}, fmt.Errorf("point %d: %w", i+1, &grid.CoordinateError{Point: p})
		}
	}

	rng := s.Rand
	if rng == nil {
		rng = NewRand(0)
	}
	rng.Shuffle(n, func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})

	best := geom.NewPair(points[0], points[1])
	if best.Dist == 0 {
		return best, nil
	}

	g, err := buildGrid(best.Dist, points[:2])
	if err != nil {
		return geom.Pair{}, err
	}

	rebuilds := 0
	cells := make([]grid.Cell, 0, 9)

	for i := 2; i < n; i++ {
		p := points[i]
		improved := false

		cells = grid.AppendNeighborhood(cells[:0], g.CellOf(p.X, p.Y))
		for _, c := range cells {
			candidates, ok := g.Cell(c)
			if !ok {
				continue
			}
			for _, q := range candidates {
				if d := p.Dist(q); d < best.Dist {
					best = geom.Pair{A: p, B: q, Dist: d}
					improved = true
				}
			}
		}

		if improved {
			// A zero distance cannot be beaten and is not a valid cell size.
			if best.Dist == 0 {
				break
			}
			g, err = buildGrid(best.Dist, points[:i])
			if err != nil {
				return geom.Pair{}, err
			}
			rebuilds++
			if s.OnRebuild != nil {
				s.OnRebuild(g, points[:i], best)
			}
		}

		if err := g.Insert(p); err != nil {
			return geom.Pair{}, err
		}
	}

	slog.Debug("Randomized closest pair complete", "points", n, "rebuilds", rebuilds, "dist", best.Dist)

	return best, nil
}

// buildGrid creates a grid with cell size delta holding pts
func buildGrid(delta float64, pts []*geom.Point) (*grid.Grid, error) {
	g, err := grid.NewWithCapacity(delta, len(pts))
	if err != nil {
		return nil, fmt.Errorf("failed to create grid: %w", err)
	}
	for _, p := range pts {
		if err := g.Insert(p); err != nil {
			return nil, err
		}
	}
	return g, nil
}
