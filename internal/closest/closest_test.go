package closest

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/cwbudde/closestpair/internal/geom"
	"github.com/cwbudde/closestpair/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type solveFunc func(points []*geom.Point) (geom.Pair, error)

func solvers() map[string]solveFunc {
	return map[string]solveFunc{
		"brute_force":   BruteForce,
		"deterministic": SolveDeterministic,
		"randomized": func(points []*geom.Point) (geom.Pair, error) {
			return SolveRandomized(points, NewRand(42))
		},
	}
}

func pts(coords ...[2]float64) []*geom.Point {
	out := make([]*geom.Point, len(coords))
	for i, c := range coords {
		out[i] = geom.NewPoint(c[0], c[1])
	}
	return out
}

func randomPoints(rng *rand.Rand, n int, extent float64) []*geom.Point {
	out := make([]*geom.Point, n)
	for i := range out {
		out[i] = geom.NewPoint(rng.Float64()*extent, rng.Float64()*extent)
	}
	return out
}

func TestTooFewPoints(t *testing.T) {
	for name, solve := range solvers() {
		t.Run(name, func(t *testing.T) {
			_, err := solve(nil)
			assert.ErrorIs(t, err, ErrTooFewPoints)

			_, err = solve(pts([2]float64{1, 1}))
			assert.ErrorIs(t, err, ErrTooFewPoints)
		})
	}
}

func TestTwoPoints(t *testing.T) {
	for name, solve := range solvers() {
		t.Run(name, func(t *testing.T) {
			in := pts([2]float64{1, 2}, [2]float64{4, 6})
			a, b := in[0], in[1]

			pair, err := solve(in)
			require.NoError(t, err)
			assert.True(t, pair.Contains(a))
			assert.True(t, pair.Contains(b))
			assert.Equal(t, 5.0, pair.Dist)
		})
	}
}

func TestFivePointScenario(t *testing.T) {
	for name, solve := range solvers() {
		t.Run(name, func(t *testing.T) {
			in := pts([2]float64{0, 0}, [2]float64{0, 3}, [2]float64{4, 0}, [2]float64{0, 4}, [2]float64{3, 0})
			p03, p40, p04, p30 := in[1], in[2], in[3], in[4]

			pair, err := solve(in)
			require.NoError(t, err)
			assert.Equal(t, 1.0, pair.Dist)

			vertical := pair.Contains(p03) && pair.Contains(p04)
			horizontal := pair.Contains(p40) && pair.Contains(p30)
			assert.True(t, vertical || horizontal, "unexpected pair %v", pair)
		})
	}
}

func TestDuplicatePair(t *testing.T) {
	for name, solve := range solvers() {
		t.Run(name, func(t *testing.T) {
			in := pts([2]float64{1, 1}, [2]float64{1, 1}, [2]float64{5, 5})
			d1, d2 := in[0], in[1]

			pair, err := solve(in)
			require.NoError(t, err)
			assert.Equal(t, 0.0, pair.Dist)
			assert.True(t, pair.Contains(d1) && pair.Contains(d2))
		})
	}
}

func TestCollinearSharedX(t *testing.T) {
	for name, solve := range solvers() {
		t.Run(name, func(t *testing.T) {
			in := pts([2]float64{0, 5}, [2]float64{0, 0}, [2]float64{0, 3}, [2]float64{0, 1}, [2]float64{0, 4}, [2]float64{0, 2})

			pair, err := solve(in)
			require.NoError(t, err)
			assert.Equal(t, 1.0, pair.Dist)
			assert.InDelta(t, 1.0, pair.A.Dist(pair.B), 0)
		})
	}
}

func TestBruteForceFirstTieWins(t *testing.T) {
	in := pts([2]float64{0, 0}, [2]float64{10, 10}, [2]float64{1, 0}, [2]float64{11, 10})
	snapshot := slices.Clone(in)

	pair, err := BruteForce(in)
	require.NoError(t, err)
	assert.Same(t, in[0], pair.A)
	assert.Same(t, in[2], pair.B)
	assert.Equal(t, snapshot, in, "brute force must not reorder its input")
}

func TestDeterministicSmallInputsMatchBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for n := 2; n <= 5; n++ {
		for trial := 0; trial < 20; trial++ {
			in := randomPoints(rng, n, 10)

			want, err := BruteForce(in)
			require.NoError(t, err)
			got, err := SolveDeterministic(in)
			require.NoError(t, err)

			assert.Equal(t, want, got, "n=%d trial=%d", n, trial)
		}
	}
}

func TestDeterministicLeavesInputSortedByY(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	in := randomPoints(rng, 257, 100)
	members := slices.Clone(in)

	_, err := SolveDeterministic(in)
	require.NoError(t, err)

	assert.True(t, slices.IsSortedFunc(in, byY))
	assert.ElementsMatch(t, members, in, "reordering must keep every point")
}

func TestCrossSolverAgreement(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	sizes := []int{6, 7, 8, 11, 16, 33, 100, 257, 1000}

	for _, n := range sizes {
		for trial := 0; trial < 10; trial++ {
			in := randomPoints(rng, n, 1000)

			want, err := BruteForce(in)
			require.NoError(t, err)

			det, err := SolveDeterministic(slices.Clone(in))
			require.NoError(t, err)
			assert.Equal(t, want.Dist, det.Dist, "deterministic n=%d trial=%d", n, trial)
			assert.Equal(t, det.Dist, det.A.Dist(det.B))

			rnd, err := SolveRandomized(slices.Clone(in), rand.New(rand.NewSource(int64(trial))))
			require.NoError(t, err)
			assert.Equal(t, want.Dist, rnd.Dist, "randomized n=%d trial=%d", n, trial)
			assert.Equal(t, rnd.Dist, rnd.A.Dist(rnd.B))
		}
	}
}

// Integer lattices produce many equal distances and many points exactly on
// strip and cell boundaries.
func TestCrossSolverAgreementOnLattice(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for trial := 0; trial < 20; trial++ {
		seen := make(map[[2]int]bool)
		var in []*geom.Point
		for len(in) < 60 {
			c := [2]int{rng.Intn(40), rng.Intn(40)}
			if seen[c] {
				continue
			}
			seen[c] = true
			in = append(in, geom.NewPoint(float64(c[0]), float64(c[1])))
		}

		want, err := BruteForce(in)
		require.NoError(t, err)

		for name, solve := range solvers() {
			got, err := solve(slices.Clone(in))
			require.NoError(t, err)
			assert.Equal(t, want.Dist, got.Dist, "%s trial=%d", name, trial)
		}
	}
}

func TestPermutationInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	base := randomPoints(rng, 300, 500)

	want, err := BruteForce(base)
	require.NoError(t, err)

	for name, solve := range solvers() {
		t.Run(name, func(t *testing.T) {
			for k := 0; k < 5; k++ {
				in := slices.Clone(base)
				rng.Shuffle(len(in), func(i, j int) { in[i], in[j] = in[j], in[i] })

				got, err := solve(in)
				require.NoError(t, err)
				assert.Equal(t, want.Dist, got.Dist)
			}
		})
	}
}

func TestResultPointsBelongToInput(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	base := randomPoints(rng, 120, 50)

	for name, solve := range solvers() {
		t.Run(name, func(t *testing.T) {
			in := slices.Clone(base)
			pair, err := solve(in)
			require.NoError(t, err)

			assert.Contains(t, base, pair.A)
			assert.Contains(t, base, pair.B)
			assert.NotSame(t, pair.A, pair.B)
		})
	}
}

func TestRandomizedSeedDeterminism(t *testing.T) {
	base := randomPoints(rand.New(rand.NewSource(1)), 200, 100)

	in1 := slices.Clone(base)
	in2 := slices.Clone(base)

	p1, err := SolveRandomized(in1, NewRand(77))
	require.NoError(t, err)
	p2, err := SolveRandomized(in2, NewRand(77))
	require.NoError(t, err)

	assert.Equal(t, in1, in2, "same seed must yield the same permutation")
	assert.Same(t, p1.A, p2.A)
	assert.Same(t, p1.B, p2.B)
}

func TestRandomizedNilRandUsesDefaultStream(t *testing.T) {
	base := randomPoints(rand.New(rand.NewSource(1)), 50, 100)

	in1 := slices.Clone(base)
	in2 := slices.Clone(base)

	_, err := SolveRandomized(in1, nil)
	require.NoError(t, err)
	_, err = SolveRandomized(in2, NewRand(0))
	require.NoError(t, err)

	assert.Equal(t, in1, in2)
}

func TestRandomizedRejectsNegativeCoordinates(t *testing.T) {
	in := pts([2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, -0.5}, [2]float64{4, 4})
	snapshot := slices.Clone(in)

	_, err := SolveRandomized(in, NewRand(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, grid.ErrNegativeCoordinate)
	assert.Contains(t, err.Error(), "point 3")
	assert.Equal(t, snapshot, in, "rejected input must not be shuffled")
}

// Distances between points further apart than ~1.34e154 overflow to +Inf.
// Every seed must still find the finite closest pair.
func TestOverflowingDistancesAgree(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		in := pts([2]float64{0, 0}, [2]float64{1e155, 0}, [2]float64{1e155, 1})

		pair, err := SolveRandomized(in, NewRand(seed))
		require.NoError(t, err, "seed=%d", seed)
		assert.Equal(t, 1.0, pair.Dist, "seed=%d", seed)
		assert.Equal(t, 1e155, pair.A.X, "seed=%d", seed)
		assert.Equal(t, 1e155, pair.B.X, "seed=%d", seed)
	}

	for name, solve := range solvers() {
		t.Run(name, func(t *testing.T) {
			in := pts([2]float64{0, 0}, [2]float64{1e300, 0}, [2]float64{0, 1e300})
			pair, err := solve(in)
			require.NoError(t, err)
			assert.True(t, math.IsInf(pair.Dist, 1))
		})
	}
}

// After every rebuild the new grid must expose every close candidate among
// the points already processed, and the triggering pair must be reachable
// through the neighborhood of its newer point.
func TestRandomizedRebuildKeepsGridConsistent(t *testing.T) {
	in := randomPoints(rand.New(rand.NewSource(31)), 400, 1000)
	want, err := BruteForce(in)
	require.NoError(t, err)

	rebuilds := 0
	lastDelta := 0.0
	s := &Randomized{
		Rand: NewRand(31),
		OnRebuild: func(g *grid.Grid, inserted []*geom.Point, best geom.Pair) {
			rebuilds++

			assert.Equal(t, best.Dist, g.Delta())
			assert.Equal(t, len(inserted), g.Len())
			if lastDelta > 0 {
				assert.Less(t, g.Delta(), lastDelta, "delta must shrink on every rebuild")
			}
			lastDelta = g.Delta()

			assert.Contains(t, inserted, best.B)
			assert.Contains(t, g.Neighbors(best.A.X, best.A.Y), best.B)

			for _, q := range inserted {
				cell, ok := g.Cell(g.CellOf(q.X, q.Y))
				require.True(t, ok)
				assert.Contains(t, cell, q)

				neighbors := g.Neighbors(q.X, q.Y)
				for _, r := range inserted {
					if q != r && q.Dist(r) <= g.Delta() {
						assert.Contains(t, neighbors, r)
					}
				}
			}
		},
	}

	got, err := s.Solve(slices.Clone(in))
	require.NoError(t, err)
	assert.Equal(t, want.Dist, got.Dist)
	assert.Positive(t, rebuilds)
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in   string
		want Algorithm
	}{
		{"brute_force", BruteForceAlgorithm},
		{"Deterministic", DeterministicAlgorithm},
		{" RANDOMIZED ", RandomizedAlgorithm},
	}
	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseAlgorithm("quadtree")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.Contains(t, err.Error(), "brute_force, deterministic, randomized")
}

func TestNew(t *testing.T) {
	for _, alg := range Algorithms() {
		s, err := New(alg, 5)
		require.NoError(t, err)
		assert.Equal(t, alg, s.Name())

		pair, err := s.Solve(pts([2]float64{0, 0}, [2]float64{2, 0}, [2]float64{9, 9}))
		require.NoError(t, err)
		assert.Equal(t, 2.0, pair.Dist)
	}

	_, err := New("nope", 0)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestNewRandSeedPolicy(t *testing.T) {
	assert.Equal(t, NewRand(defaultSeed).Int63(), NewRand(0).Int63())
	assert.NotEqual(t, NewRand(2).Int63(), NewRand(3).Int63())
}
