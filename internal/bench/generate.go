package bench

import (
	"math/rand"

	"github.com/cwbudde/closestpair/internal/geom"
)

// Generate draws n points uniformly from [0, extent)²
func Generate(n int, extent float64, rng *rand.Rand) []*geom.Point {
	points := make([]*geom.Point, n)
	for i := range points {
		points[i] = geom.NewPoint(rng.Float64()*extent, rng.Float64()*extent)
	}
	return points
}
