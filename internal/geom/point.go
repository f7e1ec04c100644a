package geom

import (
	"fmt"
	"math"
)

// Point is a planar coordinate. Points are never mutated after construction,
// so a single *Point may be held by the input slice, recursive partitions and
// grid cells at the same time.
type Point struct {
	X, Y float64
}

// NewPoint allocates a point at (x, y)
func NewPoint(x, y float64) *Point {
	return &Point{X: x, Y: y}
}

// Dist returns the Euclidean distance between p and q
func (p *Point) Dist(q *Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Finite reports whether v is usable as a coordinate: neither NaN nor infinite
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (p *Point) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y)
}

// Pair is the result of a closest-pair query: two distinct input points and
// the distance between them.
type Pair struct {
	A, B *Point
	Dist float64
}

// NewPair builds a pair and computes its distance
func NewPair(a, b *Point) Pair {
	return Pair{A: a, B: b, Dist: a.Dist(b)}
}

// Contains reports whether p is one of the two pair members (by identity)
func (pr Pair) Contains(p *Point) bool {
	return pr.A == p || pr.B == p
}

func (pr Pair) String() string {
	return fmt.Sprintf("%v-%v dist=%g", pr.A, pr.B, pr.Dist)
}
