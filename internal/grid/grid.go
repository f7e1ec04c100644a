// Package grid implements a uniform spatial hash over the non-negative
// quadrant. Points are bucketed into square cells of side delta keyed by
// (floor(x/delta), floor(y/delta)).
//
// A Grid never removes points and never changes its cell size. When a caller
// needs a different delta it builds a new Grid and re-inserts.
package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/closestpair/internal/geom"
)

// MaxCellIndex bounds cell coordinates so that neighbor arithmetic (+1) stays
// within int range on every platform. Points further out share the last cell.
const MaxCellIndex = math.MaxInt32 - 1

// ErrInvalidCellSize is returned by New when delta is NaN or not positive.
// An infinite delta is valid and puts every finite point in cell (0, 0).
var ErrInvalidCellSize = errors.New("grid: cell size must be positive")

// ErrNegativeCoordinate is returned when a point with a negative coordinate
// is inserted. Use errors.Is(err, ErrNegativeCoordinate) to check for it.
var ErrNegativeCoordinate = &CoordinateError{}

// CoordinateError reports a point that lies outside the non-negative quadrant.
type CoordinateError struct {
	Point *geom.Point
}

func (e *CoordinateError) Error() string {
	if e.Point != nil {
		return fmt.Sprintf("grid: negative coordinate in point %v", e.Point)
	}
	return "grid: negative coordinate"
}

func (e *CoordinateError) Is(target error) bool {
	_, ok := target.(*CoordinateError)
	return ok
}

// Cell identifies one square bucket of the grid
type Cell struct {
	X, Y int
}

// Grid maps cells to the points that fall inside them
type Grid struct {
	cells map[Cell][]*geom.Point
	delta float64
	n     int
}

// New creates an empty grid with cell side delta
func New(delta float64) (*Grid, error) {
	return NewWithCapacity(delta, 0)
}

// NewWithCapacity creates an empty grid sized for roughly n populated cells
func NewWithCapacity(delta float64, n int) (*Grid, error) {
	if !(delta > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCellSize, delta)
	}
	return &Grid{
		cells: make(map[Cell][]*geom.Point, n),
		delta: delta,
	}, nil
}

// Delta returns the cell side length
func (g *Grid) Delta() float64 {
	return g.delta
}

// Len returns the number of inserted points
func (g *Grid) Len() int {
	return g.n
}

// Cells returns the number of populated cells
func (g *Grid) Cells() int {
	return len(g.cells)
}

// CellOf returns the cell containing (x, y). Coordinates are clamped to
// [0, MaxCellIndex] so the result is always a valid key.
func (g *Grid) CellOf(x, y float64) Cell {
	return Cell{X: g.index(x), Y: g.index(y)}
}

func (g *Grid) index(v float64) int {
	f := math.Floor(v / g.delta)
	if !(f > 0) {
		return 0
	}
	if f >= MaxCellIndex {
		return MaxCellIndex
	}
	return int(f)
}

// Insert appends p to the list of its cell
func (g *Grid) Insert(p *geom.Point) error {
	if p.X < 0 || p.Y < 0 {
		return &CoordinateError{Point: p}
	}

	c := g.CellOf(p.X, p.Y)
	g.cells[c] = append(g.cells[c], p)
	g.n++
	return nil
}

// Cell returns the points stored in c. The second result is false when the
// cell has never been populated. Callers must not modify the returned slice.
func (g *Grid) Cell(c Cell) ([]*geom.Point, bool) {
	pts, ok := g.cells[c]
	return pts, ok
}

// AppendNeighborhood appends c and its adjacent cells to dst, clipped at the
// non-negative boundary. The order is fixed:
//
//	(x,y) (x+1,y) (x+1,y+1) (x,y+1)
//	(x-1,y) (x-1,y+1)        when x > 0
//	(x-1,y-1)                when x > 0 and y > 0
//	(x,y-1) (x+1,y-1)        when y > 0
func AppendNeighborhood(dst []Cell, c Cell) []Cell {
	x, y := c.X, c.Y
	dst = append(dst,
		Cell{x, y},
		Cell{x + 1, y},
		Cell{x + 1, y + 1},
		Cell{x, y + 1},
	)
	if x > 0 {
		dst = append(dst, Cell{x - 1, y}, Cell{x - 1, y + 1})
		if y > 0 {
			dst = append(dst, Cell{x - 1, y - 1})
		}
	}
	if y > 0 {
		dst = append(dst, Cell{x, y - 1}, Cell{x + 1, y - 1})
	}
	return dst
}

// Neighbors returns every point stored in the neighborhood of (x, y) under
// the current delta. It allocates; hot loops should use AppendNeighborhood
// and Cell directly.
func (g *Grid) Neighbors(x, y float64) []*geom.Point {
	var out []*geom.Point
	for _, c := range AppendNeighborhood(make([]Cell, 0, 9), g.CellOf(x, y)) {
		if pts, ok := g.cells[c]; ok {
			out = append(out, pts...)
		}
	}
	return out
}
