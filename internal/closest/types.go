package closest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/closestpair/internal/geom"
)

// ErrTooFewPoints is returned when a solver receives fewer than two points.
var ErrTooFewPoints = errors.New("closest: at least two points are required")

// ErrUnknownAlgorithm is returned when an algorithm name is not recognized.
var ErrUnknownAlgorithm = errors.New("closest: unknown algorithm")

// Algorithm names a solver
type Algorithm string

const (
	BruteForceAlgorithm    Algorithm = "brute_force"
	DeterministicAlgorithm Algorithm = "deterministic"
	RandomizedAlgorithm    Algorithm = "randomized"
)

// Algorithms lists every solver in canonical order
func Algorithms() []Algorithm {
	return []Algorithm{BruteForceAlgorithm, DeterministicAlgorithm, RandomizedAlgorithm}
}

// ParseAlgorithm resolves a case-insensitive algorithm name
func ParseAlgorithm(s string) (Algorithm, error) {
	name := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range Algorithms() {
		if a == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q (available: %s)", ErrUnknownAlgorithm, s, availableNames())
}

func availableNames() string {
	names := make([]string, 0, 3)
	for _, a := range Algorithms() {
		names = append(names, string(a))
	}
	return strings.Join(names, ", ")
}

// Solver computes the closest pair of a point slice. Implementations may
// reorder the slice; see each implementation for its exact contract.
type Solver interface {
	// Name returns the algorithm implemented by the solver
	Name() Algorithm

	// Solve returns the closest pair among points (len(points) >= 2)
	Solve(points []*geom.Point) (geom.Pair, error)
}

// New creates the solver for alg. seed only affects the randomized solver.
func New(alg Algorithm, seed int64) (Solver, error) {
	switch alg {
	case BruteForceAlgorithm:
		return BruteForceSolver{}, nil
	case DeterministicAlgorithm:
		return Deterministic{}, nil
	case RandomizedAlgorithm:
		return &Randomized{Rand: NewRand(seed)}, nil
	default:
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownAlgorithm, alg, availableNames())
	}
}

func tooFew(n int) error {
	return fmt.Errorf("%w: got %d", ErrTooFewPoints, n)
}
