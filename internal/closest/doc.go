// Package closest finds the closest pair of points in a planar point set.
//
// Three interchangeable solvers are provided:
//
//   - BruteForce: exhaustive O(n²) scan. Read-only on its input; also the
//     base case and correctness oracle of the other two.
//   - SolveDeterministic: O(n log n) divide and conquer over x-sorted
//     points with a y-sorted strip merge. Reorders its input.
//   - SolveRandomized: O(n) expected time. Processes a random permutation
//     incrementally against a spatial grid sized to the best distance seen
//     so far. Shuffles its input and requires non-negative coordinates.
//
// All solvers share *geom.Point references with the caller; the returned
// Pair points at elements of the input slice.
//
// Randomness is always injected. A nil *rand.Rand or a zero seed selects a
// fixed default stream so runs are reproducible.
package closest
