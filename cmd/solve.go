package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/closestpair/internal/closest"
	"github.com/cwbudde/closestpair/internal/geom"
	"github.com/cwbudde/closestpair/internal/pointio"
	"github.com/cwbudde/closestpair/internal/report"
	"github.com/spf13/cobra"
)

var (
	solveSeed   int64
	solveFormat string
)

var solveCmd = &cobra.Command{
	Use:   "solve <algorithm> <x,y> <x,y> ... | solve <algorithm> <file>",
	Short: "Find the closest pair of points",
	Long: `Runs one solver on a point list and prints the closest pair.

Algorithms: brute_force, deterministic, randomized.
Points are given inline as x,y tokens, or as a single file path holding one
x,y record per line. Files may be gzip, zstd or lz4 compressed.
The randomized solver requires non-negative coordinates.

Put -- before the points if the first coordinate of any point is negative,
e.g. closestpair solve deterministic -- -1,2 3,4 5,-6`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().Int64Var(&solveSeed, "seed", 0, "Random seed for the randomized solver (0 = default stream)")
	solveCmd.Flags().StringVar(&solveFormat, "format", "text", "Output format: text, json")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	alg, err := closest.ParseAlgorithm(args[0])
	if err != nil {
		return err
	}
	if solveFormat != "text" && solveFormat != "json" {
		return fmt.Errorf("unknown format: %s", solveFormat)
	}

	points, err := loadPoints(args[1:])
	if err != nil {
		return err
	}

	solver, err := closest.New(alg, solveSeed)
	if err != nil {
		return err
	}

	slog.Info("Running solver", "algorithm", alg, "points", len(points))

	start := time.Now()
	pair, err := solver.Solve(points)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("%s failed: %w", alg, err)
	}

	slog.Info("Solver complete", "algorithm", alg, "elapsed", elapsed, "distance", pair.Dist)

	res := report.Result{
		Algorithm: string(alg),
		Count:     len(points),
		Pair:      pair,
		Elapsed:   elapsed,
	}

	out := cmd.OutOrStdout()
	if solveFormat == "json" {
		return report.JSON(out, res)
	}
	return report.Text(out, res, report.StylesFor(out))
}

// loadPoints treats a single argument as a file path and several arguments
// as inline x,y tokens
func loadPoints(args []string) ([]*geom.Point, error) {
	if len(args) == 1 {
		points, err := pointio.LoadFile(args[0])
		if err != nil {
			return nil, err
		}
		slog.Debug("Loaded point file", "path", args[0], "points", len(points))
		return points, nil
	}
	return pointio.ParseRecords(args)
}
