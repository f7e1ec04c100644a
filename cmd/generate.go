package main

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/closestpair/internal/bench"
	"github.com/cwbudde/closestpair/internal/closest"
	"github.com/cwbudde/closestpair/internal/pointio"
	"github.com/spf13/cobra"
)

var (
	genCount  int
	genExtent float64
	genSeed   int64
	genOut    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a random point file",
	Long: `Writes --count points drawn uniformly from [0, extent)² to --out, one x,y
record per line. The file is compressed when --out ends in .gz, .zst or .lz4.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&genCount, "count", 1000, "Number of points")
	generateCmd.Flags().Float64Var(&genExtent, "extent", 1000, "Coordinate range [0, extent)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Random seed (0 = default stream)")
	generateCmd.Flags().StringVar(&genOut, "out", "points.txt", "Output path")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genCount < 0 {
		return fmt.Errorf("count must not be negative: %d", genCount)
	}
	if !(genExtent > 0) {
		return fmt.Errorf("extent must be positive: %v", genExtent)
	}

	points := bench.Generate(genCount, genExtent, closest.NewRand(genSeed))
	if err := pointio.WriteFile(genOut, points); err != nil {
		return err
	}

	slog.Info("Generated points", "count", genCount, "path", genOut, "compression", pointio.CompressionFor(genOut).String())
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d points to %s\n", genCount, genOut)
	return nil
}
