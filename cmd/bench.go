package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/closestpair/internal/bench"
	"github.com/spf13/cobra"
)

var (
	benchConfigPath    string
	benchTracePath     string
	benchTraceAppend   bool
	benchMinRoot       int
	benchMaxRoot       int
	benchStep          int
	benchExtent        float64
	benchSeed          int64
	benchBruteForceMax int
	benchVerify        bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time all solvers across problem sizes",
	Long: `Generates random point sets of size n = i² for i in [min-root, max-root]
and prints one CSV row per size with the wall-clock time of each solver in
microseconds:

  len,brute_force,deterministic,randomized

Settings come from the defaults, then --config (YAML), then explicitly set flags.`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

var benchShowCmd = &cobra.Command{
	Use:   "show <trace.jsonl>",
	Short: "Print a benchmark trace as a table",
	Args:  cobra.ExactArgs(1),
	RunE:  runBenchShow,
}

var benchInitCmd = &cobra.Command{
	Use:   "init <config.yaml>",
	Short: "Write the default benchmark config to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bench.DefaultConfig().WriteYAML(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
		return nil
	},
}

func init() {
	def := bench.DefaultConfig()

	benchCmd.Flags().StringVar(&benchConfigPath, "config", "", "YAML config file")
	benchCmd.Flags().StringVar(&benchTracePath, "trace", "", "Also write a JSONL trace to this path")
	benchCmd.Flags().BoolVar(&benchTraceAppend, "trace-append", false, "Append to an existing trace instead of replacing it")
	benchCmd.Flags().IntVar(&benchMinRoot, "min-root", def.MinRoot, "Smallest root i (n = i²)")
	benchCmd.Flags().IntVar(&benchMaxRoot, "max-root", def.MaxRoot, "Largest root i (n = i²)")
	benchCmd.Flags().IntVar(&benchStep, "step", def.Step, "Root increment")
	benchCmd.Flags().Float64Var(&benchExtent, "extent", def.Extent, "Points are drawn from [0, extent)²")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", def.Seed, "Random seed (0 = default stream)")
	benchCmd.Flags().IntVar(&benchBruteForceMax, "brute-force-max", def.BruteForceMax, "Skip brute force above this many points (0 = never)")
	benchCmd.Flags().BoolVar(&benchVerify, "verify", def.Verify, "Fail if the solvers disagree")

	benchCmd.AddCommand(benchShowCmd)
	benchCmd.AddCommand(benchInitCmd)
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := benchConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if benchTracePath == "" {
		return bench.Run(ctx, cfg, cmd.OutOrStdout(), nil)
	}

	trace, err := bench.NewTraceWriter(benchTracePath, benchTraceAppend)
	if err != nil {
		return err
	}
	slog.Info("Writing trace", "path", trace.Path(), "append", benchTraceAppend)
	if err := bench.Run(ctx, cfg, cmd.OutOrStdout(), trace); err != nil {
		trace.Close()
		return err
	}
	return trace.Close()
}

// benchConfig layers defaults, the optional YAML file and explicitly set flags
func benchConfig(cmd *cobra.Command) (bench.Config, error) {
	cfg := bench.DefaultConfig()
	if benchConfigPath != "" {
		loaded, err := bench.LoadConfig(benchConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("min-root") {
		cfg.MinRoot = benchMinRoot
	}
	if flags.Changed("max-root") {
		cfg.MaxRoot = benchMaxRoot
	}
	if flags.Changed("step") {
		cfg.Step = benchStep
	}
	if flags.Changed("extent") {
		cfg.Extent = benchExtent
	}
	if flags.Changed("seed") {
		cfg.Seed = benchSeed
	}
	if flags.Changed("brute-force-max") {
		cfg.BruteForceMax = benchBruteForceMax
	}
	if flags.Changed("verify") {
		cfg.Verify = benchVerify
	}

	return cfg, cfg.Validate()
}

func runBenchShow(cmd *cobra.Command, args []string) error {
	tr, err := bench.NewTraceReader(args[0])
	if err != nil {
		return err
	}
	defer tr.Close()

	rows, err := tr.ReadAll()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Trace is empty.")
		return nil
	}

	return bench.WriteTable(cmd.OutOrStdout(), rows)
}
