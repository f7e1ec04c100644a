// Package bench times the closest-pair solvers across problem sizes.
package bench

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/cwbudde/closestpair/internal/closest"
	"github.com/cwbudde/closestpair/internal/geom"
)

// ErrDisagreement is returned when Verify is set and solvers report
// different distances.
var ErrDisagreement = errors.New("solvers disagree on the closest distance")

// Header is the CSV header row
var Header = []string{"len", "brute_force", "deterministic", "randomized"}

// Run writes Header and one CSV row per size of cfg to out. For every size a
// fresh point set is generated and the solvers run one after another on the
// same slice: brute force first, then deterministic (which sorts it), then
// randomized (which shuffles it). trace may be nil.
func Run(ctx context.Context, cfg Config, out io.Writer, trace *TraceWriter) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	w := csv.NewWriter(out)
	if err := writeRecord(w, Header); err != nil {
		return err
	}

	rng := closest.NewRand(cfg.Seed)
	randomized := &closest.Randomized{Rand: rng}
	sizes := cfg.Sizes()

	slog.Info("Starting benchmark", "sizes", len(sizes), "max_points", sizes[len(sizes)-1], "seed", cfg.Seed)
	start := time.Now()

	for _, n := range sizes {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("benchmark interrupted at n=%d: %w", n, err)
		}

		points := Generate(n, cfg.Extent, rng)
		row, err := measure(cfg, points, randomized)
		if err != nil {
			return err
		}

		if err := writeRecord(w, row.CSV()); err != nil {
			return err
		}
		if trace != nil {
			// flush per row so an interrupted sweep keeps what it measured
			if err := trace.Write(row); err != nil {
				return err
			}
			if err := trace.Flush(); err != nil {
				return err
			}
		}

		slog.Debug("Measured size", "n", n,
			"brute_force_us", row.BruteForceMicros,
			"deterministic_us", row.DeterministicMicros,
			"randomized_us", row.RandomizedMicros,
		)
	}

	slog.Info("Benchmark complete", "elapsed", time.Since(start))
	return nil
}

func measure(cfg Config, points []*geom.Point, randomized *closest.Randomized) (Row, error) {
	n := len(points)
	row := Row{Size: n, Timestamp: time.Now()}

	var brute geom.Pair
	if cfg.BruteForceMax > 0 && n > cfg.BruteForceMax {
		row.BruteForceSkipped = true
	} else {
		t := time.Now()
		pair, err := closest.BruteForce(points)
		row.BruteForceMicros = time.Since(t).Microseconds()
		if err != nil {
			return row, fmt.Errorf("brute force failed at n=%d: %w", n, err)
		}
		brute = pair
	}

	t := time.Now()
	det, err := closest.SolveDeterministic(points)
	row.DeterministicMicros = time.Since(t).Microseconds()
	if err != nil {
		return row, fmt.Errorf("deterministic solver failed at n=%d: %w", n, err)
	}

	t = time.Now()
	rnd, err := randomized.Solve(points)
	row.RandomizedMicros = time.Since(t).Microseconds()
	if err != nil {
		return row, fmt.Errorf("randomized solver failed at n=%d: %w", n, err)
	}

	row.Distance = det.Dist

	if cfg.Verify {
		if det.Dist != rnd.Dist || (!row.BruteForceSkipped && brute.Dist != det.Dist) {
			return row, fmt.Errorf("%w at n=%d: brute_force=%v deterministic=%v randomized=%v",
				ErrDisagreement, n, brute.Dist, det.Dist, rnd.Dist)
		}
	}

	return row, nil
}

// CSV formats the row in Header order. A skipped brute force leaves its
// column empty.
func (r Row) CSV() []string {
	brute := strconv.FormatInt(r.BruteForceMicros, 10)
	if r.BruteForceSkipped {
		brute = ""
	}
	return []string{
		strconv.Itoa(r.Size),
		brute,
		strconv.FormatInt(r.DeterministicMicros, 10),
		strconv.FormatInt(r.RandomizedMicros, 10),
	}
}

// writeRecord flushes after every record so progress is visible on long sweeps
func writeRecord(w *csv.Writer, record []string) error {
	if err := w.Write(record); err != nil {
		return fmt.Errorf("failed to write csv row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv row: %w", err)
	}
	return nil
}
