package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteTable prints rows as an aligned table with a speedup column
// (deterministic time over randomized time).
func WriteTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "POINTS\tBRUTE FORCE (us)\tDETERMINISTIC (us)\tRANDOMIZED (us)\tDET/RND\tDISTANCE\t")

	for _, r := range rows {
		brute := fmt.Sprint(r.BruteForceMicros)
		if r.BruteForceSkipped {
			brute = "-"
		}
		ratio := "-"
		if r.RandomizedMicros > 0 {
			ratio = fmt.Sprintf("%.2f", float64(r.DeterministicMicros)/float64(r.RandomizedMicros))
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%.6g\t\n",
			r.Size, brute, r.DeterministicMicros, r.RandomizedMicros, ratio, r.Distance)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}
