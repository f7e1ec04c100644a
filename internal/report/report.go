// Package report renders closest-pair results for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/cwbudde/closestpair/internal/geom"
	"github.com/mattn/go-isatty"
)

// Result is one solver invocation
type Result struct {
	Algorithm string
	Count     int
	Pair      geom.Pair
	Elapsed   time.Duration
}

// Styles holds the lipgloss styles used by Text
type Styles struct {
	Header lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Dim    lipgloss.Style
}

// DefaultStyles returns colored styles for terminals
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("154")),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

// PlainStyles returns styles that render text unchanged
func PlainStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle(),
		Label:  lipgloss.NewStyle(),
		Value:  lipgloss.NewStyle(),
		Dim:    lipgloss.NewStyle(),
	}
}

// StylesFor returns DefaultStyles when w is a terminal and NO_COLOR is
// unset, PlainStyles otherwise.
func StylesFor(w io.Writer) Styles {
	if os.Getenv("NO_COLOR") == "" && IsTTY(w) {
		return DefaultStyles()
	}
	return PlainStyles()
}

// IsTTY checks if w is a terminal
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Text writes the result in the line-oriented human format
func Text(w io.Writer, r Result, s Styles) error {
	lines := []string{
		s.Header.Render(fmt.Sprintf("Running %s algorithm", r.Algorithm)),
		s.Dim.Render(fmt.Sprintf("Finished in %d ms", r.Elapsed.Milliseconds())),
		s.Label.Render("Point 1: ") + s.Value.Render(r.Pair.A.String()),
		s.Label.Render("Point 2: ") + s.Value.Render(r.Pair.B.String()),
		s.Label.Render("distance: ") + s.Value.Render(fmt.Sprint(r.Pair.Dist)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return nil
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonResult struct {
	Algorithm     string    `json:"algorithm"`
	Points        int       `json:"points"`
	A             jsonPoint `json:"a"`
	B             jsonPoint `json:"b"`
	Distance      *float64  `json:"distance"`
	ElapsedMicros int64     `json:"elapsedMicros"`
}

// JSON writes the result as a single JSON object followed by a newline.
// A distance that overflowed to +Inf is written as null.
func JSON(w io.Writer, r Result) error {
	out := jsonResult{
		Algorithm:     r.Algorithm,
		Points:        r.Count,
		A:             jsonPoint{X: r.Pair.A.X, Y: r.Pair.A.Y},
		B:             jsonPoint{X: r.Pair.B.X, Y: r.Pair.B.Y},
		Distance:      jsonFloat(r.Pair.Dist),
		ElapsedMicros: r.Elapsed.Microseconds(),
	}
	if err := json.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

func jsonFloat(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
