// Package pointio reads and writes point lists.
//
// A point is a record of exactly two comma-separated floating-point fields,
// "x,y". Records come either as separate strings (command-line tokens) or as
// lines of a file. Empty records are skipped but still counted, so record
// numbers in errors match the line numbers a user sees.
package pointio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/closestpair/internal/geom"
)

var (
	// ErrFieldCount is returned when a record does not have exactly two fields.
	ErrFieldCount = errors.New("points must be 2-dimensional, numbers must be comma separated, e.g. 3.8,-4")

	// ErrInvalidNumber is returned when a field is not a finite float.
	ErrInvalidNumber = errors.New("not a finite floating-point number")
)

// ParseError describes a malformed record
type ParseError struct {
	Record int    // 1-indexed record (line or token) number
	Text   string // offending record, or offending field when Field > 0
	Field  int    // 0 for shape errors, 1 for x, 2 for y
	Err    error
}

func (e *ParseError) Error() string {
	switch e.Field {
	case 1:
		return fmt.Sprintf("first coordinate of point %d could not be converted to float: %q", e.Record, e.Text)
	case 2:
		return fmt.Sprintf("second coordinate of point %d could not be converted to float: %q", e.Record, e.Text)
	default:
		return fmt.Sprintf("point %d was given as %q: %v", e.Record, e.Text, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseRecords parses one point per non-empty record
func ParseRecords(records []string) ([]*geom.Point, error) {
	points := make([]*geom.Point, 0, len(records))
	for i, rec := range records {
		p, err := parseRecord(i+1, rec)
		if err != nil {
			return nil, err
		}
		if p != nil {
			points = append(points, p)
		}
	}
	return points, nil
}

// Read parses newline-delimited records from r
func Read(r io.Reader) ([]*geom.Point, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var points []*geom.Point
	line := 0
	for scanner.Scan() {
		line++
		p, err := parseRecord(line, scanner.Text())
		if err != nil {
			return nil, err
		}
		if p != nil {
			points = append(points, p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read points: %w", err)
	}

	return points, nil
}

// parseRecord returns nil, nil for blank records
func parseRecord(n int, rec string) (*geom.Point, error) {
	rec = strings.TrimSpace(rec)
	if rec == "" {
		return nil, nil
	}

	fields := strings.Split(rec, ",")
	if len(fields) != 2 {
		return nil, &ParseError{Record: n, Text: rec, Err: ErrFieldCount}
	}

	var coords [2]float64
	for i, f := range fields {
		f = strings.TrimSpace(f)
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, &ParseError{Record: n, Text: f, Field: i + 1, Err: fmt.Errorf("%w: %w", ErrInvalidNumber, err)}
		}
		if !geom.Finite(v) {
			return nil, &ParseError{Record: n, Text: f, Field: i + 1, Err: ErrInvalidNumber}
		}
		coords[i] = v
	}

	return geom.NewPoint(coords[0], coords[1]), nil
}
