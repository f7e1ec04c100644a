package bench

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"
)

// Row is the measurement of one problem size
type Row struct {
	// Size is the number of points
	Size int

	// BruteForceMicros is zero and BruteForceSkipped set when brute force
	// was not run for this size
	BruteForceMicros  int64
	BruteForceSkipped bool

	DeterministicMicros int64
	RandomizedMicros    int64

	// Distance is the closest-pair distance found. It is +Inf when every
	// pair is too far apart for float64.
	Distance float64

	Timestamp time.Time
}

// traceLine is one JSONL line of a trace. Timings are grouped per solver and
// a nil brute force entry marks a skipped run.
type traceLine struct {
	Size      int       `json:"size"`
	Micros    timings   `json:"micros"`
	Distance  *float64  `json:"distance"`
	Timestamp time.Time `json:"timestamp"`
}

type timings struct {
	BruteForce    *int64 `json:"brute_force"`
	Deterministic int64  `json:"deterministic"`
	Randomized    int64  `json:"randomized"`
}

func (r Row) line() traceLine {
	l := traceLine{
		Size: r.Size,
		Micros: timings{
			Deterministic: r.DeterministicMicros,
			Randomized:    r.RandomizedMicros,
		},
		Timestamp: r.Timestamp,
	}
	if !r.BruteForceSkipped {
		bf := r.BruteForceMicros
		l.Micros.BruteForce = &bf
	}
	if !math.IsInf(r.Distance, 0) && !math.IsNaN(r.Distance) {
		d := r.Distance
		l.Distance = &d
	}
	return l
}

func (l traceLine) row() Row {
	r := Row{
		Size:                l.Size,
		BruteForceSkipped:   l.Micros.BruteForce == nil,
		DeterministicMicros: l.Micros.Deterministic,
		RandomizedMicros:    l.Micros.Randomized,
		Distance:            math.Inf(1),
		Timestamp:           l.Timestamp,
	}
	if l.Micros.BruteForce != nil {
		r.BruteForceMicros = *l.Micros.BruteForce
	}
	if l.Distance != nil {
		r.Distance = *l.Distance
	}
	return r
}

// TraceWriter records benchmark rows as JSON lines
type TraceWriter struct {
	file *os.File
	buf  *bufio.Writer
	enc  *json.Encoder
	path string
}

// NewTraceWriter opens the trace at path, creating parent directories. With
// appendRows set an existing trace is extended instead of truncated, so
// several sweeps can share one file.
func NewTraceWriter(path string, appendRows bool) (*TraceWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create trace directory: %w", err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendRows {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}

	buf := bufio.NewWriter(file)
	return &TraceWriter{file: file, buf: buf, enc: json.NewEncoder(buf), path: path}, nil
}

// Path returns the filesystem path of the trace
func (tw *TraceWriter) Path() string {
	return tw.path
}

// Write buffers one row. Call Flush to make it durable.
func (tw *TraceWriter) Write(row Row) error {
	if err := tw.enc.Encode(row.line()); err != nil {
		return fmt.Errorf("failed to write trace row of size %d: %w", row.Size, err)
	}
	return nil
}

// Flush pushes buffered rows to the file
func (tw *TraceWriter) Flush() error {
	if err := tw.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush trace: %w", err)
	}
	return nil
}

// Close flushes and closes the trace file
func (tw *TraceWriter) Close() error {
	return errors.Join(tw.Flush(), tw.file.Close())
}

// TraceReader reads rows back from a JSONL trace
type TraceReader struct {
	file *os.File
	dec  *json.Decoder
	n    int
}

// NewTraceReader opens the trace at path
func NewTraceReader(path string) (*TraceReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	return &TraceReader{file: file, dec: json.NewDecoder(file)}, nil
}

// Read returns the next row, or io.EOF at the end of the trace
func (tr *TraceReader) Read() (Row, error) {
	var l traceLine
	if err := tr.dec.Decode(&l); err != nil {
		if err == io.EOF {
			return Row{}, io.EOF
		}
		return Row{}, fmt.Errorf("trace row %d: %w", tr.n+1, err)
	}
	tr.n++
	return l.row(), nil
}

// ReadAll returns every remaining row
func (tr *TraceReader) ReadAll() ([]Row, error) {
	var rows []Row
	for {
		row, err := tr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

func (tr *TraceReader) Close() error {
	return tr.file.Close()
}
