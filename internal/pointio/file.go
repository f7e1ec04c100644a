package pointio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/closestpair/internal/geom"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the container format of a point file
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
	LZ4
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return "none"
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect identifies the compression of a stream from its first bytes
func Detect(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, zstdMagic):
		return Zstd
	case bytes.HasPrefix(header, lz4Magic):
		return LZ4
	case bytes.HasPrefix(header, gzipMagic):
		return Gzip
	default:
		return None
	}
}

// CompressionFor picks the compression implied by a file extension
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// LoadFile reads every point from path, decompressing if needed
func LoadFile(path string) ([]*geom.Point, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	points, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}

// Open opens path for reading. gzip, zstd and LZ4-frame content is detected
// from its magic bytes and decompressed transparently.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open point file: %w", err)
	}

	br := bufio.NewReader(f)
	header, _ := br.Peek(4)

	var r io.Reader
	closers := []io.Closer{f}

	switch Detect(header) {
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		r = zr
		closers = append([]io.Closer{zr}, closers...)
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		rc := zr.IOReadCloser()
		r = rc
		closers = append([]io.Closer{rc}, closers...)
	case LZ4:
		r = lz4.NewReader(br)
	default:
		r = br
	}

	return &multiCloser{Reader: r, closers: closers}, nil
}

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Create creates path for writing, compressing according to its extension
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create point file: %w", err)
	}

	var w io.WriteCloser
	switch CompressionFor(path) {
	case Gzip:
		w = gzip.NewWriter(f)
	case Zstd:
		zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		w = zw
	case LZ4:
		w = lz4.NewWriter(f)
	default:
		return f, nil
	}

	return &fileWriter{WriteCloser: w, file: f}, nil
}

// fileWriter closes the compressor before the file underneath it
type fileWriter struct {
	io.WriteCloser
	file *os.File
}

func (fw *fileWriter) Close() error {
	if err := fw.WriteCloser.Close(); err != nil {
		fw.file.Close()
		return fmt.Errorf("failed to finish compressed stream: %w", err)
	}
	return fw.file.Close()
}

// Write writes one "x,y" line per point using the shortest representation
// that parses back to the same float64.
func Write(w io.Writer, points []*geom.Point) error {
	bw := bufio.NewWriterSize(w, 64*1024)
	buf := make([]byte, 0, 64)

	for _, p := range points {
		buf = strconv.AppendFloat(buf[:0], p.X, 'g', -1, 64)
		buf = append(buf, ',')
		buf = strconv.AppendFloat(buf, p.Y, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("failed to write point: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush points: %w", err)
	}
	return nil
}

// WriteFile writes points to path, compressing according to its extension
func WriteFile(path string, points []*geom.Point) error {
	w, err := Create(path)
	if err != nil {
		return err
	}
	if err := Write(w, points); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
