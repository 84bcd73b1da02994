package posio

import (
	"bufio"
	"io"
)

// Writer wraps an append-mode file with user-space buffering and an
// absolute seek, tracking pos as the logical end-of-file position as
// observed by this Writer.
type Writer struct {
	inner io.WriteSeeker
	buf   *bufio.Writer
	pos   int64
}

// NewWriter constructs a Writer over f. Its initial pos is seek(End, 0) —
// the file's current length — matching spec.md §4.1.
func NewWriter(f io.WriteSeeker) (*Writer, error) {
	pos, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	return &Writer{inner: f, buf: bufio.NewWriter(f), pos: pos}, nil
}

// Write implements io.Writer, advancing pos by the number of bytes actually
// written.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.buf.Write(p)
	w.pos += int64(n)
	return n, err
}

// Flush flushes buffered data to the underlying file. It does not change
// pos — pos already reflects bytes handed to Write, buffered or not.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// Seek implements io.Seeker. Ferrule's write path never actually seeks a
// Writer backwards — generation files are append-only — but the method is
// provided for symmetry with Reader and to satisfy io.Seeker where needed.
func (w *Writer) Seek(offset int64, whence int) (int64, error) {
	if err := w.buf.Flush(); err != nil {
		return w.pos, err
	}
	newPos, err := w.inner.Seek(offset, whence)
	if err != nil {
		return w.pos, err
	}
	w.pos = newPos
	return w.pos, nil
}

// Pos returns the logical end-of-file position as observed by this Writer.
func (w *Writer) Pos() int64 {
	return w.pos
}
