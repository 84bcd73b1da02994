// Package posio provides the positioned, buffered I/O wrappers described in
// spec.md §4.1: a reader and a writer that each maintain a pos field exactly
// equal to the absolute byte offset implied by the operations performed
// through them, so the store engine can capture record start/end offsets
// without re-querying the OS between operations.
//
// This mirrors original_source/src/kv.rs's BufReaderWithPos /
// BufWriterWithPos, translated to Go's bufio.Reader/bufio.Writer plus
// io.Seeker, the same idiom jassi-singh/aether-kv and iamNilotpal/ignite use
// for their own buffered file access.
package posio

import (
	"bufio"
	"io"
)

// Reader wraps a random-access file with user-space buffering and an
// absolute seek, tracking pos as the byte offset of the next byte this
// Reader will return — not the byte offset of the underlying file
// descriptor, which buffering keeps ahead of.
type Reader struct {
	inner io.ReadSeeker
	buf   *bufio.Reader
	pos   int64
}

// NewReader constructs a Reader over f. Its initial pos is f's current
// offset, which callers typically arrange to be zero.
func NewReader(f io.ReadSeeker) (*Reader, error) {
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	return &Reader{inner: f, buf: bufio.NewReader(f), pos: pos}, nil
}

// Read implements io.Reader, advancing pos by the number of bytes actually
// read.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.buf.Read(p)
	r.pos += int64(n)
	return n, err
}

// ReadByte implements io.ByteReader, advancing pos by one on success. The
// JSON decoder's internal byte-at-a-time scanning relies on this existing
// so it does not fall back to single-byte Read calls.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.buf.ReadByte()
	if err == nil {
		r.pos++
	}
	return b, err
}

// Seek implements io.Seeker, setting pos to the resulting absolute offset
// and discarding the buffer's now-stale lookahead.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	newPos, err := r.inner.Seek(offset, whence)
	if err != nil {
		return r.pos, err
	}
	r.buf.Reset(r.inner)
	r.pos = newPos
	return r.pos, nil
}

// Pos returns the byte offset of the next byte this Reader will return.
func (r *Reader) Pos() int64 {
	return r.pos
}
