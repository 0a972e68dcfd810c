// Package binary provides random-access reads of compressed block data from
// the backing TIFF stream.
package binary

import (
	"encoding/binary"
	"errors"
	"io"
)

// ErrNegativeRange is returned when a read is requested at a negative offset
// or with a negative length.
var ErrNegativeRange = errors.New("negative offset or length")

// Reader reads byte ranges from a stream of known size. Reads never run past
// the end of the stream: requested lengths are clamped to what remains.
type Reader struct {
	r     io.ReaderAt
	size  int64
	order binary.ByteOrder
	pos   int64
}

// Config holds reader configuration, typically derived from the TIFF header.
type Config struct {
	ByteOrder binary.ByteOrder
	Size      int64 // Total stream length in bytes
}

// NewReader creates a reader with the given configuration.
// A nil byte order selects big-endian, the TIFF "MM" default.
func NewReader(r io.ReaderAt, cfg Config) *Reader {
	order := cfg.ByteOrder
	if order == nil {
		order = binary.BigEndian
	}
	return &Reader{
		r:     r,
		size:  cfg.Size,
		order: order,
		pos:   0,
	}
}

// At returns a new reader positioned at the given offset.
// The new reader shares the underlying io.ReaderAt but has independent
// position, so a block decode never disturbs the caller's cursor.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{
		r:     r.r,
		size:  r.size,
		order: r.order,
		pos:   offset,
	}
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Remaining returns the number of bytes between the position and the end of
// the stream.
func (r *Reader) Remaining() int64 {
	if r.pos < 0 || r.pos >= r.size {
		return 0
	}
	return r.size - r.pos
}

// Clamp limits n to the bytes remaining after the current position.
func (r *Reader) Clamp(n int64) int64 {
	if n < 0 {
		return 0
	}
	if rem := r.Remaining(); n > rem {
		return rem
	}
	return n
}

// ReadBytes reads exactly n bytes from the current position.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.pos < 0 {
		return nil, ErrNegativeRange
	}
	if n == 0 {
		return nil, nil
	}
	if int64(n) > r.Remaining() {
		return nil, io.ErrUnexpectedEOF
	}
	buf := make([]byte, n)
	m, err := r.r.ReadAt(buf, r.pos)
	if m < n {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	r.pos += int64(n)
	return buf, nil
}

// ReadClamped reads up to n bytes, stopping at the end of the stream.
// The returned slice is shorter than n when the range was clamped.
func (r *Reader) ReadClamped(n int64) ([]byte, error) {
	if n < 0 || r.pos < 0 {
		return nil, ErrNegativeRange
	}
	return r.ReadBytes(int(r.Clamp(n)))
}

// ByteOrder returns the configured byte order.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}
