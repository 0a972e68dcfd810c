package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// bytesReaderAt wraps a byte slice to implement io.ReaderAt.
type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func newTestReader(data []byte) *Reader {
	return NewReader(bytesReaderAt(data), Config{Size: int64(len(data))})
}

func TestReaderDefaultsToBigEndian(t *testing.T) {
	r := newTestReader(nil)
	if r.ByteOrder() != binary.BigEndian {
		t.Errorf("expected big-endian default, got %v", r.ByteOrder())
	}

	r = NewReader(bytesReaderAt(nil), Config{ByteOrder: binary.LittleEndian})
	if r.ByteOrder() != binary.LittleEndian {
		t.Errorf("expected little-endian, got %v", r.ByteOrder())
	}
}

func TestReaderReadBytes(t *testing.T) {
	r := newTestReader([]byte{1, 2, 3, 4, 5})

	b, err := r.ReadBytes(3)
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if !bytes.Equal(b, []byte{1, 2, 3}) {
		t.Errorf("expected [1 2 3], got %v", b)
	}
	if r.Pos() != 3 {
		t.Errorf("expected pos 3, got %d", r.Pos())
	}

	if _, err := r.ReadBytes(3); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF past end, got %v", err)
	}
}

func TestReaderAt(t *testing.T) {
	r := newTestReader([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05})

	// Read from offset 3
	b, err := r.At(3).ReadBytes(1)
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if b[0] != 0x03 {
		t.Errorf("expected 0x03, got 0x%02x", b[0])
	}

	// Original reader should be unaffected
	if r.Pos() != 0 {
		t.Errorf("expected original pos 0, got %d", r.Pos())
	}
}

func TestReaderClamp(t *testing.T) {
	tests := []struct {
		name string
		pos  int64
		n    int64
		want int64
	}{
		{"inside", 0, 4, 4},
		{"overrun", 6, 10, 4},
		{"at end", 10, 3, 0},
		{"past end", 20, 3, 0},
		{"negative", 0, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReader(make([]byte, 10)).At(tt.pos)
			if got := r.Clamp(tt.n); got != tt.want {
				t.Errorf("Clamp(%d) at %d: expected %d, got %d", tt.n, tt.pos, tt.want, got)
			}
		})
	}
}

func TestReaderReadClamped(t *testing.T) {
	r := newTestReader([]byte{1, 2, 3, 4, 5, 6}).At(4)

	b, err := r.ReadClamped(100)
	if err != nil {
		t.Fatalf("ReadClamped failed: %v", err)
	}
	if !bytes.Equal(b, []byte{5, 6}) {
		t.Errorf("expected [5 6], got %v", b)
	}

	b, err = r.ReadClamped(100)
	if err != nil {
		t.Fatalf("ReadClamped at end failed: %v", err)
	}
	if len(b) != 0 {
		t.Errorf("expected empty read at end, got %v", b)
	}

	if _, err := r.At(-1).ReadClamped(1); !errors.Is(err, ErrNegativeRange) {
		t.Errorf("expected ErrNegativeRange, got %v", err)
	}
}

func TestReaderClampOutsideStream(t *testing.T) {
	r := newTestReader([]byte{0x00, 0x01, 0x02, 0x03})

	tests := []struct {
		offset int64
		n      int64
		want   int64
	}{
		{0, 4, 4},
		{1, 10, 3},
		{4, 1, 0},
		{100, 1, 0},
		{-1, 2, 0},
		{0, -5, 0},
	}
	for _, tt := range tests {
		if got := r.At(tt.offset).Clamp(tt.n); got != tt.want {
			t.Errorf("At(%d).Clamp(%d): expected %d, got %d", tt.offset, tt.n, tt.want, got)
		}
	}
}
