package codec

import (
	"fmt"

	"github.com/geosolutions-it/go-tiffcodec/internal/meta"
)

// TIFF LZW differs from the GIF/PDF flavour in compress/lzw: the code width
// grows one code later ("deferred increment"), so compress/lzw rejects TIFF
// streams with "invalid code" errors.
const (
	lzwClear    = 256
	lzwEOI      = 257
	lzwFirst    = 258
	lzwMaxCodes = 4096
	lzwMinWidth = 9
	lzwMaxWidth = 12
)

// LZW decodes TIFF LZW compressed blocks. The dictionary is created fresh for
// every call, so a single LZW value can serve all blocks of an image.
type LZW struct{}

func (LZW) ID() meta.Compression {
	return meta.CompressionLZW
}

// Decompress decodes src into dst. A stream that ends without an
// end-of-information code is treated as if it had one.
func (LZW) Decompress(dst, src []byte) (int, error) {
	// Old-style LZW from pre-5.0 libtiff starts with a bit-reversed clear code.
	// This is the libtiff test: it also rejects a modern stream that omits the
	// leading clear code and starts with the literal 0 or 1 followed by a code
	// with bit 2 set.
	if len(src) >= 2 && src[0] == 0x00 && src[1]&0x01 != 0 {
		return 0, meta.ErrLegacyLZW
	}

	d := newLZWState(src)
	n, err := d.decode(dst)
	if err != nil {
		return n, err
	}
	if n < len(dst) {
		return n, fmt.Errorf("lzw: %w: %d of %d bytes", meta.ErrTruncated, n, len(dst))
	}
	return n, nil
}

// lzwState is the per-block decoder: dictionary plus bit cursor.
type lzwState struct {
	src    []byte
	pos    int
	bitBuf uint32
	nBits  uint

	width  uint
	next   int
	prefix [lzwMaxCodes]uint16
	suffix [lzwMaxCodes]byte
	first  [lzwMaxCodes]byte
	length [lzwMaxCodes]uint16
}

func newLZWState(src []byte) *lzwState {
	d := &lzwState{src: src}
	for i := 0; i < 256; i++ {
		d.suffix[i] = byte(i)
		d.first[i] = byte(i)
		d.length[i] = 1
	}
	d.reset()
	return d
}

// reset drops every entry above the single-byte codes.
func (d *lzwState) reset() {
	d.next = lzwFirst
	d.width = lzwMinWidth
}

// readCode reads the next MSB-first code. It reports false when the input
// has no complete code left.
func (d *lzwState) readCode() (int, bool) {
	for d.nBits < d.width {
		if d.pos >= len(d.src) {
			return 0, false
		}
		d.bitBuf = d.bitBuf<<8 | uint32(d.src[d.pos])
		d.pos++
		d.nBits += 8
	}
	d.nBits -= d.width
	return int(d.bitBuf>>d.nBits) & (1<<d.width - 1), true
}

// add appends prev's string extended by b. The width grows once the table
// reaches 511, 1023 and 2047 entries; the new width applies to the next read.
func (d *lzwState) add(prev int, b byte) {
	if d.next >= lzwMaxCodes {
		return
	}
	d.prefix[d.next] = uint16(prev)
	d.suffix[d.next] = b
	d.first[d.next] = d.first[prev]
	d.length[d.next] = d.length[prev] + 1
	d.next++

	if d.next == 1<<d.width-1 && d.width < lzwMaxWidth {
		d.width++
	}
}

// emit writes the string for code into dst, truncated to fit.
func (d *lzwState) emit(dst []byte, code int) int {
	l := int(d.length[code])
	for i := l - 1; i >= 0; i-- {
		if i < len(dst) {
			dst[i] = d.suffix[code]
		}
		code = int(d.prefix[code])
	}
	return min(l, len(dst))
}

func (d *lzwState) decode(dst []byte) (int, error) {
	n := 0
	prev := -1

	for n < len(dst) {
		code, ok := d.readCode()
		if !ok || code == lzwEOI {
			break
		}

		if code == lzwClear {
			d.reset()
			prev = -1
			continue
		}

		if prev < 0 {
			// First code after a clear is always a literal.
			if code >= lzwClear {
				return n, fmt.Errorf("lzw: %w: code %d after clear", meta.ErrCorrupt, code)
			}
			n += d.emit(dst[n:], code)
			prev = code
			continue
		}

		switch {
		case code < d.next:
			n += d.emit(dst[n:], code)
			d.add(prev, d.first[code])
		case code == d.next && d.next < lzwMaxCodes:
			// KwKwK: the code being defined is prev's string plus its own
			// first byte.
			d.add(prev, d.first[prev])
			n += d.emit(dst[n:], code)
		default:
			return n, fmt.Errorf("lzw: %w: code %d with %d table entries", meta.ErrCorrupt, code, d.next)
		}
		prev = code
	}

	return n, nil
}
