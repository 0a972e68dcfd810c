package codec

import (
	"fmt"

	"github.com/geosolutions-it/go-tiffcodec/internal/meta"
)

// PackBits decodes the Macintosh PackBits run-length scheme described in
// section 9 of the TIFF 6.0 specification.
type PackBits struct{}

func (PackBits) ID() meta.Compression {
	return meta.CompressionPackBits
}

// Decompress expands records until dst is full. Each record starts with a
// signed control byte: n >= 0 copies n+1 literal bytes, -127 <= n <= -1
// repeats the next byte 1-n times, and -128 is skipped.
func (PackBits) Decompress(dst, src []byte) (int, error) {
	i, n := 0, 0

	for n < len(dst) {
		if i >= len(src) {
			return n, fmt.Errorf("packbits: %w: %d of %d bytes", meta.ErrTruncated, n, len(dst))
		}
		code := int(int8(src[i]))
		i++

		switch {
		case code >= 0:
			count := code + 1
			short := count > len(src)-i
			if short {
				count = len(src) - i
			}
			m := copy(dst[n:], src[i:i+count])
			n += m
			i += count
			if short && n < len(dst) {
				return n, fmt.Errorf("packbits: %w in literal run: %d of %d bytes", meta.ErrTruncated, n, len(dst))
			}

		case code == -128:
			// No-op.

		default:
			if i >= len(src) {
				return n, fmt.Errorf("packbits: %w in replicate run: %d of %d bytes", meta.ErrTruncated, n, len(dst))
			}
			b := src[i]
			i++
			end := min(n+1-code, len(dst))
			for ; n < end; n++ {
				dst[n] = b
			}
		}
	}

	return n, nil
}
