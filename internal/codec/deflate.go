package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/geosolutions-it/go-tiffcodec/internal/meta"
)

// Deflate decodes zlib-wrapped DEFLATE blocks. TIFF registers the scheme
// twice (8 and 32946); both carry the same stream format.
type Deflate struct {
	id meta.Compression
}

// NewDeflate creates a DEFLATE decompressor reporting the given ID.
func NewDeflate(id meta.Compression) *Deflate {
	if id != meta.CompressionDeflate {
		id = meta.CompressionAdobeDeflate
	}
	return &Deflate{id: id}
}

func (f *Deflate) ID() meta.Compression {
	return f.id
}

// Decompress inflates src until dst is full. Output beyond len(dst) is
// ignored. A stream that ends early, cleanly or cut mid-block, keeps the
// bytes inflated so far and is reported as truncated.
func (f *Deflate) Decompress(dst, src []byte) (int, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("zlib: %w: stream ends in header", meta.ErrTruncated)
		}
		return 0, fmt.Errorf("zlib reader: %w: %w", meta.ErrDecompress, err)
	}
	defer r.Close()

	return fill("zlib", dst, r)
}

// fill reads r into dst until dst is full or the stream ends. A short stream
// yields the bytes read with ErrTruncated; any other read error is fatal.
func fill(name string, dst []byte, r io.Reader) (int, error) {
	n := 0
	for n < len(dst) {
		m, err := r.Read(dst[n:])
		n += m
		if err == io.EOF {
			break
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return n, fmt.Errorf("%s: %w: stream cut after %d of %d bytes", name, meta.ErrTruncated, n, len(dst))
		}
		if err != nil {
			return 0, fmt.Errorf("%s decompress: %w: %w", name, meta.ErrDecompress, err)
		}
	}

	if n < len(dst) {
		return n, fmt.Errorf("%s: %w: %d of %d bytes", name, meta.ErrTruncated, n, len(dst))
	}
	return n, nil
}
