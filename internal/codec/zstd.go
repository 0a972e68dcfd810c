package codec

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/geosolutions-it/go-tiffcodec/internal/meta"
)

// Streaming decoders are reused across blocks; each is owned by one
// Decompress call at a time.
var zstdDecoders sync.Pool

func zstdDecoder(r io.Reader) (*zstd.Decoder, error) {
	if dec, ok := zstdDecoders.Get().(*zstd.Decoder); ok {
		if err := dec.Reset(r); err != nil {
			return nil, err
		}
		return dec, nil
	}
	return zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
}

// ZSTD decodes Zstandard compressed blocks.
type ZSTD struct{}

func (ZSTD) ID() meta.Compression {
	return meta.CompressionZSTD
}

// Decompress decodes src until dst is full. A frame cut short keeps the
// blocks decoded before the cut and is reported as truncated.
func (ZSTD) Decompress(dst, src []byte) (int, error) {
	dec, err := zstdDecoder(bytes.NewReader(src))
	if err != nil {
		return 0, fmt.Errorf("zstd reader: %w: %w", meta.ErrDecompress, err)
	}
	defer zstdDecoders.Put(dec)

	return fill("zstd", dst, dec)
}
