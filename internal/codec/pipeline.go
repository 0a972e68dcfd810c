package codec

import (
	"fmt"
	"math/bits"

	"github.com/geosolutions-it/go-tiffcodec/internal/meta"
	"github.com/geosolutions-it/go-tiffcodec/internal/predictor"
)

// Block describes the decoded shape of one strip, tile or band plane.
// Rows counts only the rows that exist, so the last strip of an image may be
// shorter than RowsPerStrip.
type Block struct {
	Width    int // Pixels per row
	Rows     int
	RowBytes int // ceil(bitsPerPixel*Width/8)
}

// Size returns the decoded byte count of the block.
func (b Block) Size() int {
	return b.Rows * b.RowBytes
}

// Pipeline decodes compressed blocks for one image. It holds no per-block
// state and may be reused for every block of the image.
type Pipeline struct {
	decompressor Decompressor
	predictor    meta.Predictor
	fillOrder    meta.FillOrder
	photometric  meta.Photometric
	params       predictor.Params
}

// Compression returns the compression scheme decoded by the pipeline.
func (p *Pipeline) Compression() meta.Compression {
	return p.decompressor.ID()
}

// Predictor returns the predictor reversed after decompression.
func (p *Pipeline) Predictor() meta.Predictor {
	return p.predictor
}

// Photometric returns the photometric interpretation the pipeline was
// selected for.
func (p *Pipeline) Photometric() meta.Photometric {
	return p.photometric
}

// Decode decodes one compressed block into a new buffer of blk.Size() bytes
// laid out as contiguous rows. On a recoverable error the returned slice holds
// only the bytes that were decoded.
func (p *Pipeline) Decode(src []byte, blk Block) ([]byte, error) {
	out := make([]byte, blk.Size())
	n, err := p.decode(out, src, blk)
	if err != nil && !meta.Recoverable(err) {
		return nil, err
	}
	return out[:n], err
}

// DecodeInto decodes one compressed block into dst, whose rows are stride
// bytes apart. When the stride differs from the natural row size the block
// is decoded into a scratch buffer and repacked. It returns the number of
// complete or partial rows written.
func (p *Pipeline) DecodeInto(dst []byte, stride int, src []byte, blk Block) (int, error) {
	if blk.Rows == 0 || blk.RowBytes == 0 {
		return 0, nil
	}
	if stride < blk.RowBytes {
		return 0, fmt.Errorf("stride %d shorter than row size %d", stride, blk.RowBytes)
	}
	if need := (blk.Rows-1)*stride + blk.RowBytes; len(dst) < need {
		return 0, fmt.Errorf("destination holds %d bytes, block needs %d", len(dst), need)
	}

	if stride == blk.RowBytes {
		n, err := p.decode(dst[:blk.Size()], src, blk)
		if err != nil && !meta.Recoverable(err) {
			return 0, err
		}
		return (n + blk.RowBytes - 1) / blk.RowBytes, err
	}

	scratch, err := p.Decode(src, blk)
	if scratch == nil && err != nil {
		return 0, err
	}
	rows := 0
	for off := 0; off < len(scratch); off += blk.RowBytes {
		end := min(off+blk.RowBytes, len(scratch))
		copy(dst[rows*stride:], scratch[off:end])
		rows++
	}
	return rows, err
}

func (p *Pipeline) decode(dst, src []byte, blk Block) (int, error) {
	if p.fillOrder == meta.FillLSBFirst {
		src = reverseBits(src)
	}

	n, err := p.decompressor.Decompress(dst, src)
	if err != nil && !meta.Recoverable(err) {
		return 0, fmt.Errorf("%s block: %w", p.decompressor.ID(), err)
	}

	if perr := p.reverse(dst[:n], blk.Width); perr != nil {
		return 0, perr
	}
	return n, err
}

// reverse undoes the predictor over the complete rows of buf.
func (p *Pipeline) reverse(buf []byte, width int) error {
	params := p.params
	params.Width = width

	switch p.predictor {
	case meta.PredictorHorizontal:
		return predictor.ReverseHorizontal(buf, params)
	case meta.PredictorFloatingPoint:
		return predictor.ReverseFloat(buf, params)
	default:
		return nil
	}
}

// reverseBits returns a copy of src with the bit order of every byte
// reversed, turning FillOrder 2 data into the MSB-first order decoders expect.
func reverseBits(src []byte) []byte {
	out := make([]byte, len(src))
	for i, b := range src {
		out[i] = bits.Reverse8(b)
	}
	return out
}
