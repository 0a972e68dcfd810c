package codec

import (
	"fmt"

	"github.com/geosolutions-it/go-tiffcodec/internal/meta"
	"github.com/geosolutions-it/go-tiffcodec/internal/predictor"
)

// Decompressor is the interface implemented by all compression schemes.
type Decompressor interface {
	// ID returns the compression identifier.
	ID() meta.Compression

	// Decompress expands src into dst and returns the number of bytes
	// written. dst has the exact size of the decoded block.
	Decompress(dst, src []byte) (int, error)
}

// Registry maps compression IDs to decompressor constructors.
var Registry = map[meta.Compression]func(meta.Compression) Decompressor{
	meta.CompressionNone:         func(meta.Compression) Decompressor { return None{} },
	meta.CompressionLZW:          func(meta.Compression) Decompressor { return LZW{} },
	meta.CompressionPackBits:     func(meta.Compression) Decompressor { return PackBits{} },
	meta.CompressionAdobeDeflate: func(id meta.Compression) Decompressor { return NewDeflate(id) },
	meta.CompressionDeflate:      func(id meta.Compression) Decompressor { return NewDeflate(id) },
	meta.CompressionZSTD:         func(meta.Compression) Decompressor { return ZSTD{} },
}

// takesPredictor lists the schemes whose writers may apply a predictor.
var takesPredictor = map[meta.Compression]bool{
	meta.CompressionLZW:          true,
	meta.CompressionAdobeDeflate: true,
	meta.CompressionDeflate:      true,
	meta.CompressionZSTD:         true,
}

// Select creates the decoding pipeline for an image. Configuration problems
// are reported here, never at decode time.
func Select(desc meta.CodecDescriptor, layout meta.SampleLayout, photometric meta.Photometric) (*Pipeline, error) {
	layout, err := layout.Normalize()
	if err != nil {
		return nil, err
	}

	constructor, ok := Registry[desc.Compression]
	if !ok {
		// Provide helpful error message for known schemes
		if desc.Compression.Known() {
			return nil, fmt.Errorf("%w: %s (ID %d) has no decoder", meta.ErrUnsupportedCompression,
				desc.Compression, uint16(desc.Compression))
		}
		return nil, fmt.Errorf("%w: ID %d", meta.ErrUnsupportedCompression, uint16(desc.Compression))
	}

	p := &Pipeline{
		decompressor: constructor(desc.Compression),
		predictor:    desc.Predictor,
		fillOrder:    desc.FillOrder,
		photometric:  photometric,
		params: predictor.Params{
			SamplesPerPixel: layout.SamplesPerBlockPixel(),
			BitsPerSample:   layout.Uniform(),
			Order:           desc.Order(),
		},
	}
	if p.predictor == 0 {
		p.predictor = meta.PredictorNone
	}

	if err := checkPredictor(p.predictor, desc.Compression, layout, p.params); err != nil {
		return nil, err
	}
	return p, nil
}

func checkPredictor(pred meta.Predictor, c meta.Compression, layout meta.SampleLayout, params predictor.Params) error {
	switch pred {
	case meta.PredictorNone:
		return nil
	case meta.PredictorHorizontal, meta.PredictorFloatingPoint:
	default:
		return fmt.Errorf("%w: unknown predictor %d", meta.ErrIllegalPredictor, uint16(pred))
	}

	if !takesPredictor[c] {
		return fmt.Errorf("%w: %s predictor with %s compression", meta.ErrIllegalPredictor, pred, c)
	}
	if params.BitsPerSample == 0 {
		return fmt.Errorf("%w: %s predictor needs uniform bits per sample, got %v",
			meta.ErrIllegalPredictor, pred, layout.BitsPerSample)
	}

	if pred == meta.PredictorHorizontal {
		if err := params.ValidateHorizontal(); err != nil {
			return fmt.Errorf("%w: %w", meta.ErrIllegalPredictor, err)
		}
		return nil
	}

	if err := params.ValidateFloat(); err != nil {
		return fmt.Errorf("%w: %w", meta.ErrIllegalPredictor, err)
	}
	if !layout.AllFormat(meta.SampleFloat) {
		return fmt.Errorf("%w: floating point predictor with sample formats %v",
			meta.ErrIllegalPredictor, layout.SampleFormat)
	}
	return nil
}

// None copies uncompressed block data.
type None struct{}

func (None) ID() meta.Compression {
	return meta.CompressionNone
}

func (None) Decompress(dst, src []byte) (int, error) {
	n := copy(dst, src)
	if n < len(dst) {
		return n, fmt.Errorf("uncompressed block: %w: %d of %d bytes", meta.ErrTruncated, n, len(dst))
	}
	return n, nil
}
