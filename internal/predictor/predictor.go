package predictor

import (
	"encoding/binary"
	"fmt"
)

// Params describes the rows a predictor operates on.
type Params struct {
	Width           int // Pixels per row
	SamplesPerPixel int // Samples interleaved in each pixel of the block
	BitsPerSample   int
	Order           binary.ByteOrder
}

// RowBytes returns the byte length of one row.
func (p Params) RowBytes() int {
	return (p.Width*p.SamplesPerPixel*p.BitsPerSample + 7) / 8
}

// ValidateHorizontal checks that p can be handled by ReverseHorizontal.
func (p Params) ValidateHorizontal() error {
	switch p.BitsPerSample {
	case 8, 16, 32:
	default:
		return fmt.Errorf("horizontal differencing with %d-bit samples", p.BitsPerSample)
	}
	return p.validateShape()
}

// ValidateFloat checks that p can be handled by ReverseFloat.
func (p Params) ValidateFloat() error {
	switch p.BitsPerSample {
	case 16, 24, 32, 64:
	default:
		return fmt.Errorf("floating point differencing with %d-bit samples", p.BitsPerSample)
	}
	return p.validateShape()
}

func (p Params) validateShape() error {
	if p.Width < 0 || p.SamplesPerPixel < 1 {
		return fmt.Errorf("invalid row shape: width %d, %d samples per pixel", p.Width, p.SamplesPerPixel)
	}
	return nil
}

func (p Params) order() binary.ByteOrder {
	if p.Order == nil {
		return binary.BigEndian
	}
	return p.Order
}

func isBigEndian(order binary.ByteOrder) bool {
	return order.Uint16([]byte{0x00, 0x01}) == 1
}

// rows calls fn on every complete row of buf.
func rows(buf []byte, rowBytes int, fn func(row []byte)) {
	if rowBytes <= 0 {
		return
	}
	for off := 0; off+rowBytes <= len(buf); off += rowBytes {
		fn(buf[off : off+rowBytes])
	}
}
