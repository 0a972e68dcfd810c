package meta

import (
	"encoding/binary"
	"fmt"
	"image"
)

// BlockGeometry describes the grid of strips or tiles covering an image.
// For strips BlockWidth equals ImageWidth and BlockHeight is RowsPerStrip.
type BlockGeometry struct {
	ImageWidth  int
	ImageHeight int
	BlockWidth  int
	BlockHeight int
	Tiled       bool
}

// Validate checks that the geometry describes a non-empty grid.
func (g BlockGeometry) Validate() error {
	if g.ImageWidth <= 0 || g.ImageHeight <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidLayout, g.ImageWidth, g.ImageHeight)
	}
	if g.BlockWidth <= 0 || g.BlockHeight <= 0 {
		return fmt.Errorf("%w: block size %dx%d", ErrInvalidLayout, g.BlockWidth, g.BlockHeight)
	}
	return nil
}

// Across returns the number of blocks per grid row.
func (g BlockGeometry) Across() int {
	return (g.ImageWidth + g.BlockWidth - 1) / g.BlockWidth
}

// Down returns the number of grid rows.
func (g BlockGeometry) Down() int {
	return (g.ImageHeight + g.BlockHeight - 1) / g.BlockHeight
}

// BlocksPerPlane returns the number of blocks covering one plane.
func (g BlockGeometry) BlocksPerPlane() int {
	return g.Across() * g.Down()
}

// Image returns the image rectangle.
func (g BlockGeometry) Image() image.Rectangle {
	return image.Rect(0, 0, g.ImageWidth, g.ImageHeight)
}

// Bounds returns the pixel rectangle of block (tx, ty). Tiles keep their full
// size even where they extend past the image; strips are clipped to it.
func (g BlockGeometry) Bounds(tx, ty int) image.Rectangle {
	r := image.Rect(tx*g.BlockWidth, ty*g.BlockHeight, (tx+1)*g.BlockWidth, (ty+1)*g.BlockHeight)
	if g.Tiled {
		return r
	}
	return r.Intersect(g.Image())
}

// Index returns the block index of (tx, ty) in the given plane.
func (g BlockGeometry) Index(plane, tx, ty int) int {
	return plane*g.BlocksPerPlane() + ty*g.Across() + tx
}

// CodecDescriptor selects and configures the decoder for an image.
type CodecDescriptor struct {
	Compression Compression
	Predictor   Predictor
	ByteOrder   binary.ByteOrder
	FillOrder   FillOrder
}

// Order returns the declared byte order, defaulting to big-endian (MM).
func (d CodecDescriptor) Order() binary.ByteOrder {
	if d.ByteOrder == nil {
		return binary.BigEndian
	}
	return d.ByteOrder
}
