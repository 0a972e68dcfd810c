package layout

import (
	"fmt"
	"image"

	"github.com/geosolutions-it/go-tiffcodec/internal/meta"
)

// Request selects the pixels to read. It is built for one read and not
// retained.
type Request struct {
	// Source is the requested rectangle in full-image pixel coordinates.
	// It is clipped to the image.
	Source image.Rectangle

	// SubsampleX and SubsampleY keep every n-th source column and row,
	// starting at Source.Min. Zero means 1.
	SubsampleX int
	SubsampleY int

	// DestOffset is the destination pixel receiving Source.Min.
	DestOffset image.Point

	// SourceBands lists the bands to read; nil reads all bands.
	SourceBands []int

	// DestBands gives the destination band for each entry of SourceBands;
	// nil places them in order starting at band 0.
	DestBands []int
}

// Destination is a caller-owned band-interleaved pixel buffer.
//
// Each destination sample occupies SampleBytes: the byte width of the source
// sample, or one byte for samples narrower than 8 bits, which are unpacked.
type Destination struct {
	Pix    []byte
	Width  int // Pixels per row
	Height int // Rows
	Bands  int // Samples per pixel
	Stride int // Bytes between rows; 0 means Width*Bands*SampleBytes
}

// Bounds returns the destination rectangle.
func (d *Destination) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.Width, d.Height)
}

// sampleBytes returns the destination byte width of a sample of the given
// bit depth.
func sampleBytes(bits int) int {
	return (bits + 7) / 8
}

func (d *Destination) stride(sampleSize int) int {
	if d.Stride > 0 {
		return d.Stride
	}
	return d.Width * d.Bands * sampleSize
}

// validate checks once per read that every pixel of the destination lies
// inside Pix, so per-sample copies need no bounds checks.
func (d *Destination) validate(sampleSize int) error {
	if d.Width < 0 || d.Height < 0 || d.Bands < 1 {
		return fmt.Errorf("%w: destination %dx%d with %d bands", meta.ErrInvalidLayout, d.Width, d.Height, d.Bands)
	}
	pixel := d.Bands * sampleSize
	stride := d.stride(sampleSize)
	if stride < d.Width*pixel {
		return fmt.Errorf("%w: destination stride %d shorter than %d-byte rows", meta.ErrInvalidLayout, stride, d.Width*pixel)
	}
	if d.Width == 0 || d.Height == 0 {
		return nil
	}
	if need := (d.Height-1)*stride + d.Width*pixel; len(d.Pix) < need {
		return fmt.Errorf("%w: destination holds %d bytes, needs %d", meta.ErrInvalidLayout, len(d.Pix), need)
	}
	return nil
}

// bandMap pairs a source band with the destination band it fills.
type bandMap struct {
	Source int
	Dest   int
}

// bands resolves the request's band mapping against the image and
// destination band counts.
func (r *Request) bands(samplesPerPixel, destBands int) ([]bandMap, error) {
	src := r.SourceBands
	if src == nil {
		n := min(samplesPerPixel, destBands)
		src = make([]int, n)
		for i := range src {
			src[i] = i
		}
	}

	dst := r.DestBands
	if dst == nil {
		dst = make([]int, len(src))
		for i := range dst {
			dst[i] = i
		}
	}
	if len(dst) != len(src) {
		return nil, fmt.Errorf("%w: %d source bands mapped to %d destination bands", meta.ErrInvalidLayout, len(src), len(dst))
	}

	out := make([]bandMap, len(src))
	for i := range src {
		if src[i] < 0 || src[i] >= samplesPerPixel {
			return nil, fmt.Errorf("%w: source band %d of %d", meta.ErrInvalidLayout, src[i], samplesPerPixel)
		}
		if dst[i] < 0 || dst[i] >= destBands {
			return nil, fmt.Errorf("%w: destination band %d of %d", meta.ErrInvalidLayout, dst[i], destBands)
		}
		out[i] = bandMap{Source: src[i], Dest: dst[i]}
	}
	return out, nil
}

func (r *Request) subsampling() (int, int, error) {
	sx, sy := r.SubsampleX, r.SubsampleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sx < 1 || sy < 1 {
		return 0, 0, fmt.Errorf("%w: subsampling %dx%d", meta.ErrInvalidLayout, sx, sy)
	}
	return sx, sy, nil
}

// axis maps one coordinate axis between source and destination space.
type axis struct {
	origin int // first requested source coordinate
	sub    int // subsampling factor
	offset int // destination coordinate of origin
}

// toDest maps a source coordinate to its destination coordinate.
func (a axis) toDest(s int) int {
	return floorDiv(s-a.origin, a.sub) + a.offset
}

// toSource maps a destination coordinate back to the source coordinate
// that fills it.
func (a axis) toSource(d int) int {
	return a.origin + (d-a.offset)*a.sub
}

// span returns the destination range [d0, d1) filled by source pixels in
// [s0, s1), or an empty range if no sampled pixel falls inside.
func (a axis) span(s0, s1 int) (int, int) {
	first := a.origin + ceilDiv(s0-a.origin, a.sub)*a.sub
	if first >= s1 {
		return 0, 0
	}
	last := a.origin + floorDiv(s1-1-a.origin, a.sub)*a.sub
	return a.toDest(first), a.toDest(last) + 1
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
