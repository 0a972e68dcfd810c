package meta

import "fmt"

// SampleLayout describes how samples are stored in each pixel.
type SampleLayout struct {
	SamplesPerPixel int
	BitsPerSample   []int
	SampleFormat    []SampleFormat
	Planar          PlanarConfig
}

// Normalize expands single-valued BitsPerSample and SampleFormat arrays to one
// entry per sample, fills in TIFF defaults, and validates the result.
// TIFF writers commonly store a single value for all samples.
func (l SampleLayout) Normalize() (SampleLayout, error) {
	if l.SamplesPerPixel < 1 {
		return l, fmt.Errorf("%w: %d samples per pixel", ErrInvalidLayout, l.SamplesPerPixel)
	}
	n := l.SamplesPerPixel

	bits := l.BitsPerSample
	switch len(bits) {
	case 0:
		bits = []int{1}
		fallthrough
	case 1:
		if n > 1 {
			bits = repeat(bits[0], n)
		}
	}
	if len(bits) != n {
		return l, fmt.Errorf("%w: %d bits-per-sample entries for %d samples", ErrInvalidLayout, len(bits), n)
	}
	for i, b := range bits {
		if b < 1 || b > 64 {
			return l, fmt.Errorf("%w: sample %d has %d bits", ErrInvalidLayout, i, b)
		}
	}

	formats := l.SampleFormat
	switch len(formats) {
	case 0:
		formats = []SampleFormat{SampleUnsigned}
		fallthrough
	case 1:
		if n > 1 {
			formats = repeat(formats[0], n)
		}
	}
	if len(formats) != n {
		return l, fmt.Errorf("%w: %d sample-format entries for %d samples", ErrInvalidLayout, len(formats), n)
	}

	planar := l.Planar
	switch planar {
	case 0:
		planar = PlanarChunky
	case PlanarChunky, PlanarSeparate:
	default:
		return l, fmt.Errorf("%w: planar configuration %d", ErrInvalidLayout, planar)
	}

	return SampleLayout{
		SamplesPerPixel: n,
		BitsPerSample:   bits,
		SampleFormat:    formats,
		Planar:          planar,
	}, nil
}

func repeat[T any](v T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Uniform returns the common bit depth of all samples, or 0 if the samples
// differ.
func (l SampleLayout) Uniform() int {
	if len(l.BitsPerSample) == 0 {
		return 0
	}
	b := l.BitsPerSample[0]
	for _, v := range l.BitsPerSample[1:] {
		if v != b {
			return 0
		}
	}
	return b
}

// AllFormat reports whether every sample has format f.
func (l SampleLayout) AllFormat(f SampleFormat) bool {
	if len(l.SampleFormat) == 0 {
		return false
	}
	for _, v := range l.SampleFormat {
		if v != f {
			return false
		}
	}
	return true
}

// IsPlanar reports whether each band is stored as a separate plane.
func (l SampleLayout) IsPlanar() bool {
	return l.Planar == PlanarSeparate
}

// Planes returns the number of separately compressed planes.
func (l SampleLayout) Planes() int {
	if l.IsPlanar() {
		return l.SamplesPerPixel
	}
	return 1
}

// SamplesPerBlockPixel returns the samples stored per pixel in one block:
// all of them for chunky data, one for planar data.
func (l SampleLayout) SamplesPerBlockPixel() int {
	if l.IsPlanar() {
		return 1
	}
	return l.SamplesPerPixel
}

// BitsPerPixel returns the number of bits one pixel occupies in a block.
// For planar data this is the bit depth of the given plane.
func (l SampleLayout) BitsPerPixel(plane int) int {
	if l.IsPlanar() {
		return l.BitsPerSample[plane]
	}
	total := 0
	for _, b := range l.BitsPerSample {
		total += b
	}
	return total
}

// RowBytes returns ceil(bitsPerPixel*width/8), the natural byte count of one
// block row of the given plane.
func (l SampleLayout) RowBytes(plane, width int) int {
	return (l.BitsPerPixel(plane)*width + 7) / 8
}

// SampleOffset returns the bit offset of sample s within a chunky pixel.
func (l SampleLayout) SampleOffset(s int) int {
	if l.IsPlanar() {
		return 0
	}
	off := 0
	for _, b := range l.BitsPerSample[:s] {
		off += b
	}
	return off
}
