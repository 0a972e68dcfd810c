package meta

import (
	"errors"
	"image"
	"testing"
)

func TestNormalizeExpandsSingleValues(t *testing.T) {
	l, err := SampleLayout{
		SamplesPerPixel: 3,
		BitsPerSample:   []int{8},
	}.Normalize()
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if len(l.BitsPerSample) != 3 || l.Uniform() != 8 {
		t.Errorf("expected 3 samples of 8 bits, got %v", l.BitsPerSample)
	}
	if !l.AllFormat(SampleUnsigned) {
		t.Errorf("expected unsigned default format, got %v", l.SampleFormat)
	}
	if l.Planar != PlanarChunky {
		t.Errorf("expected chunky default, got %d", l.Planar)
	}
}

func TestNormalizeRejectsMismatchedArrays(t *testing.T) {
	tests := []struct {
		name   string
		layout SampleLayout
	}{
		{"no samples", SampleLayout{SamplesPerPixel: 0}},
		{"bits length", SampleLayout{SamplesPerPixel: 3, BitsPerSample: []int{8, 8}}},
		{"format length", SampleLayout{SamplesPerPixel: 2, BitsPerSample: []int{8, 8},
			SampleFormat: []SampleFormat{SampleUnsigned, SampleUnsigned, SampleUnsigned}}},
		{"zero bits", SampleLayout{SamplesPerPixel: 1, BitsPerSample: []int{0}}},
		{"planar value", SampleLayout{SamplesPerPixel: 1, BitsPerSample: []int{8}, Planar: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.layout.Normalize()
			if !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("expected ErrInvalidLayout, got %v", err)
			}
		})
	}
}

func TestRowBytes(t *testing.T) {
	rgb, _ := SampleLayout{SamplesPerPixel: 3, BitsPerSample: []int{8}}.Normalize()
	if got := rgb.RowBytes(0, 10); got != 30 {
		t.Errorf("chunky RGB row: expected 30, got %d", got)
	}

	bilevel, _ := SampleLayout{SamplesPerPixel: 1, BitsPerSample: []int{1}}.Normalize()
	if got := bilevel.RowBytes(0, 10); got != 2 {
		t.Errorf("bilevel row: expected 2, got %d", got)
	}

	planar, _ := SampleLayout{SamplesPerPixel: 3, BitsPerSample: []int{16}, Planar: PlanarSeparate}.Normalize()
	if got := planar.RowBytes(1, 10); got != 20 {
		t.Errorf("planar row: expected 20, got %d", got)
	}
	if planar.Planes() != 3 || planar.SamplesPerBlockPixel() != 1 {
		t.Errorf("planar: expected 3 planes of 1 sample, got %d/%d", planar.Planes(), planar.SamplesPerBlockPixel())
	}
}

func TestBlockGeometry(t *testing.T) {
	tiles := BlockGeometry{ImageWidth: 1000, ImageHeight: 1000, BlockWidth: 256, BlockHeight: 256, Tiled: true}
	if tiles.Across() != 4 || tiles.Down() != 4 {
		t.Fatalf("expected 4x4 tiles, got %dx%d", tiles.Across(), tiles.Down())
	}

	// Border tiles keep their declared size.
	if got, want := tiles.Bounds(3, 3), image.Rect(768, 768, 1024, 1024); got != want {
		t.Errorf("tile bounds: got %v, want %v", got, want)
	}

	strips := BlockGeometry{ImageWidth: 100, ImageHeight: 50, BlockWidth: 100, BlockHeight: 16}
	if strips.Down() != 4 {
		t.Fatalf("expected 4 strips, got %d", strips.Down())
	}
	if got, want := strips.Bounds(0, 3), image.Rect(0, 48, 100, 50); got != want {
		t.Errorf("strip bounds: got %v, want %v", got, want)
	}

	if got := tiles.Index(2, 1, 3); got != 2*16+3*4+1 {
		t.Errorf("planar index: got %d", got)
	}
}

func TestCompressionString(t *testing.T) {
	if CompressionLZW.String() != "LZW" {
		t.Errorf("unexpected name %q", CompressionLZW.String())
	}
	if Compression(12345).Known() {
		t.Error("12345 should not be a known compression")
	}
	if Compression(12345).String() != "compression(12345)" {
		t.Errorf("unexpected name %q", Compression(12345).String())
	}
}
