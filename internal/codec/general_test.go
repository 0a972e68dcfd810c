package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"

	"github.com/geosolutions-it/go-tiffcodec/internal/meta"
	"github.com/geosolutions-it/go-tiffcodec/internal/predictor"
)

func zlibCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("zlib write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zlib close: %v", err)
	}
	return buf.Bytes()
}

func zstdCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func TestDeflateRoundtrip(t *testing.T) {
	original := []byte("Hello, World! This is test data for compression testing.")

	f := NewDeflate(meta.CompressionAdobeDeflate)
	dst := make([]byte, len(original))
	n, err := f.Decompress(dst, zlibCompress(t, original))
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}

	if n != len(original) || !bytes.Equal(dst, original) {
		t.Errorf("Decompressed data mismatch:\ngot:  %q\nwant: %q", dst[:n], original)
	}
}

func TestDeflateID(t *testing.T) {
	if id := NewDeflate(meta.CompressionDeflate).ID(); id != meta.CompressionDeflate {
		t.Errorf("expected ID %d, got %d", meta.CompressionDeflate, id)
	}
	if id := NewDeflate(meta.CompressionAdobeDeflate).ID(); id != meta.CompressionAdobeDeflate {
		t.Errorf("expected ID %d, got %d", meta.CompressionAdobeDeflate, id)
	}
}

func TestDeflateShortStream(t *testing.T) {
	dst := make([]byte, 100)
	n, err := NewDeflate(meta.CompressionDeflate).Decompress(dst, zlibCompress(t, []byte("short")))
	if !errors.Is(err, meta.ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if n != 5 {
		t.Errorf("expected 5 bytes, got %d", n)
	}
}

func TestDeflateMalformed(t *testing.T) {
	dst := make([]byte, 16)
	_, err := NewDeflate(meta.CompressionDeflate).Decompress(dst, []byte{0x78, 0x9C, 0xFF, 0xFF, 0xFF, 0xFF})
	if !errors.Is(err, meta.ErrDecompress) {
		t.Errorf("expected ErrDecompress, got %v", err)
	}

	_, err = NewDeflate(meta.CompressionDeflate).Decompress(dst, []byte("not zlib"))
	if !errors.Is(err, meta.ErrDecompress) {
		t.Errorf("expected ErrDecompress for bad header, got %v", err)
	}
}

func TestZSTDRoundtrip(t *testing.T) {
	original := bytes.Repeat([]byte("zstandard tile payload "), 50)

	dst := make([]byte, len(original))
	n, err := ZSTD{}.Decompress(dst, zstdCompress(t, original))
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if n != len(original) || !bytes.Equal(dst, original) {
		t.Error("roundtrip mismatch")
	}
}

func TestDeflateCutStream(t *testing.T) {
	original := testMessage(5000)

	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.NoCompression)
	if err != nil {
		t.Fatalf("zlib writer: %v", err)
	}
	w.Write(original)
	w.Close()
	cut := buf.Bytes()[:buf.Len()/2]

	dst := make([]byte, len(original))
	n, err := NewDeflate(meta.CompressionAdobeDeflate).Decompress(dst, cut)
	if !errors.Is(err, meta.ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if n == 0 || n >= len(original) {
		t.Fatalf("expected a partial result, got %d bytes", n)
	}
	if !bytes.Equal(dst[:n], original[:n]) {
		t.Error("partial output does not match the original prefix")
	}

	// Cut inside the two-byte zlib header
	if _, err := NewDeflate(meta.CompressionDeflate).Decompress(dst, cut[:1]); !errors.Is(err, meta.ErrTruncated) {
		t.Errorf("expected ErrTruncated for a cut header, got %v", err)
	}
}

func TestDeflateCutCompressedStream(t *testing.T) {
	original := testMessage(20000)
	packed := zlibCompress(t, original)

	dst := make([]byte, len(original))
	n, err := NewDeflate(meta.CompressionDeflate).Decompress(dst, packed[:len(packed)/2])
	if !errors.Is(err, meta.ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if !bytes.Equal(dst[:n], original[:n]) {
		t.Error("partial output does not match the original prefix")
	}
}

func TestZSTDMalformed(t *testing.T) {
	_, err := ZSTD{}.Decompress(make([]byte, 16), []byte("definitely not zstd"))
	if !errors.Is(err, meta.ErrDecompress) {
		t.Errorf("expected ErrDecompress, got %v", err)
	}
}

func TestZSTDCutStream(t *testing.T) {
	// Larger than one 128 KiB zstd block, so the blocks before the cut
	// decode in full.
	original := testMessage(300 << 10)
	packed := zstdCompress(t, original)

	dst := make([]byte, len(original))
	n, err := ZSTD{}.Decompress(dst, packed[:len(packed)-6])
	if !errors.Is(err, meta.ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if n == 0 || n >= len(original) {
		t.Fatalf("expected a partial result, got %d bytes", n)
	}
	if !bytes.Equal(dst[:n], original[:n]) {
		t.Error("partial output does not match the original prefix")
	}
}

func TestZSTDDecoderReuse(t *testing.T) {
	for i := range 3 {
		original := testMessage(1000 + i*100)
		dst := make([]byte, len(original))
		n, err := ZSTD{}.Decompress(dst, zstdCompress(t, original))
		if err != nil {
			t.Fatalf("Decompress %d failed: %v", i, err)
		}
		if n != len(original) || !bytes.Equal(dst, original) {
			t.Errorf("roundtrip %d mismatch", i)
		}

		// A failed block must not poison the next one.
		ZSTD{}.Decompress(dst, []byte("not zstd at all"))
	}
}

func TestPipelineDeflateFloatPredictor(t *testing.T) {
	values := []float32{0.5, 1.25, -3.75, 1e-3, 42, 7.5, -0.125, 100}
	const width, rows = 4, 2

	raw := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(raw[4*i:], math.Float32bits(v))
	}
	encoded := append([]byte(nil), raw...)
	params := predictor.Params{Width: width, SamplesPerPixel: 1, BitsPerSample: 32, Order: binary.LittleEndian}
	if err := predictor.ApplyFloat(encoded, params); err != nil {
		t.Fatalf("ApplyFloat failed: %v", err)
	}

	desc := meta.CodecDescriptor{
		Compression: meta.CompressionAdobeDeflate,
		Predictor:   meta.PredictorFloatingPoint,
		ByteOrder:   binary.LittleEndian,
	}
	p, err := Select(desc, layout(1, 32, meta.SampleFloat), meta.PhotometricMinIsBlack)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	out, err := p.Decode(zlibCompress(t, encoded), Block{Width: width, Rows: rows, RowBytes: 16})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Errorf("got % x\nwant % x", out, raw)
	}
}

func TestPipelineZSTDHorizontalPredictor(t *testing.T) {
	const width, rows = 6, 3
	params := predictor.Params{Width: width, SamplesPerPixel: 3, BitsPerSample: 8}
	raw := make([]byte, params.RowBytes()*rows)
	for i := range raw {
		raw[i] = byte(i * 3)
	}
	encoded := append([]byte(nil), raw...)
	if err := predictor.ApplyHorizontal(encoded, params); err != nil {
		t.Fatalf("ApplyHorizontal failed: %v", err)
	}

	desc := meta.CodecDescriptor{Compression: meta.CompressionZSTD, Predictor: meta.PredictorHorizontal}
	p, err := Select(desc, layout(3, 8, meta.SampleUnsigned), meta.PhotometricRGB)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	out, err := p.Decode(zstdCompress(t, encoded), Block{Width: width, Rows: rows, RowBytes: params.RowBytes()})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Errorf("got %v\nwant %v", out, raw)
	}
}

func TestPipelineDecompressFailureIsFatal(t *testing.T) {
	desc := meta.CodecDescriptor{Compression: meta.CompressionDeflate}
	p, err := Select(desc, layout(1, 8, meta.SampleUnsigned), meta.PhotometricMinIsBlack)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	out, err := p.Decode([]byte("garbage"), Block{Width: 4, Rows: 4, RowBytes: 4})
	if !errors.Is(err, meta.ErrDecompress) {
		t.Fatalf("expected ErrDecompress, got %v", err)
	}
	if out != nil {
		t.Error("a failed inflate must not return data")
	}
}
