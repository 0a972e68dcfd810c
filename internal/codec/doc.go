// Package codec implements the TIFF strip and tile decompressors.
//
// Every compressed block is decoded by a [Pipeline]: optional fill-order
// reversal of the raw bytes, a [Decompressor] for the compression scheme,
// then reversal of the differencing predictor, if any.
//
// # Supported Compression
//
//   - None (1): bytes are copied through.
//   - LZW (5): TIFF variant with deferred code-width increment, via [LZW].
//   - Adobe Deflate (8) and Deflate (32946): zlib streams, via [Deflate].
//   - PackBits (32773): byte-oriented run length coding, via [PackBits].
//   - ZSTD (50000): Zstandard frames, via [ZSTD].
//
// CCITT and JPEG compressed blocks are recognized by name and rejected.
//
// # Selection
//
// [Select] maps a codec descriptor and sample layout to a [Pipeline]. All
// configuration checks happen there, so an illegal predictor or an unknown
// compression is reported before a single block is read:
//
//	p, err := codec.Select(desc, layout, photometric)
//	raw, err := p.Decode(compressed, codec.Block{Width: w, Rows: h, RowBytes: rb})
//
// # Partial Results
//
// A short or damaged stream yields the bytes decoded so far together with an
// error wrapping [meta.ErrTruncated] or [meta.ErrCorrupt]. A malformed
// DEFLATE or ZSTD payload yields no data and an error wrapping
// [meta.ErrDecompress].
package codec
