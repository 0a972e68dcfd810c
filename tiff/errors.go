// Package tiff decodes the compressed strips and tiles of a TIFF image into
// caller-owned sample buffers.
//
// The package does not parse TIFF headers or IFDs. The caller describes the
// image through a [Directory], whose values come straight from the IFD tags,
// and reads pixel regions or single blocks from a [Page]. Supported
// compressions are none, LZW, PackBits, Deflate (both tag values) and ZSTD,
// with the horizontal and floating point predictors.
package tiff

import (
	"errors"

	"github.com/geosolutions-it/go-tiffcodec/internal/meta"
)

// Errors returned by Open and the Page read methods. Use errors.Is to test
// for them; the returned errors carry block and tile context.
var (
	ErrUnsupportedCompression = meta.ErrUnsupportedCompression
	ErrIllegalPredictor       = meta.ErrIllegalPredictor
	ErrLegacyLZW              = meta.ErrLegacyLZW
	ErrInvalidLayout          = meta.ErrInvalidLayout
	ErrTruncated              = meta.ErrTruncated
	ErrCorrupt                = meta.ErrCorrupt
	ErrDecompress             = meta.ErrDecompress
	ErrAborted                = meta.ErrAborted
	ErrClosed                 = errors.New("page is closed")
	ErrBlockIndex             = errors.New("block index out of range")
)
