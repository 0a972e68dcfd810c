package meta

import "errors"

// Error taxonomy shared by the codec, layout and tiff packages.
//
// Configuration errors (ErrUnsupportedCompression, ErrIllegalPredictor,
// ErrLegacyLZW, ErrInvalidLayout) are raised before a block is decoded.
// ErrTruncated and ErrCorrupt accompany a usable partial result.
// ErrDecompress means the block output cannot be trusted.
var (
	ErrUnsupportedCompression = errors.New("unsupported compression")
	ErrIllegalPredictor       = errors.New("illegal predictor")
	ErrLegacyLZW              = errors.New("old-style LZW codes not supported")
	ErrInvalidLayout          = errors.New("invalid sample layout")
	ErrTruncated              = errors.New("compressed data truncated")
	ErrCorrupt                = errors.New("compressed data corrupt")
	ErrDecompress             = errors.New("decompression failed")
	ErrAborted                = errors.New("read aborted")
)

// Recoverable reports whether err leaves a best-effort partial result that a
// lenient reader may keep.
func Recoverable(err error) bool {
	return errors.Is(err, ErrTruncated) || errors.Is(err, ErrCorrupt)
}
