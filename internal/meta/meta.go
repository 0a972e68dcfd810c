package meta

import "fmt"

// Compression is a TIFF Compression tag value.
type Compression uint16

// Compression IDs
const (
	CompressionNone         Compression = 1     // No compression
	CompressionCCITTRLE     Compression = 2     // CCITT modified Huffman RLE
	CompressionCCITTFax3    Compression = 3     // CCITT Group 3 fax
	CompressionCCITTFax4    Compression = 4     // CCITT Group 4 fax
	CompressionLZW          Compression = 5     // Lempel-Ziv-Welch
	CompressionOldJPEG      Compression = 6     // Pre-TIFF 6.0 JPEG
	CompressionJPEG         Compression = 7     // TIFF/JPEG (technote 2)
	CompressionAdobeDeflate Compression = 8     // zlib, registered value
	CompressionPackBits     Compression = 32773 // Macintosh RLE
	CompressionDeflate      Compression = 32946 // zlib, legacy value
	CompressionZSTD         Compression = 50000 // Zstandard
)

var compressionNames = map[Compression]string{
	CompressionNone:         "none",
	CompressionCCITTRLE:     "CCITT RLE",
	CompressionCCITTFax3:    "CCITT Group 3",
	CompressionCCITTFax4:    "CCITT Group 4",
	CompressionLZW:          "LZW",
	CompressionOldJPEG:      "old-style JPEG",
	CompressionJPEG:         "JPEG",
	CompressionAdobeDeflate: "Adobe Deflate",
	CompressionPackBits:     "PackBits",
	CompressionDeflate:      "Deflate",
	CompressionZSTD:         "ZSTD",
}

func (c Compression) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("compression(%d)", uint16(c))
}

// Known reports whether c is a registered compression scheme, whether or not
// a decoder exists for it.
func (c Compression) Known() bool {
	_, ok := compressionNames[c]
	return ok
}

// Predictor is a TIFF Predictor tag value.
type Predictor uint16

// Predictor IDs
const (
	PredictorNone          Predictor = 1
	PredictorHorizontal    Predictor = 2 // Horizontal integer differencing
	PredictorFloatingPoint Predictor = 3 // Byte-plane floating point differencing
)

func (p Predictor) String() string {
	switch p {
	case PredictorNone:
		return "none"
	case PredictorHorizontal:
		return "horizontal"
	case PredictorFloatingPoint:
		return "floating point"
	default:
		return fmt.Sprintf("predictor(%d)", uint16(p))
	}
}

// SampleFormat is a TIFF SampleFormat tag value.
type SampleFormat uint16

// Sample formats
const (
	SampleUnsigned  SampleFormat = 1
	SampleSigned    SampleFormat = 2
	SampleFloat     SampleFormat = 3
	SampleUndefined SampleFormat = 4
)

func (f SampleFormat) String() string {
	switch f {
	case SampleUnsigned:
		return "unsigned"
	case SampleSigned:
		return "signed"
	case SampleFloat:
		return "float"
	case SampleUndefined:
		return "undefined"
	default:
		return fmt.Sprintf("format(%d)", uint16(f))
	}
}

// PlanarConfig is a TIFF PlanarConfiguration tag value.
type PlanarConfig uint16

// Planar configurations
const (
	PlanarChunky   PlanarConfig = 1 // Samples interleaved per pixel
	PlanarSeparate PlanarConfig = 2 // One plane per band
)

// FillOrder is a TIFF FillOrder tag value.
type FillOrder uint16

// Fill orders
const (
	FillMSBFirst FillOrder = 1
	FillLSBFirst FillOrder = 2
)

// Photometric is a TIFF PhotometricInterpretation tag value. The engine does
// not interpret it; it is carried for the collaborators that do.
type Photometric uint16

// Photometric interpretations
const (
	PhotometricMinIsWhite Photometric = 0
	PhotometricMinIsBlack Photometric = 1
	PhotometricRGB        Photometric = 2
	PhotometricPalette    Photometric = 3
	PhotometricMask       Photometric = 4
	PhotometricSeparated  Photometric = 5
	PhotometricYCbCr      Photometric = 6
	PhotometricCIELab     Photometric = 8
)
