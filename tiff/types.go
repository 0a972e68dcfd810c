package tiff

import (
	"github.com/geosolutions-it/go-tiffcodec/internal/codec"
	"github.com/geosolutions-it/go-tiffcodec/internal/layout"
	"github.com/geosolutions-it/go-tiffcodec/internal/meta"
)

// Image description, from the IFD tags.
type (
	BlockGeometry   = meta.BlockGeometry
	SampleLayout    = meta.SampleLayout
	CodecDescriptor = meta.CodecDescriptor
	Compression     = meta.Compression
	Predictor       = meta.Predictor
	SampleFormat    = meta.SampleFormat
	PlanarConfig    = meta.PlanarConfig
	FillOrder       = meta.FillOrder
	Photometric     = meta.Photometric
)

// Reads.
type (
	Request     = layout.Request
	Destination = layout.Destination
	Result      = layout.Result
	Warning     = layout.Warning

	// Block is the decoded shape of one strip or tile.
	Block = codec.Block
)

// Compression IDs
const (
	CompressionNone         = meta.CompressionNone
	CompressionCCITTRLE     = meta.CompressionCCITTRLE
	CompressionCCITTFax3    = meta.CompressionCCITTFax3
	CompressionCCITTFax4    = meta.CompressionCCITTFax4
	CompressionLZW          = meta.CompressionLZW
	CompressionOldJPEG      = meta.CompressionOldJPEG
	CompressionJPEG         = meta.CompressionJPEG
	CompressionAdobeDeflate = meta.CompressionAdobeDeflate
	CompressionPackBits     = meta.CompressionPackBits
	CompressionDeflate      = meta.CompressionDeflate
	CompressionZSTD         = meta.CompressionZSTD
)

// Predictor IDs
const (
	PredictorNone          = meta.PredictorNone
	PredictorHorizontal    = meta.PredictorHorizontal
	PredictorFloatingPoint = meta.PredictorFloatingPoint
)

// Sample formats
const (
	SampleUnsigned  = meta.SampleUnsigned
	SampleSigned    = meta.SampleSigned
	SampleFloat     = meta.SampleFloat
	SampleUndefined = meta.SampleUndefined
)

// Planar configurations
const (
	PlanarChunky   = meta.PlanarChunky
	PlanarSeparate = meta.PlanarSeparate
)

// Fill orders
const (
	FillMSBFirst = meta.FillMSBFirst
	FillLSBFirst = meta.FillLSBFirst
)

// Photometric interpretations
const (
	PhotometricMinIsWhite = meta.PhotometricMinIsWhite
	PhotometricMinIsBlack = meta.PhotometricMinIsBlack
	PhotometricRGB        = meta.PhotometricRGB
	PhotometricPalette    = meta.PhotometricPalette
	PhotometricMask       = meta.PhotometricMask
	PhotometricSeparated  = meta.PhotometricSeparated
	PhotometricYCbCr      = meta.PhotometricYCbCr
	PhotometricCIELab     = meta.PhotometricCIELab
)
