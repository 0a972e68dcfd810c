// Package meta holds the per-image parameters the decompression engine
// consumes from the TIFF container.
//
// The container model itself (IFD parsing, tag storage) lives outside this
// module. This package only defines the values the engine needs from it and
// the TIFF constants used to describe them.
//
// # Types
//
//   - [SampleLayout]: samples per pixel, bits and format of each sample, and
//     whether bands are interleaved (chunky) or stored as separate planes.
//   - [BlockGeometry]: image size, strip or tile size, and the derived grid.
//   - [CodecDescriptor]: compression, predictor, byte order and fill order.
//
// # Compression Identifiers
//
// The compression constants follow the TIFF 6.0 registry plus the widely
// deployed extensions:
//
//   - CompressionNone (1)
//   - CompressionLZW (5)
//   - CompressionAdobeDeflate (8) and CompressionDeflate (32946)
//   - CompressionPackBits (32773)
//   - CompressionZSTD (50000)
//
// CCITT and JPEG identifiers are defined so that they can be reported by name,
// but no decoder exists for them in this module.
package meta
