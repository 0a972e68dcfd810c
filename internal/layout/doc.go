// Package layout maps a requested pixel region onto the strips or tiles of a
// TIFF image and distributes their decoded samples into a destination buffer.
//
// TIFF images store their raster in independently compressed blocks:
//
//   - Strips span the full image width. The last strip is clipped to the
//     image height and decodes to fewer rows.
//   - Tiles form a grid of equal rectangles. Border tiles keep their full size
//     and extend past the right and bottom image edges.
//
// With chunky storage every block holds all bands of its pixels. With planar
// storage each band has its own grid of blocks, and the block index of band b
// is offset by b times the number of blocks per plane.
//
// # Reading a Region
//
// A read runs in two phases. [Engine.Plan] computes, for every block that
// intersects the requested source rectangle, the destination rectangle it
// fills and the exact source pixels that contribute under subsampling:
//
//	dst = floor((src - sourceOrigin) / subsampling) + destinationOffset
//
// [Engine.Execute] then walks the plan in row-major block order, band plane by
// band plane. For each block it reads the compressed bytes (clamped to the
// stream length), decodes them and copies the contributing samples into the
// destination according to the band mapping. Cancellation is checked between
// blocks only; a block that has started decoding always completes.
//
// # Errors
//
// Blocks that do not intersect the request are skipped silently. Truncated or
// corrupt blocks produce warnings and their partial data is kept. A fatal
// error stops the read; blocks already copied stay in the destination.
package layout
