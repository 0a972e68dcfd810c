// Package predictor reverses the TIFF differencing predictors applied before
// compression.
//
// Both predictors work row by row on a decoded block. Each row holds Width
// pixels of SamplesPerPixel interleaved samples (one sample per pixel for
// planar data).
//
// # Horizontal Differencing (Predictor 2)
//
// Every sample after the first pixel stores the difference from the same
// band in the previous pixel. [ReverseHorizontal] restores the values with
// a per-row, per-band prefix sum in the native sample width (8, 16 or 32
// bits), wrapping modulo 2^bits. Multi-byte samples are read and written in
// the stream byte order.
//
// # Floating Point (Predictor 3)
//
// The encoder first splits each row into byte planes, most significant
// plane first, then differences the resulting bytes with a stride of
// SamplesPerPixel. [ReverseFloat] undoes both steps and writes each sample
// back in the stream byte order. Samples must be 16, 24, 32 or 64 bits.
package predictor
