package tiff

// Directory describes one TIFF image (one IFD) to decode.
type Directory interface {
	BlockGeometry() BlockGeometry
	SampleLayout() SampleLayout
	CodecDescriptor() CodecDescriptor
	Photometric() Photometric

	// BlockCount returns the number of entries in the offset and byte count
	// arrays.
	BlockCount() int
	BlockOffset(i int) int64
	BlockByteCount(i int) int64
}

// StaticDirectory is a Directory holding tag values already read from an IFD.
type StaticDirectory struct {
	Geometry       BlockGeometry
	Samples        SampleLayout
	Codec          CodecDescriptor
	Interpretation Photometric
	Offsets        []int64 // StripOffsets or TileOffsets
	ByteCounts     []int64 // StripByteCounts or TileByteCounts
}

func (d *StaticDirectory) BlockGeometry() BlockGeometry     { return d.Geometry }
func (d *StaticDirectory) SampleLayout() SampleLayout       { return d.Samples }
func (d *StaticDirectory) CodecDescriptor() CodecDescriptor { return d.Codec }
func (d *StaticDirectory) Photometric() Photometric         { return d.Interpretation }

// BlockCount returns the shorter of the two arrays.
func (d *StaticDirectory) BlockCount() int {
	return min(len(d.Offsets), len(d.ByteCounts))
}

func (d *StaticDirectory) BlockOffset(i int) int64 {
	return d.Offsets[i]
}

func (d *StaticDirectory) BlockByteCount(i int) int64 {
	return d.ByteCounts[i]
}
