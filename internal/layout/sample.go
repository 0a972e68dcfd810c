package layout

// copySample copies the sample of the given bit width starting at bitOff in
// line. Byte-aligned samples are copied verbatim; others are extracted
// MSB-first and stored in sampleBytes(bits) bytes in the stream byte order.
// Samples that run past the end of line are skipped.
func (e *Engine) copySample(dst, line []byte, bitOff, bits int) {
	if bitOff%8 == 0 && bits%8 == 0 {
		start := bitOff / 8
		end := start + bits/8
		if end <= len(line) {
			copy(dst[:bits/8], line[start:end])
		}
		return
	}

	if (bitOff+bits+7)/8 > len(line) {
		return
	}
	var v uint64
	for i := bitOff; i < bitOff+bits; i++ {
		v = v<<1 | uint64(line[i/8]>>(7-i%8)&1)
	}

	size := sampleBytes(bits)
	if size == 1 {
		dst[0] = byte(v)
		return
	}
	big := e.order.Uint16([]byte{0x00, 0x01}) == 1
	for i := 0; i < size; i++ {
		shift := 8 * i
		if big {
			shift = 8 * (size - 1 - i)
		}
		dst[i] = byte(v >> shift)
	}
}
