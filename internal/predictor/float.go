package predictor

// ReverseFloat undoes the floating point predictor in place.
//
// Input rows are organized as: [all MSBs][next bytes]...[all LSBs], each
// plane differenced bytewise with a stride of SamplesPerPixel.
// Output rows are organized as: [sample0][sample1]...[sampleN] in the
// configured byte order.
func ReverseFloat(buf []byte, p Params) error {
	if err := p.ValidateFloat(); err != nil {
		return err
	}

	spp := p.SamplesPerPixel
	bps := p.BitsPerSample / 8
	wc := p.Width * spp
	big := isBigEndian(p.order())
	tmp := make([]byte, p.RowBytes())

	rows(buf, p.RowBytes(), func(row []byte) {
		for i := spp; i < len(row); i++ {
			row[i] += row[i-spp]
		}

		copy(tmp, row)
		for s := 0; s < wc; s++ {
			for b := 0; b < bps; b++ {
				plane := b
				if !big {
					plane = bps - b - 1
				}
				row[s*bps+b] = tmp[plane*wc+s]
			}
		}
	})

	return nil
}

// ApplyFloat applies the floating point predictor in place. It is the
// inverse of ReverseFloat.
func ApplyFloat(buf []byte, p Params) error {
	if err := p.ValidateFloat(); err != nil {
		return err
	}

	spp := p.SamplesPerPixel
	bps := p.BitsPerSample / 8
	wc := p.Width * spp
	big := isBigEndian(p.order())
	tmp := make([]byte, p.RowBytes())

	rows(buf, p.RowBytes(), func(row []byte) {
		for s := 0; s < wc; s++ {
			for b := 0; b < bps; b++ {
				plane := b
				if !big {
					plane = bps - b - 1
				}
				tmp[plane*wc+s] = row[s*bps+b]
			}
		}
		copy(row, tmp)

		for i := len(row) - 1; i >= spp; i-- {
			row[i] -= row[i-spp]
		}
	})

	return nil
}
