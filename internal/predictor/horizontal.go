package predictor

// ReverseHorizontal undoes horizontal differencing in place.
// A trailing partial row, left by a truncated block, is not touched.
func ReverseHorizontal(buf []byte, p Params) error {
	if err := p.ValidateHorizontal(); err != nil {
		return err
	}

	spp := p.SamplesPerPixel
	n := p.Width * spp
	order := p.order()

	switch p.BitsPerSample {
	case 8:
		rows(buf, p.RowBytes(), func(row []byte) {
			for i := spp; i < n; i++ {
				row[i] += row[i-spp]
			}
		})

	case 16:
		rows(buf, p.RowBytes(), func(row []byte) {
			for i := spp; i < n; i++ {
				v := order.Uint16(row[2*i:]) + order.Uint16(row[2*(i-spp):])
				order.PutUint16(row[2*i:], v)
			}
		})

	case 32:
		rows(buf, p.RowBytes(), func(row []byte) {
			for i := spp; i < n; i++ {
				v := order.Uint32(row[4*i:]) + order.Uint32(row[4*(i-spp):])
				order.PutUint32(row[4*i:], v)
			}
		})
	}

	return nil
}

// ApplyHorizontal applies horizontal differencing in place. It is the
// inverse of ReverseHorizontal.
func ApplyHorizontal(buf []byte, p Params) error {
	if err := p.ValidateHorizontal(); err != nil {
		return err
	}

	spp := p.SamplesPerPixel
	n := p.Width * spp
	order := p.order()

	// Work backwards so each difference uses the original left neighbour.
	switch p.BitsPerSample {
	case 8:
		rows(buf, p.RowBytes(), func(row []byte) {
			for i := n - 1; i >= spp; i-- {
				row[i] -= row[i-spp]
			}
		})

	case 16:
		rows(buf, p.RowBytes(), func(row []byte) {
			for i := n - 1; i >= spp; i-- {
				v := order.Uint16(row[2*i:]) - order.Uint16(row[2*(i-spp):])
				order.PutUint16(row[2*i:], v)
			}
		})

	case 32:
		rows(buf, p.RowBytes(), func(row []byte) {
			for i := n - 1; i >= spp; i-- {
				v := order.Uint32(row[4*i:]) - order.Uint32(row[4*(i-spp):])
				order.PutUint32(row[4*i:], v)
			}
		})
	}

	return nil
}
