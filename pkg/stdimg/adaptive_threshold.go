package stdimg

// AdaptiveThreshold binarises every channel against its local mean over a
// window×window neighbourhood: samples above mean - offset become 255, the
// rest 0. Windows are border-extended like every other spatial operator.
func AdaptiveThreshold(src *Raster, window int, offset float64) (*Raster, error) {
	if window < 1 || window%2 == 0 {
		return nil, invalidf("adaptive threshold window must be odd and >= 1, got %d", window)
	}
	half := window / 2
	area := float64(window * window)
	out := NewRasterLike(src)
	// integral image over the padded plane, one channel at a time
	pw, ph := src.Width+2*half, src.Height+2*half
	integ := make([]float64, (pw+1)*(ph+1))
	for c := 0; c < src.Channels; c++ {
		for y := 1; y <= ph; y++ {
			sum := 0.0
			for x := 1; x <= pw; x++ {
				sum += float64(src.At(x-1-half, y-1-half, c))
				integ[y*(pw+1)+x] = integ[(y-1)*(pw+1)+x] + sum
			}
		}
		forEachRow(src.Height, func(y int) {
			// window of (x, y) in padded coordinates is [x, x+window) × [y, y+window)
			for x := 0; x < src.Width; x++ {
				x0, y0, x1, y1 := x, y, x+window, y+window
				s := integ[y1*(pw+1)+x1] - integ[y0*(pw+1)+x1] - integ[y1*(pw+1)+x0] + integ[y0*(pw+1)+x0]
				if float64(src.At(x, y, c)) > s/area-offset {
					out.Set(x, y, c, 255)
				} else {
					out.Set(x, y, c, 0)
				}
			}
		})
	}
	return out, nil
}
