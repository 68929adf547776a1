package stdimg

// AdaptiveMedian is the variable-window median filter. For every sample it
// starts with a Start×Start window and grows it by 2 while the window median
// is not strictly between the window minimum and maximum. Past Max it gives up
// and keeps the original sample.
type AdaptiveMedian struct {
	Start int
	Max   int
}

// NewAdaptiveMedian validates the window bounds: both odd, start >= 3 and
// max >= start.
func NewAdaptiveMedian(start, max int) (*AdaptiveMedian, error) {
	if start < 3 || start%2 == 0 {
		return nil, invalidf("starting window size must be odd and >= 3, got %d", start)
	}
	if max%2 == 0 || max < start {
		return nil, invalidf("maximum window size must be odd and >= %d, got %d", start, max)
	}
	return &AdaptiveMedian{Start: start, Max: max}, nil
}

// windowState is the per-sample state machine: while decided is false the
// filter is Growing(size); once decided, value is the output.
type windowState struct {
	size    int
	decided bool
	value   uint8
}

// windowStats summarises one square window.
type windowStats struct {
	min, med, max int
}

// step performs one transition from Growing(size).
func (f *AdaptiveMedian) step(s windowState, w windowStats, original uint8) windowState {
	a1 := w.med - w.min
	a2 := w.med - w.max
	if a1 > 0 && a2 < 0 {
		z := int(original)
		if z-w.min > 0 && z-w.max < 0 {
			return windowState{size: s.size, decided: true, value: original}
		}
		return windowState{size: s.size, decided: true, value: uint8(w.med)}
	}
	next := s.size + 2
	if next > f.Max {
		return windowState{size: s.size, decided: true, value: original}
	}
	return windowState{size: next}
}

// Apply filters every sample of src independently.
func (f *AdaptiveMedian) Apply(src *Raster) *Raster {
	maxArea := f.Max * f.Max
	out := NewRasterLike(src)
	forEachRow(src.Height, func(y int) {
		buf := make([]int, 0, maxArea)
		for x := 0; x < src.Width; x++ {
			for c := 0; c < src.Channels; c++ {
				v, _ := f.filterSample(src, x, y, c, buf)
				out.Set(x, y, c, v)
			}
		}
	})
	return out
}

// filterSample runs the state machine to completion for one sample and
// returns the output together with the window size it stopped at.
func (f *AdaptiveMedian) filterSample(src *Raster, x, y, c int, buf []int) (uint8, int) {
	original := src.At(x, y, c)
	s := windowState{size: f.Start}
	for !s.decided {
		s = f.step(s, collectWindow(src, x, y, c, s.size, buf), original)
	}
	return s.value, s.size
}

// collectWindow gathers the size×size window around (x, y) into buf and
// returns its min, median and max. size is always odd, so the median is the
// single middle order statistic.
func collectWindow(src *Raster, x, y, c, size int, buf []int) windowStats {
	r := size / 2
	buf = buf[:0]
	ws := windowStats{min: 255, max: 0}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			v := int(src.At(x+dx, y+dy, c))
			buf = append(buf, v)
			if v < ws.min {
				ws.min = v
			}
			if v > ws.max {
				ws.max = v
			}
		}
	}
	ws.med = selectKth(buf, len(buf)/2)
	return ws
}

// selectKth returns the k-th smallest element of v (0-based) using
// Hoare's quickselect. v is reordered in place.
func selectKth(v []int, k int) int {
	lo, hi := 0, len(v)-1
	for lo < hi {
		pivot := v[lo+(hi-lo)/2]
		i, j := lo, hi
		for i <= j {
			for v[i] < pivot {
				i++
			}
			for v[j] > pivot {
				j--
			}
			if i <= j {
				v[i], v[j] = v[j], v[i]
				i++
				j--
			}
		}
		switch {
		case k <= j:
			hi = j
		case k >= i:
			lo = i
		default:
			return v[k]
		}
	}
	return v[k]
}

// AdaptiveMedianFilter validates the window bounds and filters src.
func AdaptiveMedianFilter(src *Raster, start, max int) (*Raster, error) {
	f, err := NewAdaptiveMedian(start, max)
	if err != nil {
		return nil, err
	}
	return f.Apply(src), nil
}
