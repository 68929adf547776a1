package stdimg

// MedianFilter applies a fixed (2*radius+1)² median with border extension.
// Each row keeps one 256-bucket histogram per channel and slides it along x,
// nudging a running median pointer instead of re-sorting the window.
func MedianFilter(src *Raster, radius int) *Raster {
	if radius <= 0 {
		return src.Clone()
	}
	out := NewRasterLike(src)
	side := 2*radius + 1
	half := (side*side + 1) / 2
	forEachRow(src.Height, func(y int) {
		for c := 0; c < src.Channels; c++ {
			var hist [256]int
			// column values are read through At so edge columns and rows repeat
			addColumn := func(x, delta int) {
				for dy := -radius; dy <= radius; dy++ {
					hist[src.At(x, y+dy, c)] += delta
				}
			}
			for dx := -radius; dx <= radius; dx++ {
				addColumn(dx, 1)
			}
			med, cum := 0, hist[0]
			for cum < half {
				med++
				cum += hist[med]
			}
			for x := 0; x < src.Width; x++ {
				out.Set(x, y, c, uint8(med))
				if x == src.Width-1 {
					break
				}
				// slide: remove column x-radius, add column x+radius+1
				removeX := x - radius
				addX := x + radius + 1
				for dy := -radius; dy <= radius; dy++ {
					v := int(src.At(removeX, y+dy, c))
					hist[v]--
					if v <= med {
						cum--
					}
					v = int(src.At(addX, y+dy, c))
					hist[v]++
					if v <= med {
						cum++
					}
				}
				for med > 0 && cum-hist[med] >= half {
					cum -= hist[med]
					med--
				}
				for med < 255 && cum < half {
					med++
					cum += hist[med]
				}
			}
		}
	})
	return out
}

// ArithmeticMean replaces each sample with the rounded mean of its ksize×ksize
// neighbourhood. ksize must be odd and at least 3.
func ArithmeticMean(src *Raster, ksize int) (*Raster, error) {
	if ksize < 3 || ksize%2 == 0 {
		return nil, invalidf("kernel size must be odd and >= 3, got %d", ksize)
	}
	r := ksize / 2
	area := float64(ksize * ksize)
	return mapSamples(src, func(x, y, c int) uint8 {
		sum := 0
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				sum += int(src.At(x+dx, y+dy, c))
			}
		}
		return roundClamp(float64(sum) / area)
	}), nil
}
