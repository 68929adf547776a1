package stdimg

import (
	"math"
)

// Posterize reduces every channel to `levels` evenly spaced values.
func Posterize(src *Raster, levels int) (*Raster, error) {
	if levels < 2 || levels > 256 {
		return nil, invalidf("posterize levels must be in [2,256], got %d", levels)
	}
	step := 255.0 / float64(levels-1)
	return mapAll(src, pointLUT(func(v float64) float64 {
		return math.Round(v/step) * step
	})), nil
}
