package stdimg

import (
	"math"
)

// Gamma applies v' = 255·(v/255)^(1/gamma) to every sample. gamma must be
// positive and finite.
func Gamma(src *Raster, gamma float64) (*Raster, error) {
	if gamma <= 0 || math.IsNaN(gamma) || math.IsInf(gamma, 0) {
		return nil, invalidf("gamma must be > 0, got %v", gamma)
	}
	inv := 1 / gamma
	return mapAll(src, pointLUT(func(v float64) float64 {
		return math.Pow(v/255, inv) * 255
	})), nil
}

// Level stretches [black,white] onto [0,255], clamping outside the range,
// then applies gamma when it is positive.
func Level(src *Raster, black, white int, gamma float64) (*Raster, error) {
	if black < 0 || white > 255 || black >= white {
		return nil, invalidf("level expects 0 <= black < white <= 255, got [%d,%d]", black, white)
	}
	lo, span := float64(black), float64(white-black)
	return mapAll(src, pointLUT(func(v float64) float64 {
		n := math.Min(math.Max((v-lo)/span, 0), 1)
		if gamma > 0 {
			n = math.Pow(n, 1/gamma)
		}
		return n * 255
	})), nil
}

// Threshold maps samples >= t to 255 and the rest to 0, per channel.
func Threshold(src *Raster, t int) (*Raster, error) {
	if t < 0 || t > 255 {
		return nil, invalidf("threshold must be in [0,255], got %d", t)
	}
	return mapAll(src, pointLUT(func(v float64) float64 {
		if v >= float64(t) {
			return 255
		}
		return 0
	})), nil
}

// Normalize stretches each colour channel from its own [min,max] to [0,255].
// A flat channel is left as is. Alpha is copied.
func Normalize(src *Raster) *Raster {
	out := src.Clone()
	for c := 0; c < colourChannels(src); c++ {
		h, _ := ComputeHistogram(src, c)
		lo, hi := 0, 255
		for lo < 255 && h[lo] == 0 {
			lo++
		}
		for hi > 0 && h[hi] == 0 {
			hi--
		}
		if hi <= lo {
			continue
		}
		span := float64(hi - lo)
		lut := pointLUT(func(v float64) float64 { return (v - float64(lo)) / span * 255 })
		lut.apply(out, src, c)
	}
	return out
}

// AutoGamma picks the gamma that moves the mean luminance to 0.5 and applies
// it to the colour channels. The estimate is clamped to [0.1,10]; a black or
// white image is returned unchanged.
func AutoGamma(src *Raster) *Raster {
	lum := Grayscale(src)
	ch, _ := ComputeCharacteristics(lum, 0)
	mean := ch.Mean / 255
	if mean <= 0 || mean >= 1 {
		return src.Clone()
	}
	// mean^g = 0.5
	g := math.Log(0.5) / math.Log(mean)
	if math.IsNaN(g) || math.IsInf(g, 0) {
		return src.Clone()
	}
	g = math.Min(math.Max(g, 0.1), 10)
	lut := pointLUT(func(v float64) float64 { return math.Pow(v/255, g) * 255 })
	out := src.Clone()
	for c := 0; c < colourChannels(src); c++ {
		lut.apply(out, src, c)
	}
	return out
}
