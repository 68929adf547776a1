package stdimg

import (
	"math"
)

// pointLUT builds a table from fn evaluated at every intensity.
func pointLUT(fn func(v float64) float64) LUT {
	var lut LUT
	for i := range lut {
		lut[i] = roundClamp(fn(float64(i)))
	}
	return lut
}

// mapAll applies lut to every channel of src.
func mapAll(src *Raster, lut LUT) *Raster {
	out := NewRasterLike(src)
	for i, v := range src.Pix {
		out.Pix[i] = lut[v]
	}
	return out
}

// Brightness adds value to every sample. value must lie in [-255,255].
func Brightness(src *Raster, value int) (*Raster, error) {
	if value < -255 || value > 255 {
		return nil, invalidf("brightness must be in [-255,255], got %d", value)
	}
	return mapAll(src, pointLUT(func(v float64) float64 { return v + float64(value) })), nil
}

// Contrast scales every sample's distance from mid-grey 128 by factor, which
// must lie in [0.1,3.0].
func Contrast(src *Raster, factor float64) (*Raster, error) {
	if math.IsNaN(factor) || factor < 0.1 || factor > 3.0 {
		return nil, invalidf("contrast factor must be in [0.1,3.0], got %v", factor)
	}
	return mapAll(src, pointLUT(func(v float64) float64 { return (v-128)*factor + 128 })), nil
}

// Negative inverts every sample, alpha included.
func Negative(src *Raster) *Raster {
	return mapAll(src, pointLUT(func(v float64) float64 { return 255 - v }))
}

// RGBOffset adds r, g and b to the first three channels. Channels that the
// image does not have are skipped, further channels are copied.
func RGBOffset(src *Raster, r, g, b int) (*Raster, error) {
	offsets := []int{r, g, b}
	for i, o := range offsets {
		if o < -255 || o > 255 {
			return nil, invalidf("offset for channel %d must be in [-255,255], got %d", i, o)
		}
	}
	out := src.Clone()
	for c := 0; c < src.Channels && c < len(offsets); c++ {
		o := float64(offsets[c])
		lut := pointLUT(func(v float64) float64 { return v + o })
		lut.apply(out, src, c)
	}
	return out, nil
}

// Grayscale replaces the first three channels with their Rec.709 luminance.
// Rasters with fewer than three channels are returned unchanged.
func Grayscale(src *Raster) *Raster {
	out := src.Clone()
	if src.Channels < 3 {
		return out
	}
	for i := 0; i < len(src.Pix); i += src.Channels {
		r, g, b := float64(src.Pix[i]), float64(src.Pix[i+1]), float64(src.Pix[i+2])
		lum := roundClamp(0.2126*r + 0.7152*g + 0.0722*b)
		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = lum, lum, lum
	}
	return out
}
