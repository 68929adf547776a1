package stdimg

import (
	"math"
)

// UnsharpMask adds amount times the detail src - blur(src, sigma) back onto
// src. A pixel whose colour detail stays below threshold in every channel is
// copied unchanged; threshold <= 0 disables the test. Alpha is copied.
func UnsharpMask(src *Raster, sigma, amount, threshold float64) (*Raster, error) {
	if amount < 0 || math.IsNaN(amount) {
		return nil, invalidf("unsharp amount must be >= 0, got %v", amount)
	}
	blurred, err := GaussianBlur(src, sigma)
	if err != nil {
		return nil, err
	}
	colour := colourChannels(src)
	out := src.Clone()
	for i := 0; i < len(src.Pix); i += src.Channels {
		if threshold > 0 {
			below := true
			for c := 0; c < colour; c++ {
				if math.Abs(float64(src.Pix[i+c])-float64(blurred.Pix[i+c])) >= threshold {
					below = false
					break
				}
			}
			if below {
				continue
			}
		}
		for c := 0; c < colour; c++ {
			s := float64(src.Pix[i+c])
			out.Pix[i+c] = roundClamp(s + amount*(s-float64(blurred.Pix[i+c])))
		}
	}
	return out, nil
}

// Despeckle removes isolated specks with a 3x3 median.
func Despeckle(src *Raster) *Raster {
	return MedianFilter(src, 1)
}
