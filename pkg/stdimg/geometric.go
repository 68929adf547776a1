package stdimg

import (
	"math"
)

// HFlip mirrors src left to right.
func HFlip(src *Raster) *Raster {
	out := NewRasterLike(src)
	forEachRow(src.Height, func(y int) {
		for x := 0; x < src.Width; x++ {
			for c := 0; c < src.Channels; c++ {
				out.Set(src.Width-1-x, y, c, src.At(x, y, c))
			}
		}
	})
	return out
}

// VFlip mirrors src top to bottom.
func VFlip(src *Raster) *Raster {
	out := NewRasterLike(src)
	row := src.Width * src.Channels
	for y := 0; y < src.Height; y++ {
		dst := (src.Height - 1 - y) * row
		copy(out.Pix[dst:dst+row], src.Pix[y*row:(y+1)*row])
	}
	return out
}

// DFlip mirrors src about its main diagonal, swapping width and height.
func DFlip(src *Raster) *Raster {
	out := &Raster{
		Width:    src.Height,
		Height:   src.Width,
		Channels: src.Channels,
		Pix:      make([]uint8, len(src.Pix)),
	}
	forEachRow(out.Height, func(y int) {
		for x := 0; x < out.Width; x++ {
			for c := 0; c < src.Channels; c++ {
				out.Set(x, y, c, src.At(y, x, c))
			}
		}
	})
	return out
}

// Shrink scales src down by factor, which must lie in (0,1).
func Shrink(src *Raster, factor float64) (*Raster, error) {
	if math.IsNaN(factor) || factor <= 0 || factor >= 1 {
		return nil, invalidf("shrink factor must be in (0,1), got %v", factor)
	}
	return scaleNearest(src, factor), nil
}

// Enlarge scales src up by factor, which must be greater than 1.
func Enlarge(src *Raster, factor float64) (*Raster, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 1 {
		return nil, invalidf("enlarge factor must be > 1, got %v", factor)
	}
	return scaleNearest(src, factor), nil
}

// scaleNearest resizes with nearest-neighbour sampling. Output dimensions are
// round(dim*factor), at least 1, and output (x, y) copies source
// (round(x/factor), round(y/factor)) clamped to the image.
func scaleNearest(src *Raster, factor float64) *Raster {
	nw := max(1, int(math.Round(float64(src.Width)*factor)))
	nh := max(1, int(math.Round(float64(src.Height)*factor)))
	out := &Raster{Width: nw, Height: nh, Channels: src.Channels, Pix: make([]uint8, nw*nh*src.Channels)}
	xs := make([]int, nw)
	for x := range xs {
		xs[x] = clampInt(int(math.Round(float64(x)/factor)), 0, src.Width-1)
	}
	forEachRow(nh, func(y int) {
		sy := clampInt(int(math.Round(float64(y)/factor)), 0, src.Height-1)
		for x, sx := range xs {
			s := src.Offset(sx, sy, 0)
			copy(out.Pix[out.Offset(x, y, 0):out.Offset(x, y, 0)+src.Channels], src.Pix[s:s+src.Channels])
		}
	})
	return out
}
