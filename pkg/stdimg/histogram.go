package stdimg

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Histogram counts occurrences of each intensity in one channel.
type Histogram [256]int

// CDF is the cumulative normalised histogram, non-decreasing and at most 1.
type CDF [256]float32

// LUT maps an input intensity to an output intensity.
type LUT [256]uint8

// ComputeHistogram counts the samples of channel ch.
func ComputeHistogram(src *Raster, ch int) (Histogram, error) {
	var h Histogram
	if ch < 0 || ch >= src.Channels {
		return h, channelErr(ch, src.Channels)
	}
	for i := ch; i < len(src.Pix); i += src.Channels {
		h[src.Pix[i]]++
	}
	return h, nil
}

// Total returns the number of samples counted.
func (h Histogram) Total() int {
	n := 0
	for _, v := range h {
		n += v
	}
	return n
}

// Max returns the largest bucket count.
func (h Histogram) Max() int {
	m := 0
	for _, v := range h {
		if v > m {
			m = v
		}
	}
	return m
}

// BuildCDF accumulates h[i]/total in float32. The running sum is clamped to 1
// to absorb rounding drift. A non-positive total yields an all-zero CDF.
func BuildCDF(h Histogram, total int) CDF {
	var cdf CDF
	if total <= 0 {
		return cdf
	}
	cum := float32(0)
	for i := range h {
		cum += float32(h[i]) / float32(total)
		if cum > 1 {
			cum = 1
		}
		cdf[i] = cum
	}
	return cdf
}

// BuildLUT maps every CDF entry through fn, rounding and clamping to [0,255].
// NaN becomes 0.
func BuildLUT(cdf CDF, fn func(float32) float32) LUT {
	var lut LUT
	for i, f := range cdf {
		lut[i] = roundClamp(float64(fn(f)))
	}
	return lut
}

// apply writes channel ch of src, mapped through lut, into dst.
func (lut *LUT) apply(dst, src *Raster, ch int) {
	for i := ch; i < len(src.Pix); i += src.Channels {
		dst.Pix[i] = lut[src.Pix[i]]
	}
}

// histogram chart layout
const (
	chartMarginLeft   = 8
	chartMarginRight  = 8
	chartMarginTop    = 18
	chartMarginBottom = 22
	chartTickLen      = 4
)

// RenderHistogram draws h as a bar chart of the given size. The plot area is
// framed by margins carrying intensity ticks along the x axis and a caption
// with the peak bucket count.
func RenderHistogram(h Histogram, width, height int) *image.NRGBA {
	if width <= 0 {
		width = 512
	}
	if height <= 0 {
		height = 160
	}
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	plot := image.Rect(chartMarginLeft, chartMarginTop, width-chartMarginRight, height-chartMarginBottom)
	if plot.Dx() <= 0 || plot.Dy() <= 0 {
		plot = out.Bounds()
	}
	bar := color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	axis := color.NRGBA{R: 0, G: 0, B: 0, A: 255}

	peak := h.Max()
	if peak < 1 {
		peak = 1
	}
	pw, ph := plot.Dx(), plot.Dy()
	for x := 0; x < pw; x++ {
		bin := clampInt(int(math.Floor(float64(x)*256/float64(pw))), 0, 255)
		barH := int(math.Round(float64(h[bin]) / float64(peak) * float64(ph)))
		for y := 0; y < barH; y++ {
			out.SetNRGBA(plot.Min.X+x, plot.Max.Y-1-y, bar)
		}
	}

	// x axis with ticks every 64 intensities
	for x := plot.Min.X; x < plot.Max.X; x++ {
		out.SetNRGBA(x, plot.Max.Y, axis)
	}
	d := &font.Drawer{Dst: out, Src: image.NewUniform(axis), Face: basicfont.Face7x13}
	for _, v := range []int{0, 64, 128, 192, 255} {
		tx := plot.Min.X + int(math.Round(float64(v)*float64(pw-1)/255))
		for y := plot.Max.Y; y < plot.Max.Y+chartTickLen && y < height; y++ {
			out.SetNRGBA(tx, y, axis)
		}
		label := fmt.Sprint(v)
		lw := d.MeasureString(label).Ceil()
		lx := clampInt(tx-lw/2, 0, width-lw)
		d.Dot = fixed.P(lx, plot.Max.Y+chartTickLen+basicfont.Face7x13.Ascent)
		d.DrawString(label)
	}

	d.Dot = fixed.P(chartMarginLeft, basicfont.Face7x13.Ascent+2)
	d.DrawString(fmt.Sprintf("n=%d peak=%d", h.Total(), h.Max()))
	return out
}
