package stdimg

import (
	"image"
	"image/color"
	"math"

	"github.com/samber/lo"
)

// FromImage converts any image.Image into a Raster.
// Gray images become single-channel rasters, fully opaque images become
// three-channel RGB rasters, anything else keeps its alpha as a fourth channel.
func FromImage(src image.Image) (*Raster, error) {
	if src == nil {
		return nil, invalidf("source image is nil")
	}
	b := src.Bounds()
	switch img := src.(type) {
	case *image.Gray:
		out, err := NewRaster(b.Dx(), b.Dy(), 1)
		if err != nil {
			return nil, err
		}
		for y := 0; y < out.Height; y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+out.Width]
			copy(out.Pix[y*out.Width:(y+1)*out.Width], row)
		}
		return out, nil
	}
	channels := 3
	if !isOpaque(src) {
		channels = 4
	}
	return FromImageChannels(src, channels)
}

// FromImageChannels converts src into a raster with exactly the given number
// of channels (1, 3 or 4). It is used when a result must keep the shape of an
// existing raster regardless of the concrete image type a library returned.
func FromImageChannels(src image.Image, channels int) (*Raster, error) {
	if src == nil {
		return nil, invalidf("source image is nil")
	}
	b := src.Bounds()
	out, err := NewRaster(b.Dx(), b.Dy(), channels)
	if err != nil {
		return nil, err
	}
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			switch channels {
			case 1:
				g := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
				out.Pix[idx] = g.Y
			case 2:
				n := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				out.Pix[idx+0] = color.GrayModel.Convert(color.NRGBA{n.R, n.G, n.B, 255}).(color.Gray).Y
				out.Pix[idx+1] = n.A
			default:
				n := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				out.Pix[idx+0] = n.R
				out.Pix[idx+1] = n.G
				out.Pix[idx+2] = n.B
				if channels == 4 {
					out.Pix[idx+3] = n.A
				}
			}
			idx += channels
		}
	}
	return out, nil
}

// ToImage converts r into a standard library image. Single-channel rasters
// become *image.Gray, everything else *image.NRGBA.
func (r *Raster) ToImage() image.Image {
	rect := image.Rect(0, 0, r.Width, r.Height)
	if r.Channels == 1 {
		out := image.NewGray(rect)
		copy(out.Pix, r.Pix)
		return out
	}
	out := image.NewNRGBA(rect)
	n := r.PixelCount()
	for p := 0; p < n; p++ {
		s := r.Pix[p*r.Channels : (p+1)*r.Channels]
		d := out.Pix[p*4 : p*4+4]
		switch r.Channels {
		case 2:
			d[0], d[1], d[2], d[3] = s[0], s[0], s[0], s[1]
		case 3:
			d[0], d[1], d[2], d[3] = s[0], s[1], s[2], 255
		default:
			d[0], d[1], d[2], d[3] = s[0], s[1], s[2], s[3]
		}
	}
	return out
}

func isOpaque(src image.Image) bool {
	if o, ok := src.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := src.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// clampInt clamps v to [low,high]
func clampInt(v, low, high int) int {
	return lo.Clamp(v, low, high)
}

// roundClamp rounds half away from zero and clamps into the sample range.
// NaN maps to 0 and infinities saturate.
func roundClamp(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

func clampSample(v int) uint8 {
	return uint8(clampInt(v, 0, 255))
}
