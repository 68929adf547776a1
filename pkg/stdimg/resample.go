package stdimg

import (
	"image"
	"sort"
	"strings"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

var interpolations = map[string]resize.InterpolationFunction{
	"nearest":  resize.NearestNeighbor,
	"bilinear": resize.Bilinear,
	"bicubic":  resize.Bicubic,
	"mitchell": resize.MitchellNetravali,
	"lanczos2": resize.Lanczos2,
	"lanczos3": resize.Lanczos3,
}

// InterpolationNames lists the filters Resize accepts.
func InterpolationNames() []string {
	names := make([]string, 0, len(interpolations))
	for n := range interpolations {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resize resamples src to width×height with the named filter. One of width
// and height may be 0 to preserve the aspect ratio.
func Resize(src *Raster, width, height int, filter string) (*Raster, error) {
	interp, ok := interpolations[strings.ToLower(filter)]
	if !ok {
		return nil, invalidf("unknown interpolation %q, want one of %v", filter, InterpolationNames())
	}
	if width < 0 || height < 0 || (width == 0 && height == 0) {
		return nil, invalidf("resize needs a positive width or height, got %dx%d", width, height)
	}
	if width == 0 {
		width = max(1, int(float64(src.Width)*float64(height)/float64(src.Height)+0.5))
	}
	if height == 0 {
		height = max(1, int(float64(src.Height)*float64(width)/float64(src.Width)+0.5))
	}
	return resizePlanes(src, width, height, interp)
}

// resizePlanes resizes every channel plane on its own, so any channel count
// survives the trip through the image package.
func resizePlanes(src *Raster, width, height int, interp resize.InterpolationFunction) (*Raster, error) {
	out := &Raster{Width: width, Height: height, Channels: src.Channels, Pix: make([]uint8, width*height*src.Channels)}
	for c := 0; c < src.Channels; c++ {
		g, err := grayPlane(resize.Resize(uint(width), uint(height), src.plane(c), interp))
		if err != nil {
			return nil, errors.Wrapf(err, "resize channel %d", c)
		}
		out.setPlane(c, g)
	}
	return out, nil
}

// grayPlane returns img as a gray image anchored at the origin, converting
// when the resizer hands back another type.
func grayPlane(img image.Image) (*image.Gray, error) {
	if g, ok := img.(*image.Gray); ok && g.Rect.Min == (image.Point{}) {
		return g, nil
	}
	conv, err := FromImageChannels(img, 1)
	if err != nil {
		return nil, err
	}
	return &image.Gray{Pix: conv.Pix, Stride: conv.Width, Rect: image.Rect(0, 0, conv.Width, conv.Height)}, nil
}

// plane extracts channel c as a gray image.
func (r *Raster) plane(c int) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	for i := range g.Pix {
		g.Pix[i] = r.Pix[i*r.Channels+c]
	}
	return g
}

// setPlane writes g into channel c. g must have r's dimensions.
func (r *Raster) setPlane(c int, g *image.Gray) {
	for y := 0; y < r.Height; y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+r.Width]
		for x, v := range row {
			r.Pix[(y*r.Width+x)*r.Channels+c] = v
		}
	}
}
