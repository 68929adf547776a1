// Package stdimg implements 8-bit raster filters, histogram tone mappings and
// image statistics in pure Go. Every spatial operator samples outside the
// image by extending the nearest border pixel.
package stdimg

// Raster is a width×height grid of 8-bit samples with a fixed number of
// interleaved channels. Operations never modify their source raster; they
// allocate a fresh one of the same shape for the result.
type Raster struct {
	Width    int
	Height   int
	Channels int
	// Pix holds samples row by row, channel-interleaved:
	// Pix[(y*Width+x)*Channels+c].
	Pix []uint8
}

// NewRaster allocates a zeroed raster. All dimensions must be at least 1.
func NewRaster(width, height, channels int) (*Raster, error) {
	if width < 1 || height < 1 || channels < 1 {
		return nil, invalidf("raster dimensions must be positive, got %dx%dx%d", width, height, channels)
	}
	return &Raster{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}, nil
}

// NewRasterLike allocates a zeroed raster with the same shape as src.
func NewRasterLike(src *Raster) *Raster {
	return &Raster{
		Width:    src.Width,
		Height:   src.Height,
		Channels: src.Channels,
		Pix:      make([]uint8, len(src.Pix)),
	}
}

// Clone returns a deep copy of r.
func (r *Raster) Clone() *Raster {
	out := NewRasterLike(r)
	copy(out.Pix, r.Pix)
	return out
}

// Offset returns the index of sample (x, y, c) in Pix. Coordinates must be in range.
func (r *Raster) Offset(x, y, c int) int {
	return (y*r.Width+x)*r.Channels + c
}

// At is the border-extended sampler: each coordinate, and the channel index,
// is clamped to the nearest valid value, so any window read near an edge
// replicates the edge sample.
func (r *Raster) At(x, y, c int) uint8 {
	x = clampInt(x, 0, r.Width-1)
	y = clampInt(y, 0, r.Height-1)
	c = clampInt(c, 0, r.Channels-1)
	return r.Pix[(y*r.Width+x)*r.Channels+c]
}

// Set writes sample (x, y, c). Coordinates must be in range.
func (r *Raster) Set(x, y, c int, v uint8) {
	r.Pix[(y*r.Width+x)*r.Channels+c] = v
}

// SameShape reports whether r and o have identical width, height and channel count.
func (r *Raster) SameShape(o *Raster) bool {
	return r.Width == o.Width && r.Height == o.Height && r.Channels == o.Channels
}

// PixelCount is Width*Height.
func (r *Raster) PixelCount() int {
	return r.Width * r.Height
}
