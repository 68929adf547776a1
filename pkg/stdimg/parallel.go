package stdimg

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// forEachRow runs fn for every row in [0,height) across GOMAXPROCS workers.
// Filters only read from their source raster and each row writes a disjoint
// slice of the destination, so no further synchronisation is needed.
func forEachRow(height int, fn func(y int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers <= 1 || height < 2 {
		for y := 0; y < height; y++ {
			fn(y)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for y := 0; y < height; y++ {
		y := y
		g.Go(func() error {
			fn(y)
			return nil
		})
	}
	_ = g.Wait()
}

// mapSamples builds a new raster by evaluating fn for every (x, y, c) of src.
func mapSamples(src *Raster, fn func(x, y, c int) uint8) *Raster {
	out := NewRasterLike(src)
	forEachRow(src.Height, func(y int) {
		i := y * src.Width * src.Channels
		for x := 0; x < src.Width; x++ {
			for c := 0; c < src.Channels; c++ {
				out.Pix[i] = fn(x, y, c)
				i++
			}
		}
	})
	return out
}
