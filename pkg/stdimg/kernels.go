package stdimg

// Predefined masks. The tables are built once and never modified; accessors
// hand out the shared values because Kernel has no mutating methods.

var lowPassKernels = []Kernel{
	scaled(1.0/9.0, [][]float64{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	}),
	scaled(1.0/10.0, [][]float64{
		{1, 1, 1},
		{1, 2, 1},
		{1, 1, 1},
	}),
	scaled(1.0/16.0, [][]float64{
		{1, 2, 1},
		{2, 4, 2},
		{1, 2, 1},
	}),
}

var edgeSharpenKernels = []Kernel{
	mustKernel([][]float64{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	}),
	mustKernel([][]float64{
		{-1, -1, -1},
		{-1, 9, -1},
		{-1, -1, -1},
	}),
	mustKernel([][]float64{
		{1, -2, 1},
		{-2, 5, -2},
		{1, -2, 1},
	}),
}

// neighbourAverageSharpen is original + (original - mean of the 4-neighbours)
// written as a mask. SharpenOptimized computes the same thing directly.
var neighbourAverageSharpen = mustKernel([][]float64{
	{0, -0.25, 0},
	{-0.25, 2, -0.25},
	{0, -0.25, 0},
})

var laplacianKernels = []Kernel{
	mustKernel([][]float64{
		{0, -1, 0},
		{-1, 4, -1},
		{0, -1, 0},
	}),
	mustKernel([][]float64{
		{-1, -1, -1},
		{-1, 8, -1},
		{-1, -1, -1},
	}),
	mustKernel([][]float64{
		{1, -2, 1},
		{-2, 4, -2},
		{1, -2, 1},
	}),
}

var detailExtractionI = KernelBank{
	mustKernel([][]float64{
		{1, 1, -1},
		{1, -2, -1},
		{1, 1, -1},
	}),
	mustKernel([][]float64{
		{1, -1, -1},
		{1, -2, -1},
		{1, 1, 1},
	}),
	mustKernel([][]float64{
		{-1, -1, -1},
		{1, -2, 1},
		{1, 1, 1},
	}),
	mustKernel([][]float64{
		{-1, -1, 1},
		{-1, -2, 1},
		{1, 1, 1},
	}),
}

var detailExtractionII = KernelBank{
	mustKernel([][]float64{
		{-1, 1, 1},
		{-1, -2, 1},
		{-1, 1, 1},
	}),
	mustKernel([][]float64{
		{1, 1, 1},
		{-1, -2, 1},
		{-1, -1, 1},
	}),
	mustKernel([][]float64{
		{1, 1, 1},
		{1, -2, 1},
		{-1, -1, -1},
	}),
	mustKernel([][]float64{
		{1, 1, 1},
		{1, -2, -1},
		{1, -1, -1},
	}),
}

var lineKernels = KernelBank{
	mustKernel([][]float64{
		{-1, -1, -1},
		{2, 2, 2},
		{-1, -1, -1},
	}),
	mustKernel([][]float64{
		{-1, 2, -1},
		{-1, 2, -1},
		{-1, 2, -1},
	}),
	mustKernel([][]float64{
		{-1, -1, 2},
		{-1, 2, -1},
		{2, -1, -1},
	}),
	mustKernel([][]float64{
		{2, -1, -1},
		{-1, 2, -1},
		{-1, -1, 2},
	}),
}

// ring lists the 8-neighbourhood as (dx, dy) offsets, walking the ring
// starting from the top-left neighbour.
var ring = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1},
}

// compassBank rotates a 3-cell pattern around the ring: three consecutive
// neighbours get weight hi, the remaining five get lo, the centre gets 0.
func compassBank(hi, lo float64) KernelBank {
	bank := make(KernelBank, 0, len(ring))
	for i := range ring {
		w := [][]float64{{lo, lo, lo}, {lo, 0, lo}, {lo, lo, lo}}
		for j := 0; j < 3; j++ {
			o := ring[(i+j)%len(ring)]
			w[o[1]+1][o[0]+1] = hi
		}
		bank = append(bank, mustKernel(w))
	}
	return bank
}

var kirschKernels = compassBank(5, -3)

// clampMaskIndex converts a 1-based mask selector into a slice index,
// clamping out-of-range selectors to the first or last mask.
func clampMaskIndex(mask, count int) int {
	return clampInt(mask, 1, count) - 1
}

// LowPassKernel returns low-pass mask number mask (1-based, clamped).
func LowPassKernel(mask int) Kernel {
	return lowPassKernels[clampMaskIndex(mask, len(lowPassKernels))]
}

// LaplacianKernel returns Laplacian mask number mask (1-based, clamped).
func LaplacianKernel(mask int) Kernel {
	return laplacianKernels[clampMaskIndex(mask, len(laplacianKernels))]
}

// KirschBank returns the 8 compass kernels.
func KirschBank() KernelBank { return kirschKernels }


// LowPass smooths src with one of the predefined low-pass masks.
func LowPass(src *Raster, mask int) *Raster {
	return Convolve(src, LowPassKernel(mask))
}

// Laplacian applies one of the predefined Laplacian masks.
func Laplacian(src *Raster, mask int) *Raster {
	return Convolve(src, LaplacianKernel(mask))
}

// EdgeSharpen applies sharpening variant 1, 2 or 3. With optimized set the
// variant is ignored and SharpenOptimized is used instead.
func EdgeSharpen(src *Raster, variant int, optimized bool) (*Raster, error) {
	if optimized {
		return SharpenOptimized(src), nil
	}
	if variant < 1 || variant > len(edgeSharpenKernels) {
		return nil, invalidf("edge sharpening variant must be 1, 2 or 3 (or optimized), got %d", variant)
	}
	return Convolve(src, edgeSharpenKernels[variant-1]), nil
}

// SharpenOptimized computes original + (original - average of the four direct
// neighbours) without a generic convolution. It matches
// Convolve(src, neighbourAverageSharpen) sample for sample.
func SharpenOptimized(src *Raster) *Raster {
	return mapSamples(src, func(x, y, c int) uint8 {
		o := float64(src.At(x, y, c))
		sum := int(src.At(x-1, y, c)) + int(src.At(x+1, y, c)) +
			int(src.At(x, y-1, c)) + int(src.At(x, y+1, c))
		avg := float64(sum) / 4
		return roundClamp(o + (o - avg))
	})
}

// DetailExtraction runs directional detail family 1 or 2.
func DetailExtraction(src *Raster, family int) (*Raster, error) {
	switch family {
	case 1:
		return DirectionalMax(src, detailExtractionI), nil
	case 2:
		return DirectionalMax(src, detailExtractionII), nil
	}
	return nil, invalidf("detail extraction family must be 1 or 2, got %d", family)
}

// LineIdentification responds to thin lines in any of four orientations.
func LineIdentification(src *Raster) *Raster {
	return DirectionalMax(src, lineKernels)
}
