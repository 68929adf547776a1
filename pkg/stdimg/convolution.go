package stdimg

import (
	"math"
)

// Kernel is an immutable matrix of weights with an odd number of rows and
// columns; its center cell sits at (Rows/2, Cols/2).
type Kernel struct {
	rows, cols int
	w          []float64
}

// KernelBank is an ordered set of kernels evaluated together by DirectionalMax.
// Order only matters for tie-breaking.
type KernelBank []Kernel

// NewKernel copies weights into a Kernel. Rows must be non-empty, of equal
// length, and both dimensions must be odd.
func NewKernel(weights [][]float64) (Kernel, error) {
	rows := len(weights)
	if rows == 0 || len(weights[0]) == 0 {
		return Kernel{}, invalidf("kernel must not be empty")
	}
	cols := len(weights[0])
	if rows%2 == 0 || cols%2 == 0 {
		return Kernel{}, invalidf("kernel dimensions must be odd, got %dx%d", rows, cols)
	}
	k := Kernel{rows: rows, cols: cols, w: make([]float64, 0, rows*cols)}
	for i, row := range weights {
		if len(row) != cols {
			return Kernel{}, invalidf("kernel row %d has %d columns, want %d", i, len(row), cols)
		}
		k.w = append(k.w, row...)
	}
	return k, nil
}

// mustKernel is for the package's own constant tables.
func mustKernel(weights [][]float64) Kernel {
	k, err := NewKernel(weights)
	if err != nil {
		panic(err)
	}
	return k
}

// scaled returns a kernel whose weights are all multiplied by s.
func scaled(s float64, weights [][]float64) Kernel {
	out := make([][]float64, len(weights))
	for i, row := range weights {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = v * s
		}
	}
	return mustKernel(out)
}

// Rows returns the kernel height.
func (k Kernel) Rows() int { return k.rows }

// Cols returns the kernel width.
func (k Kernel) Cols() int { return k.cols }

// Weight returns the weight at row i, column j.
func (k Kernel) Weight(i, j int) float64 { return k.w[i*k.cols+j] }

// responseAt evaluates k centred on (x, y) for channel c, reading through the
// border-extended sampler.
func (k Kernel) responseAt(src *Raster, x, y, c int) float64 {
	rr, cr := k.rows/2, k.cols/2
	sum := 0.0
	for i := 0; i < k.rows; i++ {
		for j := 0; j < k.cols; j++ {
			sum += k.w[i*k.cols+j] * float64(src.At(x+j-cr, y+i-rr, c))
		}
	}
	return sum
}

// Convolve applies k to every sample of src. Each response is rounded to the
// nearest integer and clamped to [0,255].
func Convolve(src *Raster, k Kernel) *Raster {
	return mapSamples(src, func(x, y, c int) uint8 {
		return roundClamp(k.responseAt(src, x, y, c))
	})
}

// DirectionalMax evaluates every kernel of bank at each sample and keeps the
// response with the largest magnitude. The first kernel reaching the maximum
// wins a tie.
func DirectionalMax(src *Raster, bank KernelBank) *Raster {
	return mapSamples(src, func(x, y, c int) uint8 {
		best := 0.0
		for _, k := range bank {
			if r := math.Abs(k.responseAt(src, x, y, c)); r > best {
				best = r
			}
		}
		return roundClamp(best)
	})
}

// gaussianKernel1D generates a 1D Gaussian kernel with given sigma. Returns kernel and half-width radius.
func gaussianKernel1D(sigma float64) ([]float64, int) {
	if sigma <= 0 {
		return []float64{1.0}, 0
	}
	// choose radius ~ ceil(3*sigma)
	radius := int(math.Ceil(3 * sigma))
	sz := radius*2 + 1
	kern := make([]float64, sz)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-0.5 * (float64(i) * float64(i)) / (sigma * sigma))
		kern[i+radius] = v
		sum += v
	}
	for i := range kern {
		kern[i] /= sum
	}
	return kern, radius
}

// GaussianKernel builds a normalised square Gaussian kernel as the outer
// product of the 1D kernel with itself.
func GaussianKernel(sigma float64) (Kernel, error) {
	if sigma <= 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return Kernel{}, invalidf("gaussian sigma must be positive, got %v", sigma)
	}
	k1, radius := gaussianKernel1D(sigma)
	n := 2*radius + 1
	w := make([][]float64, n)
	for i := range w {
		w[i] = make([]float64, n)
		for j := range w[i] {
			w[i][j] = k1[i] * k1[j]
		}
	}
	return NewKernel(w)
}

// GaussianBlur convolves src with GaussianKernel(sigma).
func GaussianBlur(src *Raster, sigma float64) (*Raster, error) {
	k, err := GaussianKernel(sigma)
	if err != nil {
		return nil, err
	}
	return Convolve(src, k), nil
}
