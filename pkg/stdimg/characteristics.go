package stdimg

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Characteristics are the histogram-based statistics of one channel.
type Characteristics struct {
	Mean       float64
	Variance   float64
	Stdev      float64
	VarCoeffI  float64
	Asymmetry  float64
	Flattening float64
	VarCoeffII float64
	Entropy    float64
}

// CharacteristicField names one value of Characteristics for printing.
type CharacteristicField struct {
	Name  string
	Label string
	Value float64
}

// Fields returns the values in display order. Name is the short selector the
// CLI accepts, Label the long caption.
func (c Characteristics) Fields() []CharacteristicField {
	return []CharacteristicField{
		{"cmean", "Mean (C1)", c.Mean},
		{"cvariance", "Variance (C1)", c.Variance},
		{"cstdev", "Std Deviation (C2)", c.Stdev},
		{"cvarcoi", "Var Coefficient I (C2)", c.VarCoeffI},
		{"casyco", "Asymmetry (C3)", c.Asymmetry},
		{"cflatco", "Flattening (C4)", c.Flattening},
		{"cvarcoii", "Var Coefficient II (C5)", c.VarCoeffII},
		{"centropy", "Entropy (C6)", c.Entropy},
	}
}

// intensities holds 0..255 as float64, the support of every histogram.
var intensities = func() []float64 {
	v := make([]float64, 256)
	for i := range v {
		v[i] = float64(i)
	}
	return v
}()

// ComputeCharacteristics builds the histogram of channel ch and derives the
// statistics from it.
func ComputeCharacteristics(src *Raster, ch int) (Characteristics, error) {
	h, err := ComputeHistogram(src, ch)
	if err != nil {
		return Characteristics{}, err
	}
	return CharacteristicsFromHistogram(h, src.PixelCount()), nil
}

// CharacteristicsFromHistogram computes the moments of h over n samples. n is
// raised to 1 when smaller. Ratios with a zero denominator are reported as 0.
func CharacteristicsFromHistogram(h Histogram, n int) Characteristics {
	if n < 1 {
		n = 1
	}
	N := float64(n)
	weights := make([]float64, len(h))
	p := make([]float64, len(h))
	for i, v := range h {
		weights[i] = float64(v)
		p[i] = float64(v) / N
	}

	var c Characteristics
	c.Mean = floats.Dot(intensities, weights) / N
	c.Variance = centralSum(weights, c.Mean, 2) / N
	c.Stdev = math.Sqrt(c.Variance)
	if c.Mean > 0 {
		c.VarCoeffI = c.Stdev / c.Mean
	}
	if c.Stdev > 0 {
		c.Asymmetry = centralSum(weights, c.Mean, 3) / (N * c.Stdev * c.Stdev * c.Stdev)
		if denom := N * c.Variance * c.Variance; denom > 0 {
			c.Flattening = centralSum(weights, c.Mean, 4)/denom - 3
		}
	}
	c.VarCoeffII = floats.Dot(p, p)
	c.Entropy = stat.Entropy(p) / math.Ln2
	return c
}

// centralSum is Σ (m-mean)^k·h[m]. stat.MomentAbout divides by the weight
// total, which is undone here so the caller can divide by its own n.
func centralSum(weights []float64, mean float64, k float64) float64 {
	total := floats.Sum(weights)
	if total == 0 {
		return 0
	}
	return stat.MomentAbout(k, intensities, mean, weights) * total
}
