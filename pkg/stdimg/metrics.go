package stdimg

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// noiseFloor is the error energy at or below which two images count as
// identical for the ratio metrics.
const noiseFloor = 1e-12

// Pair is a reference image and a compared image of identical shape.
type Pair struct {
	Ref *Raster
	Cmp *Raster
}

// NewPair checks that ref and cmp have the same width, height and channel
// count.
func NewPair(ref, cmp *Raster) (Pair, error) {
	if !ref.SameShape(cmp) {
		return Pair{}, errors.Wrapf(ErrShapeMismatch, "%dx%dx%d vs %dx%dx%d",
			ref.Width, ref.Height, ref.Channels, cmp.Width, cmp.Height, cmp.Channels)
	}
	return Pair{Ref: ref, Cmp: cmp}, nil
}

// pairSums holds the accumulators every metric is derived from.
type pairSums struct {
	signal float64 // Σ A²
	noise  float64 // Σ (A-B)²
	maxRef int
	maxAbs int
	count  float64
}

func (p Pair) sums() pairSums {
	var s pairSums
	for i, a := range p.Ref.Pix {
		av := int(a)
		d := av - int(p.Cmp.Pix[i])
		s.signal += float64(av * av)
		s.noise += float64(d * d)
		if av > s.maxRef {
			s.maxRef = av
		}
		if d = absInt(d); d > s.maxAbs {
			s.maxAbs = d
		}
	}
	s.count = float64(len(p.Ref.Pix))
	return s
}

// MSE is the mean squared error over every sample.
func (p Pair) MSE() float64 {
	s := p.sums()
	return s.noise / s.count
}

// PMSE normalises the MSE by the squared peak of the reference. A reference
// that is entirely black gives +Inf.
func (p Pair) PMSE() float64 {
	s := p.sums()
	peak2 := float64(s.maxRef * s.maxRef)
	if peak2 <= 0 {
		return math.Inf(1)
	}
	return s.noise / peak2 / s.count
}

// SNR is the signal to noise ratio in decibels. Identical images give +Inf.
func (p Pair) SNR() float64 {
	s := p.sums()
	if s.noise <= noiseFloor {
		return math.Inf(1)
	}
	return 10 * math.Log10(s.signal/s.noise)
}

// PSNR is the peak signal to noise ratio in decibels, using the peak of the
// reference. Identical images and an entirely black reference give +Inf.
func (p Pair) PSNR() float64 {
	s := p.sums()
	peak2 := float64(s.maxRef * s.maxRef)
	if s.noise <= noiseFloor || peak2 <= 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(s.count*peak2/s.noise)
}

// MD is the largest absolute sample difference.
func (p Pair) MD() int {
	return p.sums().maxAbs
}

// Metric is a named pairwise comparison.
type Metric struct {
	Name        string
	Description string
	Unit        string
	Eval        func(Pair) float64
}

var metrics = map[string]Metric{
	"mse":  {Name: "mse", Description: "mean squared error", Eval: Pair.MSE},
	"pmse": {Name: "pmse", Description: "peak mean squared error", Eval: Pair.PMSE},
	"snr":  {Name: "snr", Description: "signal to noise ratio", Unit: "dB", Eval: Pair.SNR},
	"psnr": {Name: "psnr", Description: "peak signal to noise ratio", Unit: "dB", Eval: Pair.PSNR},
	"md": {Name: "md", Description: "maximum difference", Eval: func(p Pair) float64 {
		return float64(p.MD())
	}},
}

// LookupMetric returns the metric registered under name.
func LookupMetric(name string) (Metric, error) {
	m, ok := metrics[name]
	if !ok {
		return Metric{}, invalidf("unknown metric %q", name)
	}
	return m, nil
}

// MetricNames lists the registered metrics in sorted order.
func MetricNames() []string {
	names := lo.Keys(metrics)
	sort.Strings(names)
	return names
}
