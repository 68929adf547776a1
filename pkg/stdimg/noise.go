package stdimg

import (
	"math"
	"math/rand"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// Noise kinds accepted by AddNoise.
const (
	NoiseGaussian = "GAUSSIAN"
	NoiseUniform  = "UNIFORM"
	NoisePoisson  = "POISSON"
	NoiseImpulse  = "IMPULSE"
)

// AddNoise degrades src with synthetic noise, typically to exercise the noise
// filters. kind is case-insensitive:
//
//	GAUSSIAN  amount is the standard deviation
//	UNIFORM   amount is the maximum deviation
//	POISSON   amount scales the photon count
//	IMPULSE   amount is the probability in (0,1] that a pixel turns black or white
//
// The alpha channel of 2 and 4 channel rasters is left alone. The same seed
// always produces the same output; seed 0 is replaced by 1.
func AddNoise(src *Raster, kind string, amount float64, seed int64) (*Raster, error) {
	kind = strings.ToUpper(kind)
	switch kind {
	case NoiseGaussian, NoiseUniform, NoisePoisson:
		if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return nil, invalidf("%s noise amount must be >= 0, got %v", strings.ToLower(kind), amount)
		}
	case NoiseImpulse:
		if amount < 0 || amount > 1 || math.IsNaN(amount) {
			return nil, invalidf("impulse probability must be in [0,1], got %v", amount)
		}
	default:
		return nil, invalidf("unknown noise kind %q", kind)
	}
	if amount == 0 {
		return src.Clone(), nil
	}
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	out := src.Clone()
	colour := colourChannels(src)
	var cdfs [][]float64
	if kind == NoisePoisson {
		cdfs = buildPoissonCDFs(amount)
	}
	for i := 0; i < len(src.Pix); i += src.Channels {
		if kind == NoiseImpulse {
			if rng.Float64() >= amount {
				continue
			}
			v := uint8(0)
			if rng.Intn(2) == 1 {
				v = 255
			}
			for c := 0; c < colour; c++ {
				out.Pix[i+c] = v
			}
			continue
		}
		for c := 0; c < colour; c++ {
			v := float64(src.Pix[i+c])
			switch kind {
			case NoiseUniform:
				v += (rng.Float64()*2 - 1) * amount
			case NoisePoisson:
				k := sort.SearchFloat64s(cdfs[src.Pix[i+c]], rng.Float64())
				v = float64(k) * (255.0 / amount)
			default:
				v += gaussianSample(rng, amount)
			}
			out.Pix[i+c] = roundClamp(v)
		}
	}
	return out, nil
}

// colourChannels is the number of leading channels that carry colour rather
// than alpha.
func colourChannels(r *Raster) int {
	switch r.Channels {
	case 2:
		return 1
	case 4:
		return 3
	}
	return r.Channels
}

// gaussianSample returns a normal(0,std) sample using Box-Muller
func gaussianSample(rng *rand.Rand, std float64) float64 {
	u1 := rng.Float64()
	if u1 < math.SmallestNonzeroFloat64 {
		u1 = math.SmallestNonzeroFloat64
	}
	u2 := rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2) * std
}

// buildPoissonCDFs precomputes, for every intensity v, the CDF of a Poisson
// distribution with lambda = v/255*amount, truncated once it reaches ~1.
func buildPoissonCDFs(amount float64) [][]float64 {
	cdfs := make([][]float64, 256)
	workers := runtime.GOMAXPROCS(0)
	jobs := make(chan int, 256)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for v := range jobs {
				cdfs[v] = poissonCDF(float64(v) / 255.0 * amount)
			}
		}()
	}
	for v := 0; v < 256; v++ {
		jobs <- v
	}
	close(jobs)
	wg.Wait()
	return cdfs
}

func poissonCDF(lambda float64) []float64 {
	if lambda <= 0 {
		return []float64{1.0}
	}
	limit := max(32, int(math.Ceil(lambda+10*math.Sqrt(lambda)+10)))
	p := math.Exp(-lambda)
	cum := p
	cdf := append(make([]float64, 0, 32), cum)
	for k := 1; cum < 1-1e-12 && k <= limit; k++ {
		p *= lambda / float64(k)
		cum = math.Min(cum+p, 1)
		cdf = append(cdf, cum)
	}
	return cdf
}
