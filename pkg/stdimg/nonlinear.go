package stdimg

import (
	"math"
)

// RobertsI is the Roberts cross gradient magnitude sqrt(g1² + g2²).
func RobertsI(src *Raster) *Raster {
	return mapSamples(src, func(x, y, c int) uint8 {
		g1, g2 := robertsCross(src, x, y, c)
		return roundClamp(math.Sqrt(float64(g1*g1 + g2*g2)))
	})
}

// RobertsII is the cheaper Roberts cross variant |g1| + |g2|.
func RobertsII(src *Raster) *Raster {
	return mapSamples(src, func(x, y, c int) uint8 {
		g1, g2 := robertsCross(src, x, y, c)
		return clampSample(absInt(g1) + absInt(g2))
	})
}

func robertsCross(src *Raster, x, y, c int) (int, int) {
	g1 := int(src.At(x, y, c)) - int(src.At(x+1, y+1, c))
	g2 := int(src.At(x, y+1, c)) - int(src.At(x+1, y, c))
	return g1, g2
}

// Sobel returns the Sobel gradient magnitude per channel.
func Sobel(src *Raster) *Raster {
	return mapSamples(src, func(x, y, c int) uint8 {
		var n [8]int
		neighbours(src, x, y, c, &n)
		gx := (n[2] + 2*n[3] + n[4]) - (n[0] + 2*n[7] + n[6])
		gy := (n[0] + 2*n[1] + n[2]) - (n[6] + 2*n[5] + n[4])
		return roundClamp(math.Sqrt(float64(gx*gx + gy*gy)))
	})
}

// Kirsch is the 8-direction compass edge detector.
func Kirsch(src *Raster) *Raster {
	return DirectionalMax(src, kirschKernels)
}

// Rosenfeld compares the mean of the p samples starting at the pixel and
// extending right with the mean of the p samples to its left. Any p > 0 is
// accepted here; the command layer narrows it to powers of two up to 16.
func Rosenfeld(src *Raster, p int) (*Raster, error) {
	if p <= 0 {
		return nil, invalidf("rosenfeld window P must be > 0, got %d", p)
	}
	return mapSamples(src, func(x, y, c int) uint8 {
		positive, negative := 0, 0
		for i := 0; i < p; i++ {
			positive += int(src.At(x+i, y, c))
		}
		for i := 1; i <= p; i++ {
			negative += int(src.At(x-i, y, c))
		}
		return clampSample(absInt(positive-negative) / p)
	}), nil
}

// LogLinear is the LL operator: a quarter of |ln((c+1)⁴ / Π(n+1))| over the
// four direct neighbours, scaled by 40 and capped at 255.
func LogLinear(src *Raster) *Raster {
	return mapSamples(src, func(x, y, c int) uint8 {
		var n [8]int
		neighbours(src, x, y, c, &n)
		centre := float64(src.At(x, y, c))
		num := math.Pow(centre+1, 4)
		den := float64(n[1]+1) * float64(n[3]+1) * float64(n[5]+1) * float64(n[7]+1)
		response := 0.25 * math.Abs(math.Log(num/math.Max(den, 1)))
		return roundClamp(math.Min(response*40, 255))
	})
}

// neighbours fills n with the 8-neighbourhood in ring order.
func neighbours(src *Raster, x, y, c int, n *[8]int) {
	for i, o := range ring {
		n[i] = int(src.At(x+o[0], y+o[1], c))
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
