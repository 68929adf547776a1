package stdimg

import (
	"math"
	"sort"

	"github.com/chewxy/math32"
	"github.com/samber/lo"
)

// ToneParams bounds the output range of a tone mapping. Alpha is the shape
// parameter of the exponential and Rayleigh families; nil selects the family
// default, anything else must be positive.
type ToneParams struct {
	GMin  int
	GMax  int
	Alpha *float64
}

// alpha is the resolved shape parameter, valid once mapping has run.
func (p ToneParams) alpha() float32 {
	if p.Alpha == nil {
		return 0
	}
	return float32(*p.Alpha)
}

// ToneFamily turns a CDF value into a target intensity by inverting a target
// distribution.
type ToneFamily struct {
	Name         string
	Description  string
	DefaultAlpha float64
	// build validates family specific parameters and returns the mapping.
	build func(p ToneParams) (func(float32) float32, error)
}

// UsesAlpha reports whether the family has a shape parameter.
func (f ToneFamily) UsesAlpha() bool { return f.DefaultAlpha > 0 }

var toneFamilies = map[string]ToneFamily{
	"uniform": {
		Name:        "uniform",
		Description: "gmin + (gmax-gmin)*F",
		build: func(p ToneParams) (func(float32) float32, error) {
			gmin, gmax := float32(p.GMin), float32(p.GMax)
			return func(f float32) float32 { return gmin + (gmax-gmin)*f }, nil
		},
	},
	"exponential": {
		Name:         "exponential",
		Description:  "gmin - ln(1-F)/alpha",
		DefaultAlpha: 1.0,
		build: func(p ToneParams) (func(float32) float32, error) {
			gmin, a := float32(p.GMin), p.alpha()
			return func(f float32) float32 { return gmin - math32.Log(1-f)/a }, nil
		},
	},
	"rayleigh": {
		Name:         "rayleigh",
		Description:  "gmin + sqrt(2*alpha^2*ln(1/(1-F)))",
		DefaultAlpha: 45.0,
		build: func(p ToneParams) (func(float32) float32, error) {
			gmin, a := float32(p.GMin), p.alpha()
			return func(f float32) float32 {
				return gmin + math32.Sqrt(2*a*a*math32.Log(1/(1-f)))
			}, nil
		},
	},
	"power23": {
		Name:        "power23",
		Description: "(cbrt(gmin) + (cbrt(gmax)-cbrt(gmin))*F)^3",
		build: func(p ToneParams) (func(float32) float32, error) {
			base := math32.Pow(float32(p.GMin), 1.0/3.0)
			top := math32.Pow(float32(p.GMax), 1.0/3.0)
			return func(f float32) float32 {
				return math32.Pow(base+(top-base)*f, 3)
			}, nil
		},
	},
	"hyperbolic": {
		Name:        "hyperbolic",
		Description: "gmin*(gmax/gmin)^F, gmin raised to 1 when 0",
		build: func(p ToneParams) (func(float32) float32, error) {
			base := float32(p.GMin)
			if base < 1 {
				base = 1
			}
			ratio := float32(p.GMax) / base
			return func(f float32) float32 { return base * math32.Pow(ratio, f) }, nil
		},
	},
}

// LookupToneFamily returns the family registered under name.
func LookupToneFamily(name string) (ToneFamily, bool) {
	f, ok := toneFamilies[name]
	return f, ok
}

// ToneFamilyNames lists the registered families in sorted order.
func ToneFamilyNames() []string {
	names := lo.Keys(toneFamilies)
	sort.Strings(names)
	return names
}

// mapping validates p against the family and returns the CDF transform.
func (f ToneFamily) mapping(p ToneParams) (func(float32) float32, error) {
	if p.GMin < 0 || p.GMax > 255 || p.GMin > p.GMax {
		return nil, invalidf("%s: output range expects 0 <= gmin <= gmax <= 255, got [%d,%d]", f.Name, p.GMin, p.GMax)
	}
	if f.UsesAlpha() {
		a := f.DefaultAlpha
		if p.Alpha != nil {
			a = *p.Alpha
		}
		if !(a > 0) || math.IsInf(a, 0) {
			return nil, invalidf("%s: alpha must be a positive number, got %v", f.Name, a)
		}
		p.Alpha = &a
	}
	return f.build(p)
}

// ToneMap equalises every channel of src towards the named target
// distribution. Each channel gets its own histogram, CDF and LUT.
func ToneMap(src *Raster, family string, p ToneParams) (*Raster, error) {
	f, ok := LookupToneFamily(family)
	if !ok {
		return nil, invalidf("unknown tone family %q", family)
	}
	fn, err := f.mapping(p)
	if err != nil {
		return nil, err
	}
	total := src.PixelCount()
	if total < 1 {
		total = 1
	}
	out := NewRasterLike(src)
	for c := 0; c < src.Channels; c++ {
		h, err := ComputeHistogram(src, c)
		if err != nil {
			return nil, err
		}
		lut := BuildLUT(BuildCDF(h, total), fn)
		lut.apply(out, src, c)
	}
	return out, nil
}

// Power23 is ToneMap with the power-2/3 family.
func Power23(src *Raster, gmin, gmax int) (*Raster, error) {
	return ToneMap(src, "power23", ToneParams{GMin: gmin, GMax: gmax})
}

// Equalize stretches every channel over the full range with the uniform
// family.
func Equalize(src *Raster) *Raster {
	out, _ := ToneMap(src, "uniform", ToneParams{GMin: 0, GMax: 255})
	return out
}
