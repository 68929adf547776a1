// Authoritative registry of raster commands.
//
// Every command the engine can run is listed in Commands together with its
// arguments and the function that applies it. Callers (CLI, docs, help text)
// read this single source of truth.

package stdimg

import (
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// ArgSpec describes a single named argument of a command.
type ArgSpec struct {
	Name        string // key passed as name=value
	Type        string // "int", "float", "bool", "string"
	Required    bool
	Default     string // used when the argument is omitted
	Description string
}

// CommandSpec defines a single command, its expected arguments and how it is
// applied.
type CommandSpec struct {
	Name        string
	Category    string
	Args        []ArgSpec
	Usage       string // short usage string
	Description string // brief description
	// apply parses its own parameters, validating all of them before any
	// pixel is touched.
	apply func(src *Raster, p *Params) (*Raster, error)
}

// Command categories, in listing order.
const (
	CategoryLinear    = "linear"
	CategoryNonLinear = "nonlinear"
	CategoryNoise     = "noise"
	CategoryHistogram = "histogram"
	CategoryPoint     = "point"
	CategoryGeometric = "geometric"
)

func noArgs(fn func(*Raster) *Raster) func(*Raster, *Params) (*Raster, error) {
	return func(src *Raster, p *Params) (*Raster, error) {
		if err := p.Err(); err != nil {
			return nil, err
		}
		return fn(src), nil
	}
}

// toneCommand exposes one tone family as a command.
func toneCommand(name, family, description string) CommandSpec {
	args := []ArgSpec{
		{"gmin", "int", false, "0", "minimum output level"},
		{"gmax", "int", false, "255", "maximum output level"},
	}
	usage := name + " [gmin=N] [gmax=N]"
	if f, ok := LookupToneFamily(family); ok && f.UsesAlpha() {
		args = append(args, ArgSpec{"alpha", "float", false, strconv.FormatFloat(f.DefaultAlpha, 'g', -1, 64), "shape parameter"})
		usage += " [alpha=X]"
	}
	return CommandSpec{
		Name:        name,
		Category:    CategoryHistogram,
		Args:        args,
		Usage:       usage,
		Description: description,
		apply: func(src *Raster, p *Params) (*Raster, error) {
			tp := ToneParams{GMin: p.Int("gmin"), GMax: p.Int("gmax")}
			if p.Has("alpha") {
				a := p.Float("alpha")
				tp.Alpha = &a
			}
			if err := p.Err(); err != nil {
				return nil, err
			}
			return ToneMap(src, family, tp)
		},
	}
}

// rosenfeldWindows are the P values the rosenfeld command accepts.
var rosenfeldWindows = []int{1, 2, 4, 8, 16}

// Commands is the authoritative list of commands implemented by the engine.
var Commands = []CommandSpec{
	{
		Name:        "lowpass",
		Category:    CategoryLinear,
		Args:        []ArgSpec{{"mask", "int", false, "1", "mask 1 (box), 2 (centre weighted) or 3 (gaussian)"}},
		Usage:       "lowpass [mask=1..3]",
		Description: "Low-pass smoothing with a predefined 3x3 mask.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			mask := p.Int("mask")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return LowPass(src, mask), nil
		},
	},
	{
		Name:        "gaussian",
		Category:    CategoryLinear,
		Args:        []ArgSpec{{"sigma", "float", false, "1.0", "gaussian sigma"}},
		Usage:       "gaussian [sigma=X]",
		Description: "Gaussian blur with a kernel of radius ceil(3*sigma).",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			sigma := p.Float("sigma")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return GaussianBlur(src, sigma)
		},
	},
	{
		Name:     "unsharp",
		Category: CategoryLinear,
		Args: []ArgSpec{
			{"sigma", "float", false, "1.0", "gaussian sigma of the blur"},
			{"amount", "float", false, "1.0", "detail gain"},
			{"threshold", "float", false, "0", "minimum detail to sharpen"},
		},
		Usage:       "unsharp [sigma=X] [amount=X] [threshold=X]",
		Description: "Unsharp mask.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			sigma, amount, th := p.Float("sigma"), p.Float("amount"), p.Float("threshold")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return UnsharpMask(src, sigma, amount, th)
		},
	},
	{
		Name:     "edgesharp",
		Category: CategoryLinear,
		Args: []ArgSpec{
			{"variant", "int", false, "1", "sharpening mask 1..3"},
			{"optimized", "bool", false, "false", "use the direct neighbour-average path"},
		},
		Usage:       "edgesharp [variant=1..3] [optimized=true]",
		Description: "Edge sharpening with a predefined mask or the optimized path.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			variant, optimized := p.Int("variant"), p.Bool("optimized")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return EdgeSharpen(src, variant, optimized)
		},
	},
	{
		Name:        "laplacian",
		Category:    CategoryLinear,
		Args:        []ArgSpec{{"mask", "int", false, "1", "mask 1 (4-neighbour), 2 (8-neighbour) or 3 (diagonal weighted)"}},
		Usage:       "laplacian [mask=1..3]",
		Description: "Laplacian edge response with a predefined 3x3 mask.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			mask := p.Int("mask")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return Laplacian(src, mask), nil
		},
	},
	{
		Name:        "detail",
		Category:    CategoryLinear,
		Args:        []ArgSpec{{"family", "int", false, "1", "directional family 1 or 2"}},
		Usage:       "detail [family=1|2]",
		Description: "Directional detail extraction, strongest of four rotations.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			family := p.Int("family")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return DetailExtraction(src, family)
		},
	},
	{
		Name:        "lines",
		Category:    CategoryLinear,
		Usage:       "lines",
		Description: "Line identification in four orientations.",
		apply:       noArgs(LineIdentification),
	},
	{
		Name:        "roberts1",
		Category:    CategoryNonLinear,
		Usage:       "roberts1",
		Description: "Roberts cross, sqrt(g1^2 + g2^2).",
		apply:       noArgs(RobertsI),
	},
	{
		Name:        "roberts2",
		Category:    CategoryNonLinear,
		Usage:       "roberts2",
		Description: "Roberts cross, |g1| + |g2|.",
		apply:       noArgs(RobertsII),
	},
	{
		Name:        "sobel",
		Category:    CategoryNonLinear,
		Usage:       "sobel",
		Description: "Sobel gradient magnitude.",
		apply:       noArgs(Sobel),
	},
	{
		Name:        "kirsch",
		Category:    CategoryNonLinear,
		Usage:       "kirsch",
		Description: "Kirsch compass operator, strongest of eight directions.",
		apply:       noArgs(Kirsch),
	},
	{
		Name:        "rosenfeld",
		Category:    CategoryNonLinear,
		Args:        []ArgSpec{{"P", "int", false, "1", "window length 1, 2, 4, 8 or 16"}},
		Usage:       "rosenfeld [P=1|2|4|8|16]",
		Description: "Rosenfeld operator, mean difference of the P samples right and left.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			win := p.Int("P")
			if err := p.Err(); err != nil {
				return nil, err
			}
			if !lo.Contains(rosenfeldWindows, win) {
				return nil, invalidf("rosenfeld P must be one of %v, got %d", rosenfeldWindows, win)
			}
			return Rosenfeld(src, win)
		},
	},
	{
		Name:        "ll",
		Category:    CategoryNonLinear,
		Usage:       "ll",
		Description: "Logarithmic LL operator.",
		apply:       noArgs(LogLinear),
	},
	{
		Name:     "adaptiveMedian",
		Category: CategoryNoise,
		Args: []ArgSpec{
			{"ksize", "int", false, "3", "starting window, odd >= 3"},
			{"smax", "int", false, "7", "maximum window, odd >= ksize"},
		},
		Usage:       "adaptiveMedian [ksize=N] [smax=N]",
		Description: "Adaptive median filter growing the window up to smax.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			start, smax := p.Int("ksize"), p.Int("smax")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return AdaptiveMedianFilter(src, start, smax)
		},
	},
	{
		Name:        "amean",
		Category:    CategoryNoise,
		Args:        []ArgSpec{{"ksize", "int", false, "3", "window size, odd >= 3"}},
		Usage:       "amean [ksize=N]",
		Description: "Arithmetic mean filter.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			k := p.Int("ksize")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return ArithmeticMean(src, k)
		},
	},
	{
		Name:        "median",
		Category:    CategoryNoise,
		Args:        []ArgSpec{{"radius", "int", false, "1", "window radius"}},
		Usage:       "median [radius=N]",
		Description: "Fixed window median filter (sliding-window histogram).",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			r := p.Int("radius")
			if err := p.Err(); err != nil {
				return nil, err
			}
			if r < 0 {
				return nil, invalidf("median radius must be >= 0, got %d", r)
			}
			return MedianFilter(src, r), nil
		},
	},
	{
		Name:        "despeckle",
		Category:    CategoryNoise,
		Usage:       "despeckle",
		Description: "3x3 median.",
		apply:       noArgs(Despeckle),
	},
	{
		Name:     "addNoise",
		Category: CategoryNoise,
		Args: []ArgSpec{
			{"type", "string", false, "GAUSSIAN", "GAUSSIAN, UNIFORM, POISSON or IMPULSE"},
			{"amount", "float", false, "10.0", "stddev, range, photon scale or impulse probability"},
			{"seed", "int", false, "1", "random seed"},
		},
		Usage:       "addNoise [type=KIND] [amount=X] [seed=N]",
		Description: "Add synthetic noise, deterministic for a given seed.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			kind, amount, seed := p.String("type"), p.Float("amount"), p.Int("seed")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return AddNoise(src, kind, amount, int64(seed))
		},
	},
	toneCommand("hpower", "power23", "Power 2/3 histogram equalisation."),
	toneCommand("huniform", "uniform", "Uniform histogram equalisation."),
	toneCommand("hexponent", "exponential", "Exponential final probability density."),
	toneCommand("hrayleigh", "rayleigh", "Rayleigh final probability density."),
	toneCommand("hhyper", "hyperbolic", "Hyperbolic final probability density."),
	{
		Name:        "equalize",
		Category:    CategoryHistogram,
		Usage:       "equalize",
		Description: "Equalize histogram per-channel over the full range.",
		apply:       noArgs(Equalize),
	},
	{
		Name:        "normalize",
		Category:    CategoryHistogram,
		Usage:       "normalize",
		Description: "Stretch per-channel extremes to full [0,255].",
		apply:       noArgs(Normalize),
	},
	{
		Name:        "autoGamma",
		Category:    CategoryHistogram,
		Usage:       "autoGamma",
		Description: "Gamma correction moving mean luminance to mid-grey.",
		apply:       noArgs(AutoGamma),
	},
	{
		Name:        "brightness",
		Category:    CategoryPoint,
		Args:        []ArgSpec{{"value", "int", true, "", "offset in [-255,255]"}},
		Usage:       "brightness value=N",
		Description: "Add a constant to every sample.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			v := p.Int("value")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return Brightness(src, v)
		},
	},
	{
		Name:        "contrast",
		Category:    CategoryPoint,
		Args:        []ArgSpec{{"factor", "float", true, "", "factor in [0.1,3.0]"}},
		Usage:       "contrast factor=X",
		Description: "Linear contrast around mid-grey 128.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			f := p.Float("factor")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return Contrast(src, f)
		},
	},
	{
		Name:        "negative",
		Category:    CategoryPoint,
		Usage:       "negative",
		Description: "Invert every sample.",
		apply:       noArgs(Negative),
	},
	{
		Name:     "rgboffset",
		Category: CategoryPoint,
		Args: []ArgSpec{
			{"r", "int", false, "0", "red offset"},
			{"g", "int", false, "0", "green offset"},
			{"b", "int", false, "0", "blue offset"},
		},
		Usage:       "rgboffset [r=N] [g=N] [b=N]",
		Description: "Add a separate offset to each colour channel.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			r, g, b := p.Int("r"), p.Int("g"), p.Int("b")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return RGBOffset(src, r, g, b)
		},
	},
	{
		Name:        "gamma",
		Category:    CategoryPoint,
		Args:        []ArgSpec{{"gamma", "float", true, "", "gamma value > 0"}},
		Usage:       "gamma gamma=X",
		Description: "Apply gamma correction.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			g := p.Float("gamma")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return Gamma(src, g)
		},
	},
	{
		Name:     "level",
		Category: CategoryPoint,
		Args: []ArgSpec{
			{"black", "int", false, "0", "black point"},
			{"white", "int", false, "255", "white point"},
			{"gamma", "float", false, "1.0", "midtone gamma"},
		},
		Usage:       "level [black=N] [white=N] [gamma=X]",
		Description: "Adjust levels (black/gamma/white).",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			black, white, g := p.Int("black"), p.Int("white"), p.Float("gamma")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return Level(src, black, white, g)
		},
	},
	{
		Name:        "threshold",
		Category:    CategoryPoint,
		Args:        []ArgSpec{{"value", "int", false, "128", "threshold in [0,255]"}},
		Usage:       "threshold [value=N]",
		Description: "Per-channel binary threshold.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			t := p.Int("value")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return Threshold(src, t)
		},
	},
	{
		Name:        "grayscale",
		Category:    CategoryPoint,
		Usage:       "grayscale",
		Description: "Convert to luminance (Rec.709).",
		apply:       noArgs(Grayscale),
	},
	{
		Name:        "posterize",
		Category:    CategoryPoint,
		Args:        []ArgSpec{{"levels", "int", false, "4", "levels per channel, 2..256"}},
		Usage:       "posterize [levels=N]",
		Description: "Reduce every channel to evenly spaced levels.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			n := p.Int("levels")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return Posterize(src, n)
		},
	},
	{
		Name:     "adaptiveThreshold",
		Category: CategoryPoint,
		Args: []ArgSpec{
			{"window", "int", false, "15", "odd window size"},
			{"offset", "float", false, "0", "subtracted from the local mean"},
		},
		Usage:       "adaptiveThreshold [window=N] [offset=X]",
		Description: "Local mean threshold per channel (bilevel output).",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			w, off := p.Int("window"), p.Float("offset")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return AdaptiveThreshold(src, w, off)
		},
	},
	{
		Name:        "hflip",
		Category:    CategoryGeometric,
		Usage:       "hflip",
		Description: "Horizontal flip.",
		apply:       noArgs(HFlip),
	},
	{
		Name:        "vflip",
		Category:    CategoryGeometric,
		Usage:       "vflip",
		Description: "Vertical flip.",
		apply:       noArgs(VFlip),
	},
	{
		Name:        "dflip",
		Category:    CategoryGeometric,
		Usage:       "dflip",
		Description: "Diagonal flip (transpose).",
		apply:       noArgs(DFlip),
	},
	{
		Name:        "shrink",
		Category:    CategoryGeometric,
		Args:        []ArgSpec{{"factor", "float", true, "", "scale factor in (0,1)"}},
		Usage:       "shrink factor=X",
		Description: "Nearest-neighbour downscale.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			f := p.Float("factor")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return Shrink(src, f)
		},
	},
	{
		Name:        "enlarge",
		Category:    CategoryGeometric,
		Args:        []ArgSpec{{"factor", "float", true, "", "scale factor > 1"}},
		Usage:       "enlarge factor=X",
		Description: "Nearest-neighbour upscale.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			f := p.Float("factor")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return Enlarge(src, f)
		},
	},
	{
		Name:     "resize",
		Category: CategoryGeometric,
		Args: []ArgSpec{
			{"width", "int", false, "0", "output width, 0 keeps the aspect ratio"},
			{"height", "int", false, "0", "output height, 0 keeps the aspect ratio"},
			{"filter", "string", false, "lanczos3", "nearest, bilinear, bicubic, mitchell, lanczos2 or lanczos3"},
		},
		Usage:       "resize [width=N] [height=N] [filter=NAME]",
		Description: "Resample to an explicit size.",
		apply: func(src *Raster, p *Params) (*Raster, error) {
			w, h, f := p.Int("width"), p.Int("height"), p.String("filter")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return Resize(src, w, h, f)
		},
	},
}

// Lookup returns the command registered under name.
func Lookup(name string) (*CommandSpec, bool) {
	for i := range Commands {
		if Commands[i].Name == name {
			return &Commands[i], true
		}
	}
	return nil, false
}

// Names lists every command name in sorted order.
func Names() []string {
	names := lo.Map(Commands, func(c CommandSpec, _ int) string { return c.Name })
	sort.Strings(names)
	return names
}

// ByCategory groups the registry by category, preserving registry order
// within each group.
func ByCategory() map[string][]CommandSpec {
	return lo.GroupBy(Commands, func(c CommandSpec) string { return c.Category })
}

// Params holds the name=value arguments of one command invocation. Accessors
// fall back to the ArgSpec default and record the first parse failure, which
// Err reports.
type Params struct {
	spec   *CommandSpec
	values map[string]string
	err    error
}

// NewParams checks raw against the command's arguments: unknown names and
// missing required arguments are rejected.
func NewParams(spec *CommandSpec, raw map[string]string) (*Params, error) {
	for k := range raw {
		if !lo.ContainsBy(spec.Args, func(a ArgSpec) bool { return a.Name == k }) {
			return nil, invalidf("%s: unknown parameter %q", spec.Name, k)
		}
	}
	for _, a := range spec.Args {
		if _, ok := raw[a.Name]; a.Required && !ok {
			return nil, invalidf("%s: missing required parameter %q", spec.Name, a.Name)
		}
	}
	return &Params{spec: spec, values: raw}, nil
}

// Err returns the first error met by an accessor.
func (p *Params) Err() error { return p.err }

// Has reports whether name was given explicitly.
func (p *Params) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Known reports whether the command declares an argument called name.
func (p *Params) Known(name string) bool {
	_, ok := p.arg(name)
	return ok
}

func (p *Params) arg(name string) (ArgSpec, bool) {
	return lo.Find(p.spec.Args, func(a ArgSpec) bool { return a.Name == name })
}

func (p *Params) raw(name string) string {
	if v, ok := p.values[name]; ok {
		return strings.TrimSpace(v)
	}
	a, _ := p.arg(name)
	return a.Default
}

func (p *Params) fail(name, v, kind string) {
	if p.err == nil {
		p.err = invalidf("%s: parameter %s=%q is not a valid %s", p.spec.Name, name, v, kind)
	}
}

// Int parses name as an integer.
func (p *Params) Int(name string) int {
	v := p.raw(name)
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(name, v, "integer")
	}
	return n
}

// Float parses name as a floating point number.
func (p *Params) Float(name string) float64 {
	v := p.raw(name)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(name, v, "number")
	}
	return f
}

// Bool parses name as a boolean. An explicit empty value means true so
// "optimized=" behaves like a flag.
func (p *Params) Bool(name string) bool {
	if p.Has(name) && p.raw(name) == "" {
		return true
	}
	v := p.raw(name)
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(name, v, "boolean")
	}
	return b
}

// String returns name unparsed.
func (p *Params) String(name string) string {
	return p.raw(name)
}
