package stdimg

import (
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requiredParams supplies the arguments some commands cannot default.
var requiredParams = map[string]map[string]string{
	"brightness": {"value": "10"},
	"contrast":   {"factor": "1.5"},
	"gamma":      {"gamma": "2.2"},
	"shrink":     {"factor": "0.5"},
	"enlarge":    {"factor": "2"},
	"resize":     {"width": "3"},
}

func TestEveryCommandRunsWithDefaults(t *testing.T) {
	src := makeRandom(6, 4, 3, 99)
	for _, cmd := range Commands {
		t.Run(cmd.Name, func(t *testing.T) {
			out, err := Apply(src, cmd.Name, requiredParams[cmd.Name])
			require.NoError(t, err)
			require.NotNil(t, out)
			assert.Equal(t, src.Channels, out.Channels)
			switch cmd.Name {
			case "dflip":
				assert.Equal(t, [2]int{4, 6}, [2]int{out.Width, out.Height})
			case "shrink", "resize":
				assert.Equal(t, [2]int{3, 2}, [2]int{out.Width, out.Height})
			case "enlarge":
				assert.Equal(t, [2]int{12, 8}, [2]int{out.Width, out.Height})
			default:
				assert.True(t, out.SameShape(src))
			}
		})
	}
}

func TestCommandsDeclareUsableMetadata(t *testing.T) {
	seen := map[string]bool{}
	categories := []string{CategoryLinear, CategoryNonLinear, CategoryNoise, CategoryHistogram, CategoryPoint, CategoryGeometric}
	for _, cmd := range Commands {
		assert.False(t, seen[cmd.Name], "duplicate command %s", cmd.Name)
		seen[cmd.Name] = true
		assert.NotEmpty(t, cmd.Usage, cmd.Name)
		assert.NotEmpty(t, cmd.Description, cmd.Name)
		assert.Contains(t, categories, cmd.Category, cmd.Name)
		for _, a := range cmd.Args {
			assert.Contains(t, []string{"int", "float", "bool", "string"}, a.Type, "%s.%s", cmd.Name, a.Name)
			if a.Required {
				assert.Empty(t, a.Default, "%s.%s", cmd.Name, a.Name)
			}
		}
	}
}

func TestNamesAndLookup(t *testing.T) {
	names := Names()
	assert.Len(t, names, len(Commands))
	assert.True(t, sort.StringsAreSorted(names))
	for _, n := range names {
		spec, ok := Lookup(n)
		require.True(t, ok, n)
		assert.Equal(t, n, spec.Name)
	}
	_, ok := Lookup("blur")
	assert.False(t, ok)
}

func TestByCategory(t *testing.T) {
	groups := ByCategory()
	total := 0
	for cat, cmds := range groups {
		for _, c := range cmds {
			assert.Equal(t, cat, c.Category)
		}
		total += len(cmds)
	}
	assert.Equal(t, len(Commands), total)
	require.NotEmpty(t, groups[CategoryNonLinear])
	assert.Equal(t, "roberts1", groups[CategoryNonLinear][0].Name)
}

func TestApplyRejectsBadInput(t *testing.T) {
	src := makeSolid(4, 4, 1, 50)
	cases := []struct {
		name   string
		cmd    string
		params map[string]string
	}{
		{"unknownParam", "lowpass", map[string]string{"radius": "2"}},
		{"badInt", "lowpass", map[string]string{"mask": "abc"}},
		{"badFloat", "gaussian", map[string]string{"sigma": "wide"}},
		{"badBool", "edgesharp", map[string]string{"optimized": "maybe"}},
		{"missingRequired", "brightness", nil},
		{"rosenfeldWindow", "rosenfeld", map[string]string{"P": "3"}},
		{"edgesharpVariant", "edgesharp", map[string]string{"variant": "5"}},
		{"negativeRadius", "median", map[string]string{"radius": "-1"}},
		{"toneRange", "huniform", map[string]string{"gmin": "200", "gmax": "100"}},
		{"alphaOnUniform", "huniform", map[string]string{"alpha": "2"}},
		{"zeroExponentAlpha", "hexponent", map[string]string{"alpha": "0"}},
		{"zeroRayleighAlpha", "hrayleigh", map[string]string{"alpha": "0"}},
		{"negativeAlpha", "hrayleigh", map[string]string{"alpha": "-3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Apply(src, tc.cmd, tc.params)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestApplyUnknownCommand(t *testing.T) {
	_, err := Apply(makeSolid(2, 2, 1, 0), "blur", nil)
	assert.True(t, errors.Is(err, ErrUnknownCommand))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), `"blur"`)
}

func TestApplyMatchesDirectCalls(t *testing.T) {
	src := makeRandom(9, 7, 3, 5)

	got, err := Apply(src, "rosenfeld", map[string]string{"P": "4"})
	require.NoError(t, err)
	want, err := Rosenfeld(src, 4)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = Apply(src, "edgesharp", map[string]string{"optimized": ""})
	require.NoError(t, err)
	assert.Equal(t, SharpenOptimized(src), got)

	got, err = Apply(src, "hrayleigh", map[string]string{"gmin": "10", "gmax": "240"})
	require.NoError(t, err)
	want, err = ToneMap(src, "rayleigh", ToneParams{GMin: 10, GMax: 240})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = Apply(src, "addNoise", map[string]string{"type": "impulse", "amount": " 0.2 ", "seed": "3"})
	require.NoError(t, err)
	want, err = AddNoise(src, NoiseImpulse, 0.2, 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestToneCommandsExposeAlphaOnlyWhenUsed(t *testing.T) {
	for name, wantAlpha := range map[string]bool{
		"huniform":  false,
		"hpower":    false,
		"hhyper":    false,
		"hexponent": true,
		"hrayleigh": true,
	} {
		spec, ok := Lookup(name)
		require.True(t, ok, name)
		p, err := NewParams(spec, nil)
		require.NoError(t, err)
		assert.Equal(t, wantAlpha, p.Known("alpha"), name)
	}
}

func TestParamsAccessors(t *testing.T) {
	spec, _ := Lookup("level")
	p, err := NewParams(spec, map[string]string{"black": "10"})
	require.NoError(t, err)
	assert.True(t, p.Has("black"))
	assert.False(t, p.Has("white"))
	assert.Equal(t, 10, p.Int("black"))
	assert.Equal(t, 255, p.Int("white"))
	assert.Equal(t, 1.0, p.Float("gamma"))
	require.NoError(t, p.Err())

	p, err = NewParams(spec, map[string]string{"black": "x", "white": "y"})
	require.NoError(t, err)
	p.Int("black")
	p.Int("white")
	require.Error(t, p.Err())
	assert.Contains(t, p.Err().Error(), "black")
}
