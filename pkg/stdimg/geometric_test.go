package stdimg

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlips(t *testing.T) {
	src := makeGray([][]uint8{
		{1, 2, 3},
		{4, 5, 6},
	})
	assert.Equal(t, []uint8{3, 2, 1, 6, 5, 4}, HFlip(src).Pix)
	assert.Equal(t, []uint8{4, 5, 6, 1, 2, 3}, VFlip(src).Pix)

	rgb := makeRandom(7, 4, 3, 21)
	assert.Equal(t, rgb, HFlip(HFlip(rgb)))
	assert.Equal(t, rgb, VFlip(VFlip(rgb)))
}

func TestDFlipTransposes(t *testing.T) {
	src := makeRandom(5, 3, 4, 8)
	out := DFlip(src)
	require.Equal(t, 3, out.Width)
	require.Equal(t, 5, out.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			for c := 0; c < src.Channels; c++ {
				require.Equal(t, src.At(x, y, c), out.At(y, x, c))
			}
		}
	}
	assert.Equal(t, src, DFlip(out))
}

func TestShrinkAndEnlarge(t *testing.T) {
	src := makeSolid(8, 6, 3, 90)
	small, err := Shrink(src, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 4, small.Width)
	assert.Equal(t, 3, small.Height)
	assert.Equal(t, makeSolid(4, 3, 3, 90), small)

	big, err := Enlarge(makeSolid(3, 2, 4, 17), 2)
	require.NoError(t, err)
	assert.Equal(t, makeSolid(6, 4, 4, 17), big)

	tiny, err := Shrink(makeSolid(3, 3, 1, 5), 0.01)
	require.NoError(t, err)
	assert.Equal(t, 1, tiny.Width)
	assert.Equal(t, 1, tiny.Height)
}

func TestEnlargeKeepsSampleValues(t *testing.T) {
	out, err := Enlarge(makeGray([][]uint8{{0, 200}}), 2)
	require.NoError(t, err)
	require.Equal(t, 4, out.Width)
	for _, v := range out.Pix {
		assert.Contains(t, []uint8{0, 200}, v)
	}
}

func TestNearestScalingPicksRoundedSource(t *testing.T) {
	small, err := Shrink(makeGray([][]uint8{{0, 100, 200, 40}}), 0.5)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 200}, small.Pix)

	big, err := Enlarge(makeGray([][]uint8{{0, 100, 200}}), 2)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 100, 100, 200, 200, 200}, big.Pix)

	big, err = Enlarge(makeGray([][]uint8{{1, 2}, {3, 4}}), 2)
	require.NoError(t, err)
	assert.Equal(t, []uint8{
		1, 2, 2, 2,
		3, 4, 4, 4,
		3, 4, 4, 4,
		3, 4, 4, 4,
	}, big.Pix)

	rgb, _ := NewRaster(3, 1, 3)
	copy(rgb.Pix, []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9})
	small, err = Shrink(rgb, 0.5)
	require.NoError(t, err)
	require.Equal(t, 2, small.Width)
	assert.Equal(t, []uint8{1, 2, 3, 7, 8, 9}, small.Pix)
}

func TestScaleFactorValidation(t *testing.T) {
	src := makeSolid(4, 4, 1, 0)
	for _, f := range []float64{0, -0.5, 1, 1.5} {
		_, err := Shrink(src, f)
		assert.True(t, errors.Is(err, ErrInvalidConfig), "shrink %v", f)
	}
	for _, f := range []float64{0.5, 1} {
		_, err := Enlarge(src, f)
		assert.True(t, errors.Is(err, ErrInvalidConfig), "enlarge %v", f)
	}
}

func TestResize(t *testing.T) {
	src := makeSolid(8, 6, 3, 200)
	out, err := Resize(src, 4, 0, "lanczos3")
	require.NoError(t, err)
	assert.Equal(t, 4, out.Width)
	assert.Equal(t, 3, out.Height)
	for _, v := range out.Pix {
		require.InDelta(t, 200, int(v), 1)
	}

	out, err = Resize(src, 0, 12, "Bilinear")
	require.NoError(t, err)
	assert.Equal(t, 16, out.Width)

	_, err = Resize(src, 0, 0, "nearest")
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	_, err = Resize(src, -1, 4, "nearest")
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	_, err = Resize(src, 4, 4, "sinc")
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestGrayPlaneConversion(t *testing.T) {
	_, err := grayPlane(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	rgba := image.NewNRGBA(image.Rect(2, 3, 4, 4))
	rgba.SetNRGBA(2, 3, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	g, err := grayPlane(rgba)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 1), g.Rect)
	assert.Equal(t, []uint8{200, 0}, g.Pix)
}

func TestInterpolationNamesSorted(t *testing.T) {
	assert.Equal(t, []string{"bicubic", "bilinear", "lanczos2", "lanczos3", "mitchell", "nearest"}, InterpolationNames())
}
