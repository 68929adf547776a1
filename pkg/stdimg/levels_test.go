package stdimg

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGamma(t *testing.T) {
	src := makeRandom(6, 6, 3, 1)
	out, err := Gamma(src, 1)
	require.NoError(t, err)
	assert.Equal(t, src, out)

	out, err = Gamma(makeGray([][]uint8{{64}}), 2)
	require.NoError(t, err)
	assert.Equal(t, uint8(128), out.Pix[0])

	for _, g := range []float64{0, -1} {
		_, err = Gamma(src, g)
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	}
}

func TestLevel(t *testing.T) {
	src := makeGray([][]uint8{{20, 50, 100, 150, 200}})
	out, err := Level(src, 50, 150, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 128, 255, 255}, out.Pix)

	_, err = Level(src, 150, 150, 1)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestThreshold(t *testing.T) {
	out, err := Threshold(makeGray([][]uint8{{0, 127, 128, 255}}), 128)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 255, 255}, out.Pix)
	_, err = Threshold(out, 256)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestNormalize(t *testing.T) {
	out := Normalize(makeGray([][]uint8{{50, 100, 150}}))
	assert.Equal(t, []uint8{0, 128, 255}, out.Pix)

	flat := makeSolid(3, 3, 3, 90)
	assert.Equal(t, flat, Normalize(flat))
}

func TestAutoGamma(t *testing.T) {
	out := AutoGamma(makeSolid(4, 4, 3, 64))
	assert.InDelta(t, 128, int(out.Pix[0]), 1)

	black := makeSolid(2, 2, 3, 0)
	assert.Equal(t, black, AutoGamma(black))
}

func TestPosterize(t *testing.T) {
	out, err := Posterize(makeGray([][]uint8{{0, 100, 200, 255}}), 2)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 255, 255}, out.Pix)

	_, err = Posterize(out, 1)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
