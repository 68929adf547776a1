package stdimg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacteristicsConstantImage(t *testing.T) {
	c, err := ComputeCharacteristics(makeSolid(3, 3, 1, 7), 0)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, c.Mean, 1e-12)
	assert.InDelta(t, 0.0, c.Variance, 1e-12)
	assert.InDelta(t, 0.0, c.Stdev, 1e-12)
	assert.InDelta(t, 0.0, c.VarCoeffI, 1e-12)
	assert.Equal(t, 0.0, c.Asymmetry)
	assert.Equal(t, 0.0, c.Flattening)
	assert.InDelta(t, 1.0, c.VarCoeffII, 1e-12)
	assert.InDelta(t, 0.0, c.Entropy, 1e-12)
}

func TestCharacteristicsBlackImage(t *testing.T) {
	c, err := ComputeCharacteristics(makeSolid(4, 2, 3, 0), 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Mean)
	assert.Equal(t, 0.0, c.VarCoeffI)
}

func TestCharacteristicsTwoLevels(t *testing.T) {
	c, err := ComputeCharacteristics(makeGray([][]uint8{{0, 255}}), 0)
	require.NoError(t, err)
	assert.InDelta(t, 127.5, c.Mean, 1e-9)
	assert.InDelta(t, 127.5*127.5, c.Variance, 1e-6)
	assert.InDelta(t, 127.5, c.Stdev, 1e-9)
	assert.InDelta(t, 1.0, c.VarCoeffI, 1e-9)
	assert.InDelta(t, 0.0, c.Asymmetry, 1e-9)
	assert.InDelta(t, -2.0, c.Flattening, 1e-9)
	assert.InDelta(t, 0.5, c.VarCoeffII, 1e-12)
	assert.InDelta(t, 1.0, c.Entropy, 1e-12)
}

func TestCharacteristicsSkewed(t *testing.T) {
	// Bernoulli with p = 1/4 scaled by 3
	c, err := ComputeCharacteristics(makeGray([][]uint8{{0, 0, 0, 3}}), 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, c.Mean, 1e-12)
	assert.InDelta(t, 1.6875, c.Variance, 1e-9)
	assert.InDelta(t, 1.1547005, c.Asymmetry, 1e-6)
	assert.InDelta(t, -2.0/3.0, c.Flattening, 1e-9)
	assert.InDelta(t, 0.625, c.VarCoeffII, 1e-12)
	assert.InDelta(t, 0.8112781, c.Entropy, 1e-6)
}

func TestCharacteristicsFromEmptyHistogram(t *testing.T) {
	assert.Equal(t, Characteristics{}, CharacteristicsFromHistogram(Histogram{}, 0))
}

func TestCharacteristicsFields(t *testing.T) {
	c := Characteristics{Mean: 1, Entropy: 8}
	f := c.Fields()
	require.Len(t, f, 8)
	assert.Equal(t, "cmean", f[0].Name)
	assert.Equal(t, 1.0, f[0].Value)
	assert.Equal(t, "centropy", f[7].Name)
	assert.Equal(t, 8.0, f[7].Value)
}
