package stdimg

import (
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdaptiveMedianValidation(t *testing.T) {
	bad := [][2]int{{1, 7}, {2, 7}, {4, 7}, {3, 4}, {5, 3}, {3, 8}}
	for _, c := range bad {
		_, err := NewAdaptiveMedian(c[0], c[1])
		assert.True(t, errors.Is(err, ErrInvalidConfig), "start=%d max=%d", c[0], c[1])
	}
	for _, c := range [][2]int{{3, 3}, {3, 7}, {5, 9}} {
		_, err := NewAdaptiveMedian(c[0], c[1])
		assert.NoError(t, err, "start=%d max=%d", c[0], c[1])
	}
}

func TestAdaptiveMedianRejectsBeforeProcessing(t *testing.T) {
	out, err := AdaptiveMedianFilter(makeSolid(3, 3, 1, 1), 3, 2)
	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestAdaptiveMedianFlatImage(t *testing.T) {
	src := makeSolid(6, 5, 3, 42)
	for _, max := range []int{3, 5, 11} {
		out, err := AdaptiveMedianFilter(src, 3, max)
		require.NoError(t, err)
		assert.Equal(t, src, out, "max=%d", max)
	}
}

func TestAdaptiveMedianRejectsHotPixelInTexture(t *testing.T) {
	src := makeGray([][]uint8{
		{5, 10, 10},
		{10, 255, 10},
		{12, 12, 12},
	})
	f, err := NewAdaptiveMedian(3, 7)
	require.NoError(t, err)
	v, size := f.filterSample(src, 1, 1, 0, nil)
	assert.Equal(t, uint8(10), v)
	assert.Equal(t, 3, size)
}

func TestAdaptiveMedianKeepsPixelInsideRange(t *testing.T) {
	src := makeGray([][]uint8{
		{5, 10, 10},
		{10, 11, 10},
		{12, 12, 12},
	})
	f, err := NewAdaptiveMedian(3, 7)
	require.NoError(t, err)
	v, _ := f.filterSample(src, 1, 1, 0, nil)
	assert.Equal(t, uint8(11), v)
}

func TestAdaptiveMedianFallsBackToOriginal(t *testing.T) {
	// every window is 10 except the centre: the median never leaves the minimum
	src := makeSolid(9, 9, 1, 10)
	src.Set(4, 4, 0, 255)
	f, err := NewAdaptiveMedian(3, 7)
	require.NoError(t, err)
	v, size := f.filterSample(src, 4, 4, 0, nil)
	assert.Equal(t, uint8(255), v)
	assert.Equal(t, 7, size)
}

func TestAdaptiveMedianWindowNeverExceedsMax(t *testing.T) {
	src := makeRandom(12, 10, 2, 77)
	f, err := NewAdaptiveMedian(3, 5)
	require.NoError(t, err)
	out := f.Apply(src)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			for c := 0; c < src.Channels; c++ {
				v, size := f.filterSample(src, x, y, c, nil)
				require.LessOrEqual(t, size, f.Max)
				require.Equal(t, v, out.At(x, y, c))
			}
		}
	}
}

func TestAdaptiveMedianStep(t *testing.T) {
	f := &AdaptiveMedian{Start: 3, Max: 5}
	grow := f.step(windowState{size: 3}, windowStats{min: 10, med: 10, max: 255}, 255)
	assert.Equal(t, windowState{size: 5}, grow)

	stop := f.step(windowState{size: 5}, windowStats{min: 10, med: 10, max: 255}, 255)
	assert.Equal(t, windowState{size: 5, decided: true, value: 255}, stop)

	median := f.step(windowState{size: 3}, windowStats{min: 0, med: 20, max: 255}, 0)
	assert.Equal(t, windowState{size: 3, decided: true, value: 20}, median)

	keep := f.step(windowState{size: 3}, windowStats{min: 0, med: 20, max: 255}, 30)
	assert.Equal(t, windowState{size: 3, decided: true, value: 30}, keep)
}

func TestSelectKthMatchesSort(t *testing.T) {
	src := makeRandom(49, 1, 1, 5)
	for k := 0; k < len(src.Pix); k++ {
		v := make([]int, len(src.Pix))
		for i, p := range src.Pix {
			v[i] = int(p)
		}
		sorted := append([]int(nil), v...)
		sort.Ints(sorted)
		require.Equal(t, sorted[k], selectKth(v, k), "k=%d", k)
	}
}

func BenchmarkAdaptiveMedian(b *testing.B) {
	src := makeRandom(256, 256, 1, 1)
	f, _ := NewAdaptiveMedian(3, 7)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Apply(src)
	}
}
