package processing

import (
	"testing"

	"github.com/RMahshie/sigdash/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ramp builds a series whose time is i/10, value is offset+i and smoothed
// value is -(offset+i), so every field can be told apart in assertions.
func ramp(name string, n int, offset float64) models.SeriesData {
	s := models.SeriesData{
		Name:     name,
		Time:     make([]float64, n),
		Value:    make([]float64, n),
		Smoothed: make([]float64, n),
	}
	for i := range n {
		s.Time[i] = float64(i) / 10
		s.Value[i] = offset + float64(i)
		s.Smoothed[i] = -(offset + float64(i))
	}
	return s
}

func TestPrepareView_TruncatesToShortestSeries(t *testing.T) {
	x, y, z := ramp("A", 500, 0), ramp("B", 480, 1000), ramp("C", 510, 2000)

	view, err := PrepareView(x, y, z, ViewOptions{MaxPoints: 5000})
	require.NoError(t, err)

	assert.Equal(t, 480, view.Len())
	assert.Len(t, view.Y, 480)
	assert.Len(t, view.Z, 480)
	assert.Len(t, view.Color, 480)
	assert.Equal(t, 479.0, view.X[479])
	assert.Equal(t, 2479.0, view.Z[479])
	assert.Equal(t, "Sample index", view.ColorLabel)
	assert.Equal(t, "A", view.XLabel)
	assert.Equal(t, "C", view.ZLabel)
}

func TestPrepareView_Downsamples(t *testing.T) {
	x, y, z := ramp("A", 500, 0), ramp("B", 480, 1000), ramp("C", 510, 2000)

	view, err := PrepareView(x, y, z, ViewOptions{MaxPoints: 100})
	require.NoError(t, err)

	require.Equal(t, 100, view.Len())
	assert.Len(t, view.Color, 100)
	// both endpoints of the aligned range are kept
	assert.Equal(t, 0.0, view.X[0])
	assert.Equal(t, 479.0, view.X[99])
	assert.Equal(t, 1479.0, view.Y[99])
	for i := 1; i < view.Len(); i++ {
		assert.Greater(t, view.X[i], view.X[i-1])
	}
	assert.Equal(t, 0.0, view.Color[0])
	assert.Equal(t, 99.0, view.Color[99])
}

func TestPrepareView_MaxPointsOne(t *testing.T) {
	x := ramp("A", 10, 0)

	view, err := PrepareView(x, x, x, ViewOptions{MaxPoints: 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, view.X)
}

func TestPrepareView_UseSmoothed(t *testing.T) {
	x, y, z := ramp("A", 20, 0), ramp("B", 20, 100), ramp("C", 20, 200)

	view, err := PrepareView(x, y, z, ViewOptions{UseSmoothed: true, MaxPoints: 50, ColorBy: ColorRow2Value})
	require.NoError(t, err)

	assert.True(t, view.Smoothed)
	assert.Equal(t, -5.0, view.X[5])
	assert.Equal(t, y.Smoothed, view.Color)
	assert.Equal(t, "Row 2 value", view.ColorLabel)
}

func TestPrepareView_ColorSelectors(t *testing.T) {
	x, y, z := ramp("A", 10, 0), ramp("B", 10, 100), ramp("C", 10, 200)
	y.Time[3] = 99
	z.Time[4] = 77

	tests := []struct {
		selector  ColorSelector
		wantLabel string
		wantAt    int
		want      float64
	}{
		{ColorSampleIndex, "Sample index", 7, 7},
		{ColorRow1Time, "Row 1 time", 5, 0.5},
		{ColorRow2Time, "Row 2 time", 3, 99},
		{ColorRow3Time, "Row 3 time", 4, 77},
		{ColorRow1Value, "Row 1 value", 2, 2},
		{ColorRow2Value, "Row 2 value", 2, 102},
		{ColorRow3Value, "Row 3 value", 2, 202},
		{ColorSelector("Row 9 pressure"), "Sample index", 6, 6},
		{ColorSelector(""), "Sample index", 1, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.selector), func(t *testing.T) {
			view, err := PrepareView(x, y, z, ViewOptions{MaxPoints: 100, ColorBy: tt.selector})
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, view.ColorLabel)
			require.Len(t, view.Color, view.Len())
			assert.Equal(t, tt.want, view.Color[tt.wantAt])
		})
	}
}

func TestPrepareView_InsufficientData(t *testing.T) {
	x, y := ramp("A", 100, 0), ramp("B", 100, 0)
	z := ramp("C", 4, 0)

	_, err := PrepareView(x, y, z, ViewOptions{MaxPoints: 100})
	assert.ErrorIs(t, err, ErrInsufficientData)

	// a short time axis limits the aligned length too
	z = ramp("C", 100, 0)
	z.Time = z.Time[:3]
	_, err = PrepareView(x, y, z, ViewOptions{MaxPoints: 100})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestPrepareView_InvalidMaxPoints(t *testing.T) {
	x := ramp("A", 10, 0)

	_, err := PrepareView(x, x, x, ViewOptions{MaxPoints: 0})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestSampleIndices(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, sampleIndices(3, 10))
	assert.Equal(t, []int{0, 2, 5, 7, 9}, sampleIndices(10, 5))

	idx := sampleIndices(480, 100)
	require.Len(t, idx, 100)
	assert.Equal(t, 0, idx[0])
	assert.Equal(t, 479, idx[99])
}
