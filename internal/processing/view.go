package processing

import (
	"fmt"
	"math"

	"github.com/RMahshie/sigdash/pkg/models"
	"gonum.org/v1/gonum/floats"
)

// MinViewPoints is the smallest aligned length the 3D view accepts
const MinViewPoints = 5

// ColorSelector names the dimension that drives 3D marker color
type ColorSelector string

const (
	ColorSampleIndex ColorSelector = "Sample index"
	ColorRow1Time    ColorSelector = "Row 1 time"
	ColorRow2Time    ColorSelector = "Row 2 time"
	ColorRow3Time    ColorSelector = "Row 3 time"
	ColorRow1Value   ColorSelector = "Row 1 value"
	ColorRow2Value   ColorSelector = "Row 2 value"
	ColorRow3Value   ColorSelector = "Row 3 value"
)

// ColorSelectors lists the recognized selectors in display order
var ColorSelectors = []ColorSelector{
	ColorSampleIndex,
	ColorRow1Time, ColorRow2Time, ColorRow3Time,
	ColorRow1Value, ColorRow2Value, ColorRow3Value,
}

// ViewOptions controls 3D view preparation
type ViewOptions struct {
	UseSmoothed bool
	MaxPoints   int
	ColorBy     ColorSelector
}

// PrepareView aligns three series by position for a 3D scatter. Series are
// assumed to share a sample clock, so they are truncated to the shortest
// length rather than matched by timestamp. Above MaxPoints the points are
// thinned to evenly spaced indices that keep both endpoints.
func PrepareView(x, y, z models.SeriesData, opts ViewOptions) (*models.ViewTriple, error) {
	if opts.MaxPoints < 1 {
		return nil, fmt.Errorf("%w: max points must be >= 1, got %d", ErrInvalidParameter, opts.MaxPoints)
	}

	xs, ys, zs := x.Value, y.Value, z.Value
	if opts.UseSmoothed {
		xs, ys, zs = x.Smoothed, y.Smoothed, z.Smoothed
	}
	tx, ty, tz := x.Time, y.Time, z.Time

	n := min(len(xs), len(ys), len(zs), len(tx), len(ty), len(tz))
	if n < MinViewPoints {
		return nil, fmt.Errorf("%w: 3D view needs at least %d aligned points, got %d", ErrInsufficientData, MinViewPoints, n)
	}

	idx := sampleIndices(n, opts.MaxPoints)
	xs, ys, zs = pick(xs, idx), pick(ys, idx), pick(zs, idx)
	tx, ty, tz = pick(tx, idx), pick(ty, idx), pick(tz, idx)

	view := &models.ViewTriple{
		X:        xs,
		Y:        ys,
		Z:        zs,
		XLabel:   x.Name,
		YLabel:   y.Name,
		ZLabel:   z.Name,
		Smoothed: opts.UseSmoothed,
	}

	switch opts.ColorBy {
	case ColorRow1Time:
		view.Color = tx
	case ColorRow2Time:
		view.Color = ty
	case ColorRow3Time:
		view.Color = tz
	case ColorRow1Value:
		view.Color = clone(xs)
	case ColorRow2Value:
		view.Color = clone(ys)
	case ColorRow3Value:
		view.Color = clone(zs)
	default:
		view.Color = make([]float64, len(idx))
		for i := range view.Color {
			view.Color[i] = float64(i)
		}
		view.ColorLabel = string(ColorSampleIndex)
		return view, nil
	}
	view.ColorLabel = string(opts.ColorBy)

	return view, nil
}

// sampleIndices returns 0..n-1, or limit indices evenly spaced over
// [0, n-1] and rounded to the nearest integer when n exceeds limit.
func sampleIndices(n, limit int) []int {
	idx := make([]int, 0, min(n, limit))
	if n <= limit {
		for i := range n {
			idx = append(idx, i)
		}
		return idx
	}
	if limit == 1 {
		return append(idx, 0)
	}

	for _, p := range floats.Span(make([]float64, limit), 0, float64(n-1)) {
		idx = append(idx, int(math.Round(p)))
	}
	return idx
}

func pick(src []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = src[j]
	}
	return out
}

func clone(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	return out
}
