package processing

import (
	"fmt"
	"math"

	"github.com/RMahshie/sigdash/pkg/models"
	"gonum.org/v1/gonum/floats"
)

// Histogram counts values into bins of equal width spanning [min, max]. The
// last bin is closed on the right. A constant input spans [v-0.5, v+0.5] and
// an empty one spans [0, 1].
func Histogram(values []float64, bins int) (models.Histogram, error) {
	if bins < 1 {
		return models.Histogram{}, fmt.Errorf("%w: histogram bins must be >= 1, got %d", ErrInvalidParameter, bins)
	}

	lo, hi := 0.0, 1.0
	if len(values) > 0 {
		lo, hi = floats.Min(values), floats.Max(values)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	h := models.Histogram{
		Counts:  make([]int, bins),
		Edges:   binEdges(lo, hi, bins),
		Centers: make([]float64, bins),
	}

	// halved operands keep the span finite when hi-lo overflows
	half := hi/2 - lo/2
	for _, v := range values {
		if math.IsNaN(v) || v < lo || v > hi {
			continue
		}
		i := int(float64(bins) * ((v/2 - lo/2) / half))
		i = max(0, min(i, bins-1))
		// the division can land one bin off right at an edge
		if i > 0 && v < h.Edges[i] {
			i--
		} else if i < bins-1 && v >= h.Edges[i+1] {
			i++
		}
		h.Counts[i]++
	}

	for i := range h.Centers {
		h.Centers[i] = h.Edges[i]/2 + h.Edges[i+1]/2
	}

	return h, nil
}

// binEdges returns bins+1 evenly spaced edges from lo to hi. Ranges wider
// than the largest float64 are interpolated per edge so every edge stays
// finite.
func binEdges(lo, hi float64, bins int) []float64 {
	edges := make([]float64, bins+1)
	if !math.IsInf(hi-lo, 0) {
		return floats.Span(edges, lo, hi)
	}

	for i := range edges {
		t := float64(i) / float64(bins)
		edges[i] = lo*(1-t) + hi*t
	}
	edges[0], edges[bins] = lo, hi
	return edges
}
