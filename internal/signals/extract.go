package signals

import (
	"errors"
	"fmt"

	"github.com/RMahshie/sigdash/internal/table"
	"github.com/RMahshie/sigdash/pkg/models"
)

// MinUsableSamples is the smallest series the dashboard will plot. Extract
// itself never enforces it.
const MinUsableSamples = 4

// ErrExtraction matches any *ExtractionError
var ErrExtraction = errors.New("signal extraction failed")

// ExtractionError reports a signal column that is not present in the table
type ExtractionError struct {
	Signal string
	Column string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("signal %q: column %q not found", e.Signal, e.Column)
}

// Is lets errors.Is(err, ErrExtraction) match
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}

// Extract coerces the signal's time and value columns to numbers and keeps
// only the rows where both are valid, preserving order.
func Extract(tbl *table.Table, sig models.Signal) (*models.NumericSeries, error) {
	tcells, ok := tbl.Column(sig.TimeColumn)
	if !ok {
		return nil, &ExtractionError{Signal: sig.Name, Column: sig.TimeColumn}
	}
	vcells, ok := tbl.Column(sig.ValueColumn)
	if !ok {
		return nil, &ExtractionError{Signal: sig.Name, Column: sig.ValueColumn}
	}

	series := &models.NumericSeries{
		Time:  make([]float64, 0, len(tcells)),
		Value: make([]float64, 0, len(vcells)),
	}
	for i := range min(len(tcells), len(vcells)) {
		t, tok := table.ToFloat(tcells[i])
		v, vok := table.ToFloat(vcells[i])
		if tok && vok {
			series.Time = append(series.Time, t)
			series.Value = append(series.Value, v)
		}
	}

	return series, nil
}
