package processing

import (
	"errors"
	"fmt"

	"github.com/RMahshie/sigdash/internal/signals"
	"github.com/RMahshie/sigdash/internal/table"
	"github.com/RMahshie/sigdash/pkg/models"
	"github.com/rs/zerolog/log"
)

// DashboardRows is the number of signals compared side by side
const DashboardRows = 3

// Settings are the defaults applied to request parameters left unset
type Settings struct {
	Window    int
	Mode      Mode
	Bins      int
	MaxPoints int
}

// DefaultSettings mirrors the dashboard's initial control values
func DefaultSettings() Settings {
	return Settings{
		Window:    20,
		Mode:      Centered,
		Bins:      30,
		MaxPoints: 5000,
	}
}

// AnalysisOptions is a fully resolved dashboard request
type AnalysisOptions struct {
	Rows      []string
	Window    int
	Mode      Mode
	Bins      int
	Include3D bool
	View      ViewOptions
}

// Resolve fills unset request parameters from the settings and validates them
func (s Settings) Resolve(p models.AnalysisParams) (AnalysisOptions, error) {
	opts := AnalysisOptions{
		Rows:      p.Rows,
		Window:    p.Window,
		Bins:      p.Bins,
		Include3D: p.Include3D,
		View: ViewOptions{
			UseSmoothed: p.UseSmoothed,
			MaxPoints:   p.MaxPoints,
			ColorBy:     ColorSelector(p.ColorBy),
		},
	}

	if len(opts.Rows) != DashboardRows {
		return AnalysisOptions{}, fmt.Errorf("%w: exactly %d signals required, got %d", ErrInvalidParameter, DashboardRows, len(opts.Rows))
	}
	if opts.Window == 0 {
		opts.Window = s.Window
	}
	if opts.Bins == 0 {
		opts.Bins = s.Bins
	}
	if opts.View.MaxPoints == 0 {
		opts.View.MaxPoints = s.MaxPoints
	}
	if opts.View.ColorBy == "" {
		opts.View.ColorBy = ColorSampleIndex
	}

	mode := p.Mode
	if mode == "" {
		mode = string(s.Mode)
	}
	m, err := ParseMode(mode)
	if err != nil {
		return AnalysisOptions{}, err
	}
	opts.Mode = m

	if opts.Window < 1 {
		return AnalysisOptions{}, fmt.Errorf("%w: moving average window must be >= 1, got %d", ErrInvalidParameter, opts.Window)
	}
	if opts.Bins < 1 {
		return AnalysisOptions{}, fmt.Errorf("%w: histogram bins must be >= 1, got %d", ErrInvalidParameter, opts.Bins)
	}
	if opts.Include3D && opts.View.MaxPoints < 1 {
		return AnalysisOptions{}, fmt.Errorf("%w: max points must be >= 1, got %d", ErrInvalidParameter, opts.View.MaxPoints)
	}

	return opts, nil
}

// BuildSeries extracts one signal and computes its moving average
func BuildSeries(tbl *table.Table, sig models.Signal, window int, mode Mode) (models.SeriesData, error) {
	series, err := signals.Extract(tbl, sig)
	if err != nil {
		return models.SeriesData{}, err
	}
	if series.Len() < signals.MinUsableSamples {
		return models.SeriesData{}, fmt.Errorf("%w: signal %q has too few valid samples (%d)", ErrInsufficientData, sig.Name, series.Len())
	}

	smoothed, err := MovingAverage(series.Value, window, mode)
	if err != nil {
		return models.SeriesData{}, err
	}

	return models.SeriesData{
		Name:     sig.Name,
		Time:     series.Time,
		Value:    series.Value,
		Smoothed: smoothed,
	}, nil
}

// Analyze builds the dashboard panels for the three requested signals. Any
// panel failure aborts the request; a 3D view failure is reported in the
// result instead so the panels still reach the caller.
func Analyze(tbl *table.Table, catalog signals.Catalog, opts AnalysisOptions) (*models.DashboardResult, error) {
	if len(opts.Rows) != DashboardRows {
		return nil, fmt.Errorf("%w: exactly %d signals required, got %d", ErrInvalidParameter, DashboardRows, len(opts.Rows))
	}

	result := &models.DashboardResult{Panels: make([]models.SignalPanel, 0, DashboardRows)}
	for _, name := range opts.Rows {
		sig, ok := catalog.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown signal %q", ErrInvalidParameter, name)
		}

		series, err := BuildSeries(tbl, sig, opts.Window, opts.Mode)
		if err != nil {
			return nil, fmt.Errorf("failed to extract signal %q: %w", name, err)
		}

		hist, err := Histogram(series.Value, opts.Bins)
		if err != nil {
			return nil, err
		}

		result.Panels = append(result.Panels, models.SignalPanel{
			Series:    series,
			Histogram: hist,
			Spectrum:  FFTMagnitude(series.Time, series.Value),
		})
	}

	if opts.Include3D {
		view, err := PrepareView(result.Panels[0].Series, result.Panels[1].Series, result.Panels[2].Series, opts.View)
		switch {
		case err == nil:
			result.View = view
		case errors.Is(err, ErrInsufficientData):
			log.Warn().Err(err).Strs("rows", opts.Rows).Msg("Could not generate 3D view")
			result.ViewError = err.Error()
		default:
			return nil, err
		}
	}

	return result, nil
}
