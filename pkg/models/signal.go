package models

// Signal identifies a named quantity and the two columns carrying its samples
type Signal struct {
	Name        string `json:"name" doc:"Signal name taken from the time column header"`
	TimeColumn  string `json:"time_column" doc:"Header of the time column"`
	ValueColumn string `json:"value_column" doc:"Header of the value column"`
}

// DiscoveryWarning reports a time column that could not be paired
type DiscoveryWarning struct {
	Name       string `json:"name" doc:"Signal name"`
	TimeColumn string `json:"time_column" doc:"Header of the unpaired time column"`
	Message    string `json:"message" doc:"Human-readable warning"`
}

// NumericSeries is a cleaned, index-aligned (time, value) pair
type NumericSeries struct {
	Time  []float64 `json:"time"`
	Value []float64 `json:"value"`
}

// Len returns the number of samples in the series
func (s *NumericSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Value)
}

// SeriesData is a signal series prepared for plotting: raw values plus their moving average
type SeriesData struct {
	Name     string    `json:"name" doc:"Signal name"`
	Time     []float64 `json:"time" doc:"Sample times"`
	Value    []float64 `json:"value" doc:"Raw sample values"`
	Smoothed []float64 `json:"smoothed" doc:"Moving average of the raw values"`
}

// Spectrum is a one-sided FFT magnitude spectrum
type Spectrum struct {
	Frequency []float64 `json:"frequency" doc:"Frequency bins in Hz, ascending from 0"`
	Magnitude []float64 `json:"magnitude" doc:"Amplitude-normalized magnitude per bin"`
}

// Empty reports whether the spectrum has no bins
func (s Spectrum) Empty() bool {
	return len(s.Frequency) == 0
}

// Histogram holds equal-width bin counts over the value range
type Histogram struct {
	Counts  []int     `json:"counts" doc:"Sample count per bin"`
	Edges   []float64 `json:"edges" doc:"Bin edges, one more than the number of bins"`
	Centers []float64 `json:"centers" doc:"Bin centers, used for frequency polygons"`
}

// ViewTriple is the input for the 3D cross-signal scatter
type ViewTriple struct {
	X          []float64 `json:"x"`
	Y          []float64 `json:"y"`
	Z          []float64 `json:"z"`
	Color      []float64 `json:"color"`
	ColorLabel string    `json:"color_label"`
	XLabel     string    `json:"x_label"`
	YLabel     string    `json:"y_label"`
	ZLabel     string    `json:"z_label"`
	Smoothed   bool      `json:"smoothed" doc:"Whether axis values are moving averages"`
}

// Len returns the number of points in the view
func (v *ViewTriple) Len() int {
	return len(v.X)
}

// SignalPanel is one row of the dashboard: series, histogram and spectrum
type SignalPanel struct {
	Series    SeriesData `json:"series"`
	Histogram Histogram  `json:"histogram"`
	Spectrum  Spectrum   `json:"spectrum"`
}

// DashboardResult is the full set of derived views for three selected signals
type DashboardResult struct {
	Panels    []SignalPanel `json:"panels"`
	View      *ViewTriple   `json:"view,omitempty"`
	ViewError string        `json:"view_error,omitempty" doc:"Why the 3D view could not be prepared"`
}
