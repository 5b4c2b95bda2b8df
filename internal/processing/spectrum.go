package processing

import (
	"math"
	"math/cmplx"

	"github.com/RMahshie/sigdash/pkg/models"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

const minSpectrumSamples = 4

// FFTMagnitude computes a one-sided amplitude spectrum of value, assuming
// uniform sampling at the median spacing of time. The mean is removed first.
// Degenerate input (fewer than 4 samples, no finite time step, or a
// non-positive median step) yields an empty spectrum rather than an error.
func FFTMagnitude(time, value []float64) models.Spectrum {
	empty := models.Spectrum{Frequency: []float64{}, Magnitude: []float64{}}
	if len(time) < minSpectrumSamples || len(value) < minSpectrumSamples {
		return empty
	}

	diffs := make([]float64, 0, len(time)-1)
	for i := 1; i < len(time); i++ {
		d := time[i] - time[i-1]
		if !math.IsNaN(d) && !math.IsInf(d, 0) {
			diffs = append(diffs, d)
		}
	}
	if len(diffs) == 0 {
		return empty
	}

	dt, err := stats.Median(diffs)
	if err != nil || !(dt > 0) {
		return empty
	}

	n := len(value)
	mean := stat.Mean(value, nil)
	detrended := make([]float64, n)
	for i, v := range value {
		detrended[i] = v - mean
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, detrended)

	spectrum := models.Spectrum{
		Frequency: make([]float64, len(coeffs)),
		Magnitude: make([]float64, len(coeffs)),
	}
	for k, c := range coeffs {
		spectrum.Frequency[k] = fft.Freq(k) / dt
		spectrum.Magnitude[k] = cmplx.Abs(c) / float64(n)
	}

	return spectrum
}

// PeakFrequency returns the frequency of the largest non-DC magnitude bin.
// It reports false for spectra with fewer than two bins.
func PeakFrequency(s models.Spectrum) (float64, bool) {
	if len(s.Magnitude) < 2 {
		return 0, false
	}
	best := 1
	for k := 2; k < len(s.Magnitude); k++ {
		if s.Magnitude[k] > s.Magnitude[best] {
			best = k
		}
	}
	return s.Frequency[best], true
}
