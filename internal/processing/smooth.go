package processing

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Mode selects the moving average boundary policy
type Mode string

const (
	// Trailing is causal: output i averages x[i-window+1..i]
	Trailing Mode = "trailing"
	// Centered averages a window around i
	Centered Mode = "centered"
)

// ParseMode converts a user-supplied mode name
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Trailing, Centered:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: unknown moving average mode %q", ErrInvalidParameter, s)
	}
}

// MovingAverage returns a same-length simple moving average of x. The input
// is padded with copies of its edge values so the curve does not sag at the
// ends: trailing mode prepends window-1 copies of x[0]; centered mode puts
// (window-1)/2 copies of x[0] in front and the rest of x[n-1] behind.
//
// When window exceeds len(x) the result is no longer a sliding mean:
// trailing mode yields the running mean of x[0..i] and centered mode yields
// the mean of the whole sequence at every position.
func MovingAverage(x []float64, window int, mode Mode) ([]float64, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: moving average window must be >= 1, got %d", ErrInvalidParameter, window)
	}
	if mode != Trailing && mode != Centered {
		return nil, fmt.Errorf("%w: unknown moving average mode %q", ErrInvalidParameter, mode)
	}

	n := len(x)
	out := make([]float64, n)
	if window == 1 || n == 0 {
		copy(out, x)
		return out, nil
	}

	if window > n {
		if mode == Trailing {
			sum := 0.0
			for i, v := range x {
				sum += v
				out[i] = sum / float64(i+1)
			}
			return out, nil
		}
		mean := floats.Sum(x) / float64(n)
		for i := range out {
			out[i] = mean
		}
		return out, nil
	}

	left := window - 1
	if mode == Centered {
		left = (window - 1) / 2
	}
	right := window - 1 - left

	padded := make([]float64, 0, n+window-1)
	for range left {
		padded = append(padded, x[0])
	}
	padded = append(padded, x...)
	for range right {
		padded = append(padded, x[n-1])
	}

	// Running sum, re-summed from scratch every window outputs to bound drift.
	w := float64(window)
	var sum float64
	for i := range out {
		if i%window == 0 {
			sum = floats.Sum(padded[i : i+window])
		} else {
			sum += padded[i+window-1] - padded[i-1]
		}
		out[i] = sum / w
	}

	return out, nil
}
