package processing

import "errors"

var (
	// ErrInvalidParameter marks a configuration value outside its domain
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientData marks a request with too few valid samples
	ErrInsufficientData = errors.New("insufficient data")

	// ErrNotReady is returned when a dataset has not finished processing
	ErrNotReady = errors.New("dataset not ready")
)
