package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter marks non-finite or out-of-domain numeric input.
	// Surfaced immediately to the caller, never retried.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrSampling marks a failure of a caller-supplied sampling capability
	// to produce the requested batch of values.
	ErrSampling = errors.New("sampling failed")
)

func invalidParameter(name string, value float64, reason string) error {
	return fmt.Errorf("%w: %s = %v, %s", ErrInvalidParameter, name, value, reason)
}

func samplingError(param string, err error) error {
	return fmt.Errorf("%w: parameter %q: %v", ErrSampling, param, err)
}
