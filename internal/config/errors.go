package config

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange indicates a parameter value outside its documented range.
	ErrOutOfRange = errors.New("config: parameter out of range")

	// ErrUnknownParam indicates a parameter name that does not exist.
	ErrUnknownParam = errors.New("config: unknown parameter")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("config: unknown preset")
)

// ParamError wraps an error with the offending parameter.
type ParamError struct {
	Param   Param
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	r := Ranges[e.Param]
	return fmt.Sprintf("%s: %s=%g not in [%g, %g]", e.Wrapped, e.Param, e.Value, r.Min, r.Max)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
