package helper

import (
	"fmt"
	"strings"
)

// Error is an error carrying the original error and the trace of
// contexts it was passed through.
type Error struct {
	Original error
	Trace    []string
}

// NewError wraps err with the given trace context.
// If err itself is an Error, the trace is prepended to its existing trace.
// Errors wrapping an Error are kept as the original error.
func NewError(trace string, err error) error {
	if e, ok := err.(Error); ok {
		e.Trace = append([]string{trace}, e.Trace...)
		return e
	}

	return Error{
		Original: err,
		Trace:    []string{trace},
	}
}

// Error implements the error interface.
func (e Error) Error() string {
	return fmt.Sprintf("%v | trace: %s", e.Original, strings.Join(e.Trace, " -> "))
}

// Unwrap returns the original error.
func (e Error) Unwrap() error {
	return e.Original
}
