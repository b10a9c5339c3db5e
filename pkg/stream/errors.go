package stream

import (
	"errors"
	"fmt"
)

// Common errors reported by Process before any line is consumed.
var (
	// ErrNilTransform is returned when the transform is nil. This is the
	// configuration-error case: it fails before any iteration and leaves
	// the sink untouched.
	ErrNilTransform = errors.New("transform is nil")

	// ErrNilSource is returned when the source is nil
	ErrNilSource = errors.New("source is nil")

	// ErrNilSink is returned when the sink is nil
	ErrNilSink = errors.New("sink is nil")
)

// LineError reports a failure while processing a specific line.
// It carries the 1-indexed line number and wraps the original failure so
// callers can inspect the root cause with errors.Is / errors.As.
type LineError struct {
	// Line is the 1-indexed number of the line that failed
	Line int

	// Err is the underlying transform or write failure
	Err error
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("processing failed on line %d: %v", e.Line, e.Err)
}

// Unwrap returns the original error for use with errors.Is and errors.As.
func (e *LineError) Unwrap() error {
	return e.Err
}
