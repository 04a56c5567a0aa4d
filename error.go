package chainz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors surfaced by terminal operations.
var (
	// ErrChainConsumed is returned when a terminal operation is invoked on
	// a chain lineage that has already been evaluated. Chains are one-shot:
	// build, evaluate once, discard.
	ErrChainConsumed = errors.New("chain already evaluated")

	// ErrEmptyCollection is returned by reduction-style stages that have no
	// sensible result for an empty input, such as Reduce without an initial
	// accumulator.
	ErrEmptyCollection = errors.New("operation requires non-empty collection")

	// ErrNotScalar is returned by Value when the final collection does not
	// hold exactly one element.
	ErrNotScalar = errors.New("chain result is not a single value")
)

// Error provides rich context about a failed chain evaluation. It wraps the
// underlying error with the path to the failing stage, the element that was
// being processed when the failure occurred, and timing information.
//
// The type parameter is the input element type of the failing stage, so a
// failure inside a Map from int to string is reported as *Error[int].
// For whole-collection stages (Custom, Sort) InputData is the zero value.
type Error[T any] struct {
	InputData T
	Timestamp time.Time
	Err       error
	Path      []Name
	Duration  time.Duration
	Timeout   bool
	Canceled  bool
}

// Error implements the error interface with a detailed message.
func (e *Error[T]) Error() string {
	location := strings.Join(e.Path, " -> ")
	if location == "" {
		location = "chain"
	}

	if e.Timeout {
		return fmt.Sprintf("%s timed out after %v: %v", location, e.Duration, e.Err)
	}
	if e.Canceled {
		return fmt.Sprintf("%s canceled after %v: %v", location, e.Duration, e.Err)
	}
	return fmt.Sprintf("%s failed after %v: %v", location, e.Duration, e.Err)
}

// Unwrap returns the underlying error, supporting errors.Is and errors.As.
func (e *Error[T]) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether the failure was caused by a deadline.
func (e *Error[T]) IsTimeout() bool {
	return e.Timeout || errors.Is(e.Err, context.DeadlineExceeded)
}

// IsCanceled reports whether the failure was caused by cancellation.
func (e *Error[T]) IsCanceled() bool {
	return e.Canceled || errors.Is(e.Err, context.Canceled)
}

// newStageError wraps a closure error with stage context. Timeout and
// cancellation flags are detected from the wrapped error so callers can
// branch without unwrapping.
func newStageError[T any](path []Name, input T, err error, start, now time.Time) *Error[T] {
	return &Error[T]{
		Path:      path,
		InputData: input,
		Err:       err,
		Timestamp: now,
		Duration:  now.Sub(start),
		Timeout:   errors.Is(err, context.DeadlineExceeded),
		Canceled:  errors.Is(err, context.Canceled),
	}
}

// panicToError converts a recovered panic value into a *Error[T] so caller
// closures that panic surface as ordinary evaluation failures.
func panicToError[T any](r any, path []Name, input T, start, now time.Time) *Error[T] {
	return &Error[T]{
		Path:      path,
		InputData: input,
		Err:       fmt.Errorf("panic: %v", r),
		Timestamp: now,
		Duration:  now.Sub(start),
	}
}
