package chainz

import (
	"context"
	"time"
)

// WithTimeout bounds the evaluation of the chain lineage. The terminal call
// wraps its context with the deadline, so cooperative stages stop at the
// next element or stage boundary, and the terminal itself returns a timeout
// *Error[T] even when a caller closure ignores its context.
//
// A duration of zero or less removes the bound. The setting is shared by
// the whole lineage, like the scheduling mode.
func (c *Chain[T]) WithTimeout(d time.Duration) *Chain[T] {
	c.ex.timeout = d
	return c
}

// runBounded evaluates the composed chain on its own goroutine and waits
// for either completion or context expiry. Closures that ignore their
// context keep running in the background after expiry; their result is
// discarded.
func runBounded[T any](ctx context.Context, ex *executor, run func(context.Context) ([]T, error), start time.Time) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, ex.timeout)
	defer cancel()

	done := make(chan struct{})
	var out []T
	var err error

	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				now := ex.getClock().Now()
				out = nil
				err = panicToError(r, []Name{ex.name}, zero, start, now)
			}
			close(done)
		}()
		out, err = run(ctx)
	}()

	select {
	case <-done:
		return out, err
	case <-ctx.Done():
		var zero T
		return nil, newStageError([]Name{ex.name}, zero, ctx.Err(), start, ex.getClock().Now())
	}
}
