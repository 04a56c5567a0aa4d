package chainz

import (
	"context"
	"fmt"
)

// Collect evaluates the chain and returns the final collection. The chain
// lineage is consumed: any further terminal call on it, or on any chain
// derived from the same source, returns ErrChainConsumed.
//
// Evaluation applies stages strictly left to right in the order they were
// appended. The first stage failure aborts the run; no partial collection
// is ever returned alongside an error.
func (c *Chain[T]) Collect(ctx context.Context) (result []T, err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	ex := c.ex
	if !ex.consumed.CompareAndSwap(false, true) {
		return nil, ErrChainConsumed
	}

	ex.stages.Store(int64(len(c.info)))
	ex.metrics.Counter(ChainEvaluationsTotal).Inc()
	ex.metrics.Gauge(ChainStagesTotal).Set(float64(len(c.info)))
	start := ex.getClock().Now()

	ctx, span := ex.tracer.StartSpan(ctx, ChainEvaluateSpan)
	span.SetTag(ChainTagMode, ex.mode.String())
	span.SetTag(ChainTagStageCount, tagInt(len(c.info)))
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = nil
			err = panicToError(r, []Name{ex.name}, zero, start, ex.getClock().Now())
		}

		elapsed := ex.getClock().Now().Sub(start)
		ex.metrics.Gauge(ChainDurationMs).Set(float64(elapsed.Milliseconds()))

		if err == nil {
			span.SetTag(ChainTagSuccess, "true")
			ex.metrics.Counter(ChainSuccessesTotal).Inc()
		} else {
			span.SetTag(ChainTagSuccess, "false")
			span.SetTag(ChainTagError, err.Error())
			ex.metrics.Counter(ChainFailuresTotal).Inc()
		}
		span.Finish()
	}()

	if ex.timeout > 0 {
		result, err = runBounded(ctx, ex, c.run, start)
	} else {
		result, err = c.run(ctx)
	}
	if err != nil {
		return nil, err
	}

	ex.metrics.Gauge(ChainElementsOut).Set(float64(len(result)))

	_ = ex.hooks.Emit(ctx, ChainEventAllComplete, ChainEvent{ //nolint:errcheck
		Name:            ex.name,
		TotalStages:     len(c.info),
		CompletedStages: int(ex.completed.Load()),
		OutputLen:       len(result),
		Success:         true,
		TotalDuration:   ex.getClock().Now().Sub(start),
		Timestamp:       ex.getClock().Now(),
	})

	return result, nil
}

// Value evaluates the chain and returns its single terminal value. It is
// the terminal for reduction-style chains whose final collection holds
// exactly one element; any other length fails with ErrNotScalar. Like
// Collect, Value consumes the chain.
func (c *Chain[T]) Value(ctx context.Context) (T, error) {
	var zero T
	out, err := c.Collect(ctx)
	if err != nil {
		return zero, err
	}
	if len(out) != 1 {
		return zero, fmt.Errorf("%w: got %d elements", ErrNotScalar, len(out))
	}
	return out[0], nil
}

// IntoCollection evaluates the chain and wraps the result in a
// Collection for further object-style calls. Like Collect, it consumes
// the chain.
func (c *Chain[T]) IntoCollection(ctx context.Context) (*Collection[T], error) {
	out, err := c.Collect(ctx)
	if err != nil {
		return nil, err
	}
	return adopt(out), nil
}
