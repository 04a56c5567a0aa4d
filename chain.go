package chainz

import (
	"context"
	"slices"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Chain is an immutable description of a source collection plus every stage
// appended so far, parameterized by the element type produced by the last
// stage. Stages are recorded, not executed; evaluation happens once, when a
// terminal operation (Collect, Value, IntoCollection) runs.
//
// Builder calls never mutate the receiver. Each call returns a new chain
// whose stage list is freshly copied, so holding on to an intermediate
// chain value is safe. All chains derived from one source share a single
// evaluation guard: after any terminal call on the lineage, every terminal
// returns ErrChainConsumed.
//
// Stages that keep the element type (Filter, Take, Skip, Reverse, Sort) are
// methods. Stages that change it (Map, FlatMap, Custom, SortBy, Fold,
// Reduce) are package-level functions, because Go methods cannot introduce
// new type parameters. Adjacent-stage type compatibility is therefore
// enforced by the compiler, never at evaluation time.
type Chain[T any] struct {
	ex   *executor
	info []StageInfo
	run  func(ctx context.Context) ([]T, error)
}

// From creates a synchronous chain over a copy of src. The caller keeps
// ownership of src; later mutations of it do not affect the chain.
func From[T any](name Name, src []T) *Chain[T] {
	return newChain(name, slices.Clone(src), modeSync, 0)
}

// Of creates a synchronous chain over the given elements.
func Of[T any](name Name, items ...T) *Chain[T] {
	return newChain(name, items, modeSync, 0)
}

// Wrap creates a synchronous chain that adopts src without copying. The
// chain owns src from this point on; the caller must not read or mutate it
// afterwards. Use From when the caller retains the slice.
func Wrap[T any](name Name, src []T) *Chain[T] {
	return newChain(name, src, modeSync, 0)
}

// FromAsync creates a cooperative chain over a copy of src. Stage
// semantics are identical to a synchronous chain, but the context is
// checked between every element invocation, so evaluations embedding
// blocking closures can be canceled cleanly. On cancellation the executor
// stops issuing invocations and discards partial intermediates.
func FromAsync[T any](name Name, src []T) *Chain[T] {
	return newChain(name, slices.Clone(src), modeAsync, 0)
}

// FromParallel creates a parallel chain over a copy of src. Map, Filter,
// and FlatMap stages fan out across at most workers goroutines in
// contiguous chunks merged back in chunk order, so results are identical
// to synchronous evaluation. Order-sensitive stages (Take, Skip, Reverse,
// Sort, Custom) act as barriers and run sequentially. A workers value of
// zero or less selects GOMAXPROCS.
func FromParallel[T any](name Name, src []T, workers int) *Chain[T] {
	return newChain(name, slices.Clone(src), modeParallel, workers)
}

func newChain[T any](name Name, src []T, m mode, workers int) *Chain[T] {
	ex := newExecutor(name, m, workers)
	ex.metrics.Gauge(ChainElementsIn).Set(float64(len(src)))
	return &Chain[T]{
		ex: ex,
		run: func(context.Context) ([]T, error) {
			return src, nil
		},
	}
}

// Filter appends a stage that keeps the elements for which pred returns
// true, preserving source order.
func (c *Chain[T]) Filter(pred func(context.Context, T) bool) *Chain[T] {
	return derive(c, KindFilter, "", func(ctx context.Context, path []Name, in []T) ([]T, error) {
		return filterStage(ctx, c.ex, path, in, pred)
	})
}

// Take appends a stage that truncates the collection to its first n
// elements. Counts saturate: n greater than the collection length is a
// no-op, and a negative or zero n produces an empty result.
func (c *Chain[T]) Take(n int) *Chain[T] {
	return derive(c, KindTake, "", func(_ context.Context, _ []Name, in []T) ([]T, error) {
		if n < 0 {
			n = 0
		}
		if n > len(in) {
			n = len(in)
		}
		return slices.Clone(in[:n]), nil
	})
}

// Skip appends a stage that drops the first n elements. Counts saturate:
// n greater than the collection length produces an empty result, and a
// negative or zero n is a full pass-through.
func (c *Chain[T]) Skip(n int) *Chain[T] {
	return derive(c, KindSkip, "", func(_ context.Context, _ []Name, in []T) ([]T, error) {
		if n < 0 {
			n = 0
		}
		if n > len(in) {
			n = len(in)
		}
		return slices.Clone(in[n:]), nil
	})
}

// Reverse appends a stage that reverses element order.
func (c *Chain[T]) Reverse() *Chain[T] {
	return derive(c, KindReverse, "", func(_ context.Context, _ []Name, in []T) ([]T, error) {
		out := make([]T, len(in))
		for i, elem := range in {
			out[len(in)-1-i] = elem
		}
		return out, nil
	})
}

// Sort appends a stage that stable-sorts the collection using cmp, which
// must return a negative number when a orders before b, zero when they are
// equal, and a positive number otherwise. For key-based ordering see the
// package-level SortBy.
func (c *Chain[T]) Sort(cmp func(a, b T) int) *Chain[T] {
	return derive(c, KindSort, "", func(_ context.Context, _ []Name, in []T) ([]T, error) {
		out := slices.Clone(in)
		slices.SortStableFunc(out, cmp)
		return out, nil
	})
}

// Stages returns a copy of the stage descriptors appended so far, in
// evaluation order.
func (c *Chain[T]) Stages() []StageInfo {
	return slices.Clone(c.info)
}

// Len returns the number of stages appended so far.
func (c *Chain[T]) Len() int {
	return len(c.info)
}

// Name returns the name of this chain.
func (c *Chain[T]) Name() Name {
	return c.ex.name
}

// WithClock sets a custom clock for testing. The clock is shared by the
// whole chain lineage.
func (c *Chain[T]) WithClock(clock clockz.Clock) *Chain[T] {
	c.ex.clock = clock
	return c
}

// Metrics returns the metrics registry for this chain lineage.
func (c *Chain[T]) Metrics() *metricz.Registry {
	return c.ex.metrics
}

// Tracer returns the tracer for this chain lineage.
func (c *Chain[T]) Tracer() *tracez.Tracer {
	return c.ex.tracer
}

// Close gracefully shuts down observability components.
func (c *Chain[T]) Close() error {
	if c.ex.tracer != nil {
		c.ex.tracer.Close()
	}
	c.ex.hooks.Close()
	return nil
}

// OnStageComplete registers a handler called asynchronously as each stage
// finishes, whether it succeeds or fails.
func (c *Chain[T]) OnStageComplete(handler func(context.Context, ChainEvent) error) error {
	_, err := c.ex.hooks.Hook(ChainEventStageComplete, handler)
	return err
}

// OnAllComplete registers a handler called asynchronously after the whole
// evaluation finishes successfully. The event carries aggregate statistics
// about the run.
func (c *Chain[T]) OnAllComplete(handler func(context.Context, ChainEvent) error) error {
	_, err := c.ex.hooks.Hook(ChainEventAllComplete, handler)
	return err
}
