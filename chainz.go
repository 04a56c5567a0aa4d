// Package chainz provides a lightweight, type-safe library for composing
// deferred collection pipelines in Go.
//
// # Overview
//
// chainz lets you describe an ordered sequence of transformations over a
// finite, in-memory collection - map, filter, take, skip, reverse, flat-map,
// sort, or a custom whole-collection step - and evaluate the whole sequence
// in a single deferred pass. Nothing runs until a terminal operation
// (Collect, Value, IntoCollection) is invoked, and each chain is evaluated
// exactly once.
//
// # Core Concepts
//
// A Chain[T] is an immutable description of a source collection plus the
// stages appended so far, parameterized by the element type produced by the
// last stage. Stages that keep the element type are methods:
//
//	evens := chainz.From[int]("evens", data).
//	    Filter(func(_ context.Context, n int) bool { return n%2 == 0 }).
//	    Take(3)
//
// Stages that change the element type are package-level functions, because
// Go methods cannot introduce new type parameters:
//
//	labels := chainz.Map(evens, func(_ context.Context, n int) (string, error) {
//	    return strconv.Itoa(n), nil
//	})
//	result, err := labels.Collect(context.Background())
//
// Every builder call returns a new chain value typed by the new element
// type; a type mismatch between adjacent stages fails to compile rather
// than surfacing at evaluation time.
//
// # Execution Modes
//
// The evaluation strategy is fixed by the construction entry point and can
// never change mid-chain:
//
//   - From, Of, Wrap: synchronous, single pass, deterministic left-to-right
//     element order.
//   - FromAsync: cooperative, identical semantics, but the context is
//     checked between every element invocation so long-running or blocking
//     closures can be canceled cleanly.
//   - FromParallel: map, filter, and flat-map stages fan out across a fixed
//     worker pool in contiguous chunks, merged back in chunk order so
//     results are identical to synchronous evaluation. Order-sensitive
//     stages (take, skip, reverse, sort, custom) act as barriers and run
//     sequentially.
//
// # Error Handling
//
// Evaluation is all-or-nothing. The first closure error aborts the run and
// is returned as a *Error[T] carrying the chain path, the element being
// processed, timing, and timeout/cancellation flags:
//
//	result, err := chain.Collect(ctx)
//	if err != nil {
//	    var cerr *chainz.Error[int]
//	    if errors.As(err, &cerr) {
//	        log.Printf("failed at %s: %v", strings.Join(cerr.Path, " -> "), cerr.Err)
//	    }
//	}
//
// # Observability
//
// Each chain carries a metricz registry, a tracez tracer, and hookz event
// hooks. Evaluations emit a parent span with one child span per stage, and
// OnStageComplete / OnAllComplete hooks fire as evaluation progresses.
//
// # Collections
//
// The free slice operations (MapSlice, GroupBy, Partition, Shuffle, ...)
// and the Collection[T] wrapper type round out the library for callers who
// want eager, object-style collection handling rather than deferred chains.
// Collection.Chain re-enters the deferred world when needed.
package chainz

// Name identifies chains and stages in error paths, span tags, and events.
// Using this type encourages storing names as constants rather than
// scattering inline strings.
type Name = string

// mode selects the scheduling strategy for one chain lineage. It is fixed
// by the construction entry point.
type mode uint8

const (
	modeSync mode = iota
	modeAsync
	modeParallel
)

func (m mode) String() string {
	switch m {
	case modeAsync:
		return "async"
	case modeParallel:
		return "parallel"
	default:
		return "sync"
	}
}
