package chainz

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Observability constants for chain evaluation.
const (
	// Metrics.
	ChainEvaluationsTotal = metricz.Key("chain.evaluations.total")
	ChainSuccessesTotal   = metricz.Key("chain.successes.total")
	ChainFailuresTotal    = metricz.Key("chain.failures.total")
	ChainStagesTotal      = metricz.Key("chain.stages.total")
	ChainStagesCompleted  = metricz.Key("chain.stages.completed")
	ChainElementsIn       = metricz.Key("chain.elements.in")
	ChainElementsOut      = metricz.Key("chain.elements.out")
	ChainDurationMs       = metricz.Key("chain.duration.ms")

	// Spans.
	ChainEvaluateSpan = tracez.Key("chain.evaluate")
	ChainStageSpan    = tracez.Key("chain.stage")

	// Tags.
	ChainTagMode       = tracez.Tag("chain.mode")
	ChainTagStageCount = tracez.Tag("chain.stage_count")
	ChainTagStageKind  = tracez.Tag("chain.stage_kind")
	ChainTagStageName  = tracez.Tag("chain.stage_name")
	ChainTagSuccess    = tracez.Tag("chain.success")
	ChainTagError      = tracez.Tag("chain.error")

	// Hook event keys.
	ChainEventStageComplete = hookz.Key("chain.stage_complete")
	ChainEventAllComplete   = hookz.Key("chain.all_complete")
)

// ChainEvent represents a chain evaluation event. It is emitted via hookz
// as individual stages complete and once more when the whole evaluation
// finishes, providing visibility into pipeline progress.
type ChainEvent struct {
	Name            Name          // Chain name
	StageName       Name          // Name of the stage
	StageKind       StageKind     // Variant of the stage
	StageNumber     int           // Current stage number (1-based)
	TotalStages     int           // Total number of stages
	InputLen        int           // Elements entering the stage
	OutputLen       int           // Elements produced by the stage
	Success         bool          // Whether the stage succeeded
	Error           error         // Error if the stage failed
	Duration        time.Duration // How long this stage took
	CompletedStages int           // Stages completed (for all_complete)
	TotalDuration   time.Duration // Total evaluation time (for all_complete)
	Timestamp       time.Time     // When the event occurred
}

// executor carries the scheduling mode and observability state shared by
// every chain derived from one source binding. All chains in a lineage
// point at the same executor, which is why a terminal call consumes the
// whole lineage at once.
type executor struct {
	name      Name
	mode      mode
	workers   int
	timeout   time.Duration
	clock     clockz.Clock
	metrics   *metricz.Registry
	tracer    *tracez.Tracer
	hooks     *hookz.Hooks[ChainEvent]
	consumed  atomic.Bool
	stages    atomic.Int64
	completed atomic.Int64
}

func newExecutor(name Name, m mode, workers int) *executor {
	metrics := metricz.New()
	metrics.Counter(ChainEvaluationsTotal)
	metrics.Counter(ChainSuccessesTotal)
	metrics.Counter(ChainFailuresTotal)
	metrics.Gauge(ChainStagesTotal)
	metrics.Gauge(ChainStagesCompleted)
	metrics.Gauge(ChainElementsIn)
	metrics.Gauge(ChainElementsOut)
	metrics.Gauge(ChainDurationMs)

	return &executor{
		name:    name,
		mode:    m,
		workers: workers,
		clock:   clockz.RealClock,
		metrics: metrics,
		tracer:  tracez.New(),
		hooks:   hookz.New[ChainEvent](),
	}
}

// getClock returns the clock to use.
func (ex *executor) getClock() clockz.Clock {
	if ex.clock == nil {
		return clockz.RealClock
	}
	return ex.clock
}

// derive appends one stage to c and returns a chain typed by the stage's
// output element type. The apply function receives the fully materialized
// output of all preceding stages; derive wraps it with the per-stage span,
// metrics, and event emission shared by every stage variant.
func derive[T, U any](c *Chain[T], kind StageKind, name Name, apply func(ctx context.Context, path []Name, in []T) ([]U, error)) *Chain[U] {
	ex := c.ex
	index := len(c.info)
	if name == "" {
		name = stageName(kind, index)
	}

	info := make([]StageInfo, index, index+1)
	copy(info, c.info)
	info = append(info, StageInfo{Kind: kind, Name: name})

	path := []Name{ex.name, name}
	prev := c.run

	run := func(ctx context.Context) ([]U, error) {
		in, err := prev(ctx)
		if err != nil {
			return nil, err
		}

		// Check context between stages in every mode.
		if ctxErr := ctx.Err(); ctxErr != nil {
			var zero T
			now := ex.getClock().Now()
			return nil, newStageError(path, zero, ctxErr, now, now)
		}

		stageCtx, span := ex.tracer.StartSpan(ctx, ChainStageSpan)
		span.SetTag(ChainTagStageKind, kind.String())
		span.SetTag(ChainTagStageName, string(name))

		start := ex.getClock().Now()
		out, err := apply(stageCtx, path, in)
		duration := ex.getClock().Now().Sub(start)
		if err != nil {
			span.SetTag(ChainTagError, err.Error())
		}
		span.Finish()

		if err == nil {
			ex.completed.Add(1)
			ex.metrics.Gauge(ChainStagesCompleted).Set(float64(ex.completed.Load()))
		}

		_ = ex.hooks.Emit(ctx, ChainEventStageComplete, ChainEvent{ //nolint:errcheck
			Name:        ex.name,
			StageName:   name,
			StageKind:   kind,
			StageNumber: index + 1,
			TotalStages: int(ex.stages.Load()),
			InputLen:    len(in),
			OutputLen:   len(out),
			Success:     err == nil,
			Error:       err,
			Duration:    duration,
			Timestamp:   ex.getClock().Now(),
		})

		if err != nil {
			return nil, err
		}
		return out, nil
	}

	return &Chain[U]{ex: ex, info: info, run: run}
}

// mapStage applies fn to every element under the executor's scheduling
// mode. In async mode the context is checked between element invocations;
// in parallel mode the input is partitioned across workers and merged in
// chunk order.
func mapStage[T, U any](ctx context.Context, ex *executor, path []Name, in []T, fn func(context.Context, T) (U, error)) ([]U, error) {
	seq := func(ctx context.Context, chunk []T) ([]U, error) {
		start := ex.getClock().Now()
		out := make([]U, 0, len(chunk))
		for _, elem := range chunk {
			if ex.mode != modeSync {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, newStageError(path, elem, ctxErr, start, ex.getClock().Now())
				}
			}
			mapped, err := fn(ctx, elem)
			if err != nil {
				return nil, newStageError(path, elem, err, start, ex.getClock().Now())
			}
			out = append(out, mapped)
		}
		return out, nil
	}

	if ex.mode == modeParallel {
		return fanOut(ctx, ex, path, in, seq)
	}
	return seq(ctx, in)
}

// filterStage keeps the elements for which pred returns true, preserving
// source order. Scheduling follows the same rules as mapStage.
func filterStage[T any](ctx context.Context, ex *executor, path []Name, in []T, pred func(context.Context, T) bool) ([]T, error) {
	seq := func(ctx context.Context, chunk []T) ([]T, error) {
		start := ex.getClock().Now()
		out := make([]T, 0, len(chunk))
		for _, elem := range chunk {
			if ex.mode != modeSync {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, newStageError(path, elem, ctxErr, start, ex.getClock().Now())
				}
			}
			if pred(ctx, elem) {
				out = append(out, elem)
			}
		}
		return out, nil
	}

	if ex.mode == modeParallel {
		return fanOut(ctx, ex, path, in, seq)
	}
	return seq(ctx, in)
}

// flatMapStage maps each element to a sub-slice and concatenates the
// results in source order. Scheduling follows the same rules as mapStage.
func flatMapStage[T, U any](ctx context.Context, ex *executor, path []Name, in []T, fn func(context.Context, T) ([]U, error)) ([]U, error) {
	seq := func(ctx context.Context, chunk []T) ([]U, error) {
		start := ex.getClock().Now()
		out := make([]U, 0, len(chunk))
		for _, elem := range chunk {
			if ex.mode != modeSync {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, newStageError(path, elem, ctxErr, start, ex.getClock().Now())
				}
			}
			sub, err := fn(ctx, elem)
			if err != nil {
				return nil, newStageError(path, elem, err, start, ex.getClock().Now())
			}
			out = append(out, sub...)
		}
		return out, nil
	}

	if ex.mode == modeParallel {
		return fanOut(ctx, ex, path, in, seq)
	}
	return seq(ctx, in)
}

// customStage applies a caller-supplied whole-collection function. Custom
// stages never fan out; the executor cannot see inside fn, so it runs
// sequentially in every mode.
func customStage[T, U any](ctx context.Context, ex *executor, path []Name, in []T, fn func(context.Context, []T) ([]U, error)) ([]U, error) {
	start := ex.getClock().Now()
	out, err := fn(ctx, in)
	if err != nil {
		var zero T
		return nil, newStageError(path, zero, err, start, ex.getClock().Now())
	}
	return out, nil
}

// tagInt formats an integer for span tags.
func tagInt(n int) string {
	return fmt.Sprintf("%d", n)
}
