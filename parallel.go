package chainz

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// fanOut partitions in across the executor's worker pool, applies seq to
// each chunk on its own goroutine, and concatenates the partial results in
// chunk order. Order is determined by chunk index, never by completion
// time, so parallel evaluation produces the same output as sequential
// evaluation.
//
// Each worker owns its chunk: the chunk is a capacity-capped subslice, and
// the partial result slot is written by exactly one goroutine. No state is
// shared between workers. The first worker error cancels the remaining
// workers via the group context and is surfaced to the caller; partial
// results from other workers are discarded.
func fanOut[T, U any](ctx context.Context, ex *executor, path []Name, in []T, seq func(context.Context, []T) ([]U, error)) ([]U, error) {
	workers := ex.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(in) {
		workers = len(in)
	}
	if workers <= 1 {
		return seq(ctx, in)
	}

	chunks := partition(in, workers)
	parts := make([][]U, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					var zero T
					now := ex.getClock().Now()
					err = panicToError(r, path, zero, now, now)
				}
			}()

			part, err := seq(gctx, chunk)
			if err != nil {
				return err
			}
			parts[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, part := range parts {
		total += len(part)
	}
	out := make([]U, 0, total)
	for _, part := range parts {
		out = append(out, part...)
	}
	return out, nil
}

// partition splits in into at most n contiguous chunks of near-equal size,
// earlier chunks taking the remainder. Chunks are capacity-capped so a
// worker cannot append past its own region.
func partition[T any](in []T, n int) [][]T {
	chunks := make([][]T, 0, n)
	size := len(in) / n
	rem := len(in) % n

	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < rem {
			end++
		}
		if start == end {
			continue
		}
		chunks = append(chunks, in[start:end:end])
		start = end
	}
	return chunks
}
