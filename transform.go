package chainz

import (
	"cmp"
	"context"
	"slices"
)

// This file contains the builder stages that change the chain's element
// type. Go generics do not allow methods to introduce their own type
// parameters, so these stages are package-level functions composed with
// the method-chaining calls:
//
//	labels, err := chainz.Map(
//	    chainz.From("nums", data).Filter(isEven),
//	    func(_ context.Context, n int) (string, error) { return strconv.Itoa(n), nil },
//	).Collect(ctx)

// Map appends a stage that applies fn to every element, producing a chain
// over the new element type. A non-nil error from fn aborts the whole
// evaluation; no partial collection is ever returned.
func Map[T, U any](c *Chain[T], fn func(context.Context, T) (U, error)) *Chain[U] {
	return derive(c, KindMap, "", func(ctx context.Context, path []Name, in []T) ([]U, error) {
		return mapStage(ctx, c.ex, path, in, fn)
	})
}

// FlatMap appends a stage that maps each element to a sub-slice and
// concatenates the results in source order.
func FlatMap[T, U any](c *Chain[T], fn func(context.Context, T) ([]U, error)) *Chain[U] {
	return derive(c, KindFlatMap, "", func(ctx context.Context, path []Name, in []T) ([]U, error) {
		return flatMapStage(ctx, c.ex, path, in, fn)
	})
}

// Custom appends a caller-supplied whole-collection stage under the given
// name. It is the escape hatch for composite steps the built-in stages
// cannot express. Custom stages run sequentially in every mode; the
// executor treats them as non-parallelizable because it cannot see inside
// fn.
func Custom[T, U any](c *Chain[T], name Name, fn func(context.Context, []T) ([]U, error)) *Chain[U] {
	return derive(c, KindCustom, name, func(ctx context.Context, path []Name, in []T) ([]U, error) {
		return customStage(ctx, c.ex, path, in, fn)
	})
}

// SortBy appends a stage that stable-sorts the collection by the key
// derived from each element. When ascending is false the order is
// reversed. Equal keys keep their source order.
func SortBy[T any, K cmp.Ordered](c *Chain[T], key func(T) K, ascending bool) *Chain[T] {
	return derive(c, KindSort, "", func(_ context.Context, _ []Name, in []T) ([]T, error) {
		out := slices.Clone(in)
		slices.SortStableFunc(out, func(a, b T) int {
			if ascending {
				return cmp.Compare(key(a), key(b))
			}
			return cmp.Compare(key(b), key(a))
		})
		return out, nil
	})
}

// Fold appends a reduction stage that folds the collection into a single
// accumulated value, seeded with initial. The resulting chain holds exactly
// one element, ready for the Value terminal. Folding an empty collection
// yields the initial value.
func Fold[T, U any](c *Chain[T], initial U, fn func(acc U, elem T) U) *Chain[U] {
	return Custom(c, "fold", func(_ context.Context, in []T) ([]U, error) {
		acc := initial
		for _, elem := range in {
			acc = fn(acc, elem)
		}
		return []U{acc}, nil
	})
}

// Reduce appends a reduction stage that combines the collection into a
// single value using its first element as the seed. Reducing an empty
// collection fails with ErrEmptyCollection.
func Reduce[T any](c *Chain[T], fn func(acc, elem T) T) *Chain[T] {
	return Custom(c, "reduce", func(_ context.Context, in []T) ([]T, error) {
		if len(in) == 0 {
			return nil, ErrEmptyCollection
		}
		acc := in[0]
		for _, elem := range in[1:] {
			acc = fn(acc, elem)
		}
		return []T{acc}, nil
	})
}
