package chainz

import (
	"cmp"
	"math/rand"
	"slices"
)

// This file contains the eager, free-standing slice operations. They are
// single-pass, allocation-conscious helpers that the chain stages build
// on conceptually; callers who want deferred composition should reach for
// Chain instead. Operations whose names would collide with chain builders
// carry a Slice suffix.

// Each calls fn for every element in order.
func Each[T any](in []T, fn func(T)) {
	for _, elem := range in {
		fn(elem)
	}
}

// EachRight calls fn for every element in reverse order.
func EachRight[T any](in []T, fn func(T)) {
	for i := len(in) - 1; i >= 0; i-- {
		fn(in[i])
	}
}

// MapSlice applies fn to every element and returns the results.
func MapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, len(in))
	for i, elem := range in {
		out[i] = fn(elem)
	}
	return out
}

// FilterSlice returns the elements for which pred returns true, in source
// order.
func FilterSlice[T any](in []T, pred func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, elem := range in {
		if pred(elem) {
			out = append(out, elem)
		}
	}
	return out
}

// FlatMapSlice applies fn to every element and concatenates the resulting
// sub-slices in source order.
func FlatMapSlice[T, U any](in []T, fn func(T) []U) []U {
	out := make([]U, 0, len(in))
	for _, elem := range in {
		out = append(out, fn(elem)...)
	}
	return out
}

// ReduceSlice folds the slice left to right into a single accumulated
// value, seeded with initial.
func ReduceSlice[T, U any](in []T, initial U, fn func(acc U, elem T) U) U {
	acc := initial
	for _, elem := range in {
		acc = fn(acc, elem)
	}
	return acc
}

// ReduceRightSlice folds the slice right to left into a single accumulated
// value, seeded with initial.
func ReduceRightSlice[T, U any](in []T, initial U, fn func(acc U, elem T) U) U {
	acc := initial
	for i := len(in) - 1; i >= 0; i-- {
		acc = fn(acc, in[i])
	}
	return acc
}

// GroupBy groups elements by the comparable key extracted by fn,
// preserving source order within each group.
func GroupBy[T any, K comparable](in []T, fn func(T) K) map[K][]T {
	groups := make(map[K][]T)
	for _, elem := range in {
		k := fn(elem)
		groups[k] = append(groups[k], elem)
	}
	return groups
}

// KeyBy indexes elements by the comparable key extracted by fn. Later
// elements overwrite earlier ones sharing a key.
func KeyBy[T any, K comparable](in []T, fn func(T) K) map[K]T {
	out := make(map[K]T, len(in))
	for _, elem := range in {
		out[fn(elem)] = elem
	}
	return out
}

// SortBySlice returns a copy of in stable-sorted by the key derived from
// each element. When ascending is false the order is reversed; equal keys
// keep their source order.
func SortBySlice[T any, K cmp.Ordered](in []T, key func(T) K, ascending bool) []T {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b T) int {
		if ascending {
			return cmp.Compare(key(a), key(b))
		}
		return cmp.Compare(key(b), key(a))
	})
	return out
}

// Shuffle returns a copy of in with the elements in random order.
func Shuffle[T any](in []T) []T {
	out := slices.Clone(in)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Sample returns one element chosen uniformly at random, with a presence
// flag that is false for an empty slice.
func Sample[T any](in []T) (T, bool) {
	var zero T
	if len(in) == 0 {
		return zero, false
	}
	return in[rand.Intn(len(in))], true
}

// SampleSize returns n elements chosen at random without replacement.
// Counts saturate at the slice length.
func SampleSize[T any](in []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n > len(in) {
		n = len(in)
	}
	out := Shuffle(in)
	return out[:n:n]
}
