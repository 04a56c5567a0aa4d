package chainz

// Query operations: single-pass predicates and lookups over slices.

// Find returns the first element for which pred returns true, with a
// presence flag.
func Find[T any](in []T, pred func(T) bool) (T, bool) {
	for _, elem := range in {
		if pred(elem) {
			return elem, true
		}
	}
	var zero T
	return zero, false
}

// FindLast returns the last element for which pred returns true, with a
// presence flag.
func FindLast[T any](in []T, pred func(T) bool) (T, bool) {
	for i := len(in) - 1; i >= 0; i-- {
		if pred(in[i]) {
			return in[i], true
		}
	}
	var zero T
	return zero, false
}

// Includes reports whether target occurs in the slice.
func Includes[T comparable](in []T, target T) bool {
	for _, elem := range in {
		if elem == target {
			return true
		}
	}
	return false
}

// Every reports whether pred returns true for all elements. It is
// vacuously true for an empty slice.
func Every[T any](in []T, pred func(T) bool) bool {
	for _, elem := range in {
		if !pred(elem) {
			return false
		}
	}
	return true
}

// Some reports whether pred returns true for at least one element.
func Some[T any](in []T, pred func(T) bool) bool {
	for _, elem := range in {
		if pred(elem) {
			return true
		}
	}
	return false
}

// CountBy counts elements grouped by the comparable key extracted by fn.
func CountBy[T any, K comparable](in []T, fn func(T) K) map[K]int {
	counts := make(map[K]int)
	for _, elem := range in {
		counts[fn(elem)]++
	}
	return counts
}

// Partition splits the slice into the elements for which pred returns
// true and those for which it returns false, both in source order.
func Partition[T any](in []T, pred func(T) bool) (matched, rest []T) {
	matched = make([]T, 0, len(in))
	rest = make([]T, 0, len(in))
	for _, elem := range in {
		if pred(elem) {
			matched = append(matched, elem)
		} else {
			rest = append(rest, elem)
		}
	}
	return matched, rest
}
