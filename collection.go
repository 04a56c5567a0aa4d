package chainz

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"slices"
)

// Collection is a generic, immutable-by-default wrapper around a slice of
// T for eager, object-style collection handling. Every transforming method
// returns a new Collection and leaves the receiver unchanged, so a
// collection may be read concurrently from multiple goroutines.
//
// Collection is the eager counterpart to Chain: its methods apply
// immediately, one at a time. Use Chain (or Collection.Chain) when several
// operations should compose into one deferred, single-evaluation pass, and
// IntoCollection to come back.
//
// Operations that change the element type (MapSlice, GroupBy, ...) are
// package-level slice functions; compose them with All:
//
//	names := chainz.MapSlice(users.All(), func(u User) string { return u.Name })
type Collection[T any] struct {
	items []T
}

// NewCollection creates a Collection from a copy of items.
func NewCollection[T any](items []T) *Collection[T] {
	return &Collection[T]{items: slices.Clone(items)}
}

// CollectionOf creates a Collection from the given elements.
func CollectionOf[T any](items ...T) *Collection[T] {
	return &Collection[T]{items: items}
}

// EmptyCollectionOf creates an empty Collection of type T.
func EmptyCollectionOf[T any]() *Collection[T] {
	return &Collection[T]{items: []T{}}
}

// adopt wraps a slice the caller has relinquished, without copying.
func adopt[T any](items []T) *Collection[T] {
	return &Collection[T]{items: items}
}

// Len returns the number of elements.
func (c *Collection[T]) Len() int { return len(c.items) }

// IsEmpty reports whether the collection holds no elements.
func (c *Collection[T]) IsEmpty() bool { return len(c.items) == 0 }

// All returns a copy of the underlying slice.
func (c *Collection[T]) All() []T {
	return slices.Clone(c.items)
}

// At returns the element at index together with a presence flag. It
// returns the zero value and false when index is out of range.
func (c *Collection[T]) At(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(c.items) {
		return zero, false
	}
	return c.items[index], true
}

// First returns the first element and a presence flag.
func (c *Collection[T]) First() (T, bool) {
	return c.At(0)
}

// Last returns the last element and a presence flag.
func (c *Collection[T]) Last() (T, bool) {
	return c.At(len(c.items) - 1)
}

// Each calls fn for every element in order.
func (c *Collection[T]) Each(fn func(T)) {
	for _, item := range c.items {
		fn(item)
	}
}

// Filter returns a new Collection holding the elements for which pred
// returns true, in source order.
func (c *Collection[T]) Filter(pred func(T) bool) *Collection[T] {
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return adopt(out)
}

// Reject returns a new Collection holding the elements for which pred
// returns false. It is the complement of Filter.
func (c *Collection[T]) Reject(pred func(T) bool) *Collection[T] {
	return c.Filter(func(item T) bool { return !pred(item) })
}

// Take returns a new Collection with the first n elements. Counts
// saturate at the collection bounds.
func (c *Collection[T]) Take(n int) *Collection[T] {
	if n < 0 {
		n = 0
	}
	if n > len(c.items) {
		n = len(c.items)
	}
	return adopt(slices.Clone(c.items[:n]))
}

// Skip returns a new Collection without the first n elements. Counts
// saturate at the collection bounds.
func (c *Collection[T]) Skip(n int) *Collection[T] {
	if n < 0 {
		n = 0
	}
	if n > len(c.items) {
		n = len(c.items)
	}
	return adopt(slices.Clone(c.items[n:]))
}

// Reverse returns a new Collection with the element order reversed.
func (c *Collection[T]) Reverse() *Collection[T] {
	out := make([]T, len(c.items))
	for i, item := range c.items {
		out[len(c.items)-1-i] = item
	}
	return adopt(out)
}

// Sort returns a new Collection stable-sorted by cmp.
func (c *Collection[T]) Sort(cmp func(a, b T) int) *Collection[T] {
	out := slices.Clone(c.items)
	slices.SortStableFunc(out, cmp)
	return adopt(out)
}

// Shuffle returns a new Collection with the elements in random order.
func (c *Collection[T]) Shuffle() *Collection[T] {
	out := slices.Clone(c.items)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return adopt(out)
}

// Sample returns one element chosen uniformly at random, with a presence
// flag that is false for an empty collection.
func (c *Collection[T]) Sample() (T, bool) {
	var zero T
	if len(c.items) == 0 {
		return zero, false
	}
	return c.items[rand.Intn(len(c.items))], true
}

// SampleSize returns a new Collection of n elements chosen at random
// without replacement. Counts saturate at the collection length.
func (c *Collection[T]) SampleSize(n int) *Collection[T] {
	if n < 0 {
		n = 0
	}
	if n > len(c.items) {
		n = len(c.items)
	}
	out := slices.Clone(c.items)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return adopt(out[:n:n])
}

// Chunk splits the collection into consecutive groups of size elements,
// the last group holding the remainder. A size of zero or less yields a
// single chunk.
func (c *Collection[T]) Chunk(size int) []*Collection[T] {
	if size <= 0 {
		return []*Collection[T]{NewCollection(c.items)}
	}
	chunks := make([]*Collection[T], 0, (len(c.items)+size-1)/size)
	for start := 0; start < len(c.items); start += size {
		end := min(start+size, len(c.items))
		chunks = append(chunks, NewCollection(c.items[start:end]))
	}
	return chunks
}

// Chain re-enters the deferred world: it returns a synchronous chain over
// a copy of the collection's data, so several eager steps can be followed
// by one composed, single-pass evaluation.
func (c *Collection[T]) Chain(name Name) *Chain[T] {
	return From(name, c.items)
}

// ToJSON serializes the collection elements to a JSON array.
func (c *Collection[T]) ToJSON() ([]byte, error) {
	return json.Marshal(c.items)
}

// String returns a JSON representation, implementing fmt.Stringer.
func (c *Collection[T]) String() string {
	b, err := c.ToJSON()
	if err != nil {
		return fmt.Sprintf("Collection(len=%d)", len(c.items))
	}
	return string(b)
}
