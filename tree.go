// Package bitree provides a binary indexed tree (Fenwick tree) and a
// frequency table built on top of it.
//
// A Tree holds a fixed number of values and supports adding to or
// setting any element and summing any prefix or range of elements,
// all in O(log n) time, while using a single slice of n+1 partial
// sums.
//
// Neither Tree nor Counts is safe for concurrent use. A query running
// alongside an update can observe a partially applied update, so
// callers sharing an instance must serialize access themselves.
package bitree

import (
	"math/bits"

	"github.com/caio/go-bitree/internal/lsb"
	"golang.org/x/exp/constraints"
)

// Number is the set of value types a Tree can hold. The zero value
// is the identity and addition must be associative and commutative.
type Number interface {
	constraints.Integer | constraints.Float
}

// Tree is a list of n numbers with efficient prefix sums.
type Tree[T Number] struct {
	// sums[i] holds the sum of the elements at positions
	// (i - lowbit(i), i], with positions being 1-based.
	// sums[0] is never read.
	sums []T
}

// New creates a tree of n zero elements. Panics if n is negative.
func New[T Number](n int) *Tree[T] {
	if n < 0 {
		panic("Length must be >= 0")
	}
	return &Tree[T]{sums: make([]T, n+1)}
}

// From creates a tree holding the given elements.
func From[T Number](values ...T) *Tree[T] {
	t := New[T](len(values))
	for i, v := range values {
		t.add(i, v)
	}
	return t
}

// Len returns the number of elements in the tree.
func (t *Tree[T]) Len() int {
	return len(t.sums) - 1
}

// Update adds delta to the element at index.
func (t *Tree[T]) Update(index int, delta T) error {
	if index < 0 || index >= t.Len() {
		return outOfRange(index, 0, t.Len()-1)
	}
	t.add(index, delta)
	return nil
}

// UpdateTo sets the element at index to value. It walks the tree
// three times where Update walks it once, since the current value
// has to be recovered first.
func (t *Tree[T]) UpdateTo(index int, value T) error {
	prev, err := t.Get(index)
	if err != nil {
		return err
	}
	t.add(index, value-prev)
	return nil
}

func (t *Tree[T]) add(index int, delta T) {
	for i := range lsb.Ascend(uint(index)+1, uint(len(t.sums))) {
		t.sums[i] += delta
	}
}

// Query returns the sum of the elements before index, that is
// elements 0 to index-1. Query(0) is always zero.
func (t *Tree[T]) Query(index int) (T, error) {
	if index < 0 || index > t.Len() {
		var zero T
		return zero, outOfRange(index, 0, t.Len())
	}
	return t.prefix(index), nil
}

func (t *Tree[T]) prefix(index int) T {
	var sum T
	for i := range lsb.Descend(uint(index)) {
		sum += t.sums[i]
	}
	return sum
}

// Range returns the sum of the elements from left to right, both
// included. Range(i, i-1) is the empty range and returns zero.
//
// left > right+1 is not checked: the result is the negated sum of
// Range(right+1, left-1).
func (t *Tree[T]) Range(left, right int) (T, error) {
	hi, err := t.Query(right + 1)
	if err != nil {
		return hi, err
	}
	lo, err := t.Query(left)
	if err != nil {
		return lo, err
	}
	return hi - lo, nil
}

// Get returns the element at index.
func (t *Tree[T]) Get(index int) (T, error) {
	if index < 0 || index >= t.Len() {
		var zero T
		return zero, outOfRange(index, 0, t.Len()-1)
	}
	return t.prefix(index+1) - t.prefix(index), nil
}

// Total returns the sum of all elements.
func (t *Tree[T]) Total() T {
	return t.prefix(t.Len())
}

// Search returns the largest k such that Query(k) <= sum, or 0 when
// no such k exists. The result is only meaningful when no element is
// negative.
func (t *Tree[T]) Search(sum T) int {
	n := t.Len()
	if n == 0 {
		return 0
	}

	// Descend the implicit tree from the largest power of two not
	// above n, keeping pos as the prefix whose sum is known to fit.
	pos := 0
	for step := 1 << (bits.Len(uint(n)) - 1); step > 0; step >>= 1 {
		if next := pos + step; next <= n && t.sums[next] <= sum {
			pos = next
			sum -= t.sums[next]
		}
	}
	return pos
}
