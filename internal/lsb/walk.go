// Package lsb computes the positions visited when walking the implicit
// tree of a binary indexed tree.
//
// Positions are 1-based. Slot i of the backing array covers the
// elements (i - lowbit(i), i], where lowbit(i) is the value of the
// lowest set bit of i. An update at position i touches i and every
// slot whose range contains it, found by repeatedly adding lowbit.
// A prefix query at position i visits i and then the slot right
// before its range, found by repeatedly removing lowbit.
//
// For example, the prefix query for 13 (1101₂) visits 1101₂, 1100₂
// and 1000₂, and an update at 5 (101₂) in a tree of 16 elements
// touches 101₂, 110₂, 1000₂ and 10000₂.
package lsb

import (
	"iter"
	"math"
)

// MaxLimit is the largest limit accepted by Ascend.
const MaxLimit = math.MaxUint >> 1

// Next returns the next position an update starting at i must touch:
// the trailing ones of i-1 are cleared and the bit above them set.
func Next(i uint) uint {
	return (i | (i - 1)) + 1
}

// Prev returns i with its lowest set bit removed.
func Prev(i uint) uint {
	return i & (i - 1)
}

// Ascend returns the positions touched by an update at i, in
// increasing order, stopping before limit. i itself is always
// yielded first.
//
// i must be in [1, limit] and limit must not exceed MaxLimit, will
// panic otherwise.
func Ascend(i, limit uint) iter.Seq[uint] {
	if i < 1 || i > limit {
		panic("lsb: position must be in [1, limit]")
	}
	if limit > MaxLimit {
		panic("lsb: limit too large")
	}
	return func(yield func(uint) bool) {
		for j := i; ; {
			if !yield(j) {
				return
			}
			if j = Next(j); j >= limit {
				return
			}
		}
	}
}

// Descend returns the positions visited by a prefix query at i, in
// decreasing order. Nothing is yielded for i == 0.
func Descend(i uint) iter.Seq[uint] {
	return func(yield func(uint) bool) {
		for j := i; j > 0; j = Prev(j) {
			if !yield(j) {
				return
			}
		}
	}
}
