package bitree

import (
	"math/rand"
)

// RNG is the source of randomness for Counts.Sample. It must return
// values in [0, 1).
type RNG interface {
	Float64() float64
}

type globalRNG struct{}

func (r *globalRNG) Float64() float64 {
	return rand.Float64()
}
