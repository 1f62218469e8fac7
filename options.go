package bitree

import (
	"github.com/leesper/go_rng"
	"github.com/pkg/errors"
)

type countsOption func(*Counts) error

// Buckets sets the number of buckets of the table.
//
// Buckets are addressed from 0 to n-1 and cannot be added or removed
// after creation, so n should cover the whole domain being counted.
//
// n must be greater or equal to 1, NewCounts will error out otherwise.
func Buckets(n uint32) countsOption {
	return func(c *Counts) error {
		if n < 1 {
			return errors.New("buckets should be >= 1")
		}
		c.buckets = n
		return nil
	}
}

// RandomNumberGenerator sets the RNG used by Sample.
func RandomNumberGenerator(r RNG) countsOption {
	return func(c *Counts) error {
		if r == nil {
			return errors.New("rng must not be nil")
		}
		c.rng = r
		return nil
	}
}

// LocalRandomNumberGenerator makes Sample use its own uniform
// generator seeded with seed instead of the global source.
func LocalRandomNumberGenerator(seed int64) countsOption {
	return RandomNumberGenerator(rng.NewUniformGenerator(seed))
}
