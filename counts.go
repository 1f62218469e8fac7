package bitree

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Counts is a frequency table over a fixed number of buckets. It
// answers rank and quantile queries over the recorded observations
// in O(log buckets) time.
type Counts struct {
	tree    *Tree[uint64]
	buckets uint32
	rng     RNG
}

// NewCounts creates an empty frequency table. By default it has 100
// buckets and samples with the global math/rand source.
func NewCounts(options ...countsOption) (*Counts, error) {
	c := &Counts{
		buckets: 100,
		rng:     &globalRNG{},
	}

	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}

	c.tree = New[uint64](int(c.buckets))
	return c, nil
}

func (c Counts) String() string {
	return fmt.Sprintf("Counts<buckets=%d, total=%d>", c.buckets, c.Total())
}

// Buckets returns the number of buckets.
func (c *Counts) Buckets() int {
	return int(c.buckets)
}

// Total returns the number of recorded observations.
func (c *Counts) Total() uint64 {
	return c.tree.Total()
}

// Add records n observations in the given bucket.
func (c *Counts) Add(bucket int, n uint64) error {
	if n == 0 {
		return errors.New("count must be > 0")
	}
	return c.tree.Update(bucket, n)
}

// Remove forgets n observations from the given bucket, which must
// hold at least n of them.
func (c *Counts) Remove(bucket int, n uint64) error {
	count, err := c.tree.Get(bucket)
	if err != nil {
		return err
	}
	if count < n {
		return errors.Errorf("bucket %d holds %d observations, cannot remove %d", bucket, count, n)
	}
	// The delta wraps around, which unsigned addition undoes.
	return c.tree.Update(bucket, -n)
}

// Count returns the number of observations in the given bucket.
func (c *Counts) Count(bucket int) (uint64, error) {
	return c.tree.Get(bucket)
}

// Rank returns the number of observations in buckets lower than
// bucket. Rank(Buckets()) equals Total().
func (c *Counts) Rank(bucket int) (uint64, error) {
	return c.tree.Query(bucket)
}

// Quantile returns the bucket holding the observation at quantile q:
// counting observations from zero, the one of rank ceil(q*Total())-1.
// q == 0 gives the lowest non-empty bucket. q must be in [0, 1].
func (c *Counts) Quantile(q float64) (int, error) {
	if q < 0 || q > 1 || math.IsNaN(q) {
		return -1, errors.Errorf("quantile %v not in [0, 1]", q)
	}

	total := c.Total()
	if total == 0 {
		return -1, ErrNoObservations
	}

	rank := uint64(0)
	if r := math.Ceil(q*float64(total)) - 1; r > 0 {
		rank = uint64(r)
	}
	if rank >= total {
		rank = total - 1
	}
	return c.tree.Search(rank), nil
}

// Sample returns the bucket of an observation picked uniformly at
// random, or -1 if there are none.
func (c *Counts) Sample() int {
	total := c.Total()
	if total == 0 {
		return -1
	}

	rank := uint64(c.rng.Float64() * float64(total))
	if rank >= total {
		rank = total - 1
	}
	return c.tree.Search(rank)
}

// Merge adds every observation of other to c. Both tables must have
// the same number of buckets.
func (c *Counts) Merge(other *Counts) error {
	if other.buckets != c.buckets {
		return errors.Errorf("cannot merge %d buckets into %d", other.buckets, c.buckets)
	}

	for i := 0; i < other.Buckets(); i++ {
		n, _ := other.tree.Get(i)
		if n == 0 {
			continue
		}
		if err := c.tree.Update(i, n); err != nil {
			return errors.Wrap(err, "merge")
		}
	}
	return nil
}

// Clone returns a deep copy of c sharing its random number generator.
func (c *Counts) Clone() *Counts {
	return &Counts{
		tree:    &Tree[uint64]{sums: append([]uint64(nil), c.tree.sums...)},
		buckets: c.buckets,
		rng:     c.rng,
	}
}
