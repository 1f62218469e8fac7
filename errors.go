package bitree

import "github.com/pkg/errors"

var (
	// ErrIndexOutOfRange is returned, wrapped, when a logical index or
	// bucket falls outside the container.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNoObservations is returned by quantile queries on an empty
	// frequency table.
	ErrNoObservations = errors.New("no observations")
)

func outOfRange(index, lo, hi int) error {
	return errors.Wrapf(ErrIndexOutOfRange, "%d not in [%d, %d]", index, lo, hi)
}
