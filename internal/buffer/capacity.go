package buffer

import (
	"errors"
	"math"
)

const (
	// BaselineCapacity is the smallest non-zero capacity a Buffer allocates.
	BaselineCapacity = 128
	// GrowthSlack is added to every requirement before the capacity is doubled up to it.
	GrowthSlack = 80
)

// Static errors for capacity computation
var (
	// ErrCapacityOverflow is returned when the padded requirement does not fit an int
	ErrCapacityOverflow = errors.New("buffer capacity overflows int")
	// ErrNegativeCapacity is returned for a negative requirement
	ErrNegativeCapacity = errors.New("negative buffer capacity")
)

// GrowCapacity returns the capacity allocated for a buffer that must hold
// at least required bytes: BaselineCapacity doubled until it reaches
// required+GrowthSlack. A zero requirement needs no allocation.
func GrowCapacity(required int) (int, error) {
	if required < 0 {
		return 0, ErrNegativeCapacity
	}
	if required == 0 {
		return 0, nil
	}
	padded, ok := addOverflowSafe(required, GrowthSlack)
	if !ok {
		return 0, ErrCapacityOverflow
	}
	capacity := BaselineCapacity
	for capacity < padded {
		if capacity > math.MaxInt/2 {
			return 0, ErrCapacityOverflow
		}
		capacity *= 2
	}
	return capacity, nil
}

// addOverflowSafe adds two non-negative ints, returning ok = false on overflow.
func addOverflowSafe(a, b int) (int, bool) {
	if b > 0 && a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}
