package diagnostics

import "fmt"

// SaturationThreshold is the number of follow-up errors after which the
// counter stops counting and only reports "at least".
const SaturationThreshold = 24

// ErrorCount is a saturating error counter. It is either an exact count or,
// once more than SaturationThreshold follow-up errors were seen, an
// "at least" marker.
type ErrorCount struct {
	n         int
	saturated bool
}

// Exact returns a counter holding exactly n errors.
func Exact(n int) ErrorCount {
	return ErrorCount{n: n}
}

// AtLeast returns a saturated counter.
func AtLeast() ErrorCount {
	return ErrorCount{n: SaturationThreshold + 1, saturated: true}
}

// Increment returns the counter after one more error.
func (c ErrorCount) Increment() ErrorCount {
	if c.saturated {
		return c
	}
	if c.n+1 > SaturationThreshold {
		return AtLeast()
	}
	return ErrorCount{n: c.n + 1}
}

// IsZero reports whether no error was counted.
func (c ErrorCount) IsZero() bool {
	return c.n == 0 && !c.saturated
}

// Saturated reports whether the exact count is unknown.
func (c ErrorCount) Saturated() bool {
	return c.saturated
}

// Total returns the number of errors counted, or the lower bound when saturated.
func (c ErrorCount) Total() int {
	return c.n
}

// FollowUps returns the number of errors after the first one. For a
// saturated counter this is the lower bound SaturationThreshold.
func (c ErrorCount) FollowUps() int {
	if c.saturated {
		return SaturationThreshold
	}
	if c.n == 0 {
		return 0
	}
	return c.n - 1
}

// String implements fmt.Stringer
func (c ErrorCount) String() string {
	if c.saturated {
		return fmt.Sprintf("at least %d", c.n)
	}
	return fmt.Sprintf("%d", c.n)
}
