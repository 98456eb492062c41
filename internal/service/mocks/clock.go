package mocks

import "time"

// Clock is a settable clock for tests.
type Clock struct {
	T time.Time
}

func (c *Clock) Now() time.Time {
	return c.T
}

func (c *Clock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}

// Rand shuffles nothing and always picks Pick.
type Rand struct {
	Pick int
}

func (r *Rand) Shuffle(n int, swap func(i, j int)) {}

func (r *Rand) IntN(n int) int {
	if r.Pick >= n {
		return n - 1
	}
	return r.Pick
}
