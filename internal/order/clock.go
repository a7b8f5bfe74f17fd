package order

import "time"

// Clock is the single source of creation, update and history timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC, truncated to the microsecond precision
// Postgres keeps. The monotonic reading is dropped; Transition clamps history order.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
