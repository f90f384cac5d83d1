package clock

import "time"

// SystemClock returns the current wall-clock time in UTC. Date keys are
// derived in UTC everywhere, so the reference time must be too.
type SystemClock struct{}

func NewSystemClock() SystemClock { return SystemClock{} }

func (SystemClock) Now() time.Time { return time.Now().UTC() }
