package clock

import "time"

// Clock provides the reference "now" used for past-date checks and the
// upcoming-events filter. An interface keeps date boundaries controllable in
// tests.
type Clock interface {
	Now() time.Time
}
