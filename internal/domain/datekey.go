package domain

import (
	"fmt"
	"time"
)

// DateKey is the canonical "YYYY-MM-DD" key for a calendar date. Month and day
// are zero-padded so lexicographic order equals calendar order.
type DateKey string

// MakeDateKey builds a DateKey from calendar components. month0 is zero-based
// (January = 0), matching the month indexing used by the interaction layer.
// Inputs are assumed to be valid calendar components.
func MakeDateKey(year, month0, day int) DateKey {
	return DateKey(fmt.Sprintf("%04d-%02d-%02d", year, month0+1, day))
}

// DateKeyFromTime derives the key for t's calendar date in t's location.
func DateKeyFromTime(t time.Time) DateKey {
	return DateKey(t.Format("2006-01-02"))
}

// Parse returns the (year, month0, day) components of the key.
func (k DateKey) Parse() (year, month0, day int, err error) {
	t, err := k.Time()
	if err != nil {
		return 0, 0, 0, err
	}
	return t.Year(), int(t.Month()) - 1, t.Day(), nil
}

// Time returns the key's date at midnight UTC.
func (k DateKey) Time() (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", string(k), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", k, err)
	}
	return t, nil
}

// Valid reports whether k names a real calendar date in canonical form.
func (k DateKey) Valid() bool {
	t, err := k.Time()
	return err == nil && DateKeyFromTime(t) == k
}

// IsPast reports whether k is strictly before now, with both truncated to
// midnight. The reference time is always passed explicitly; nothing in this
// package consults the process clock.
func (k DateKey) IsPast(now time.Time) bool {
	t, err := k.Time()
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return t.Before(today)
}

// Next returns the key for the following calendar day. Invalid keys are
// returned unchanged.
func (k DateKey) Next() DateKey {
	t, err := k.Time()
	if err != nil {
		return k
	}
	return DateKeyFromTime(t.AddDate(0, 0, 1))
}

// DateKeysInRange expands [start, end] into one key per day, inclusive of both
// ends. Returns nil if either key is invalid or end precedes start.
func DateKeysInRange(start, end DateKey) []DateKey {
	st, err := start.Time()
	if err != nil {
		return nil
	}
	et, err := end.Time()
	if err != nil || et.Before(st) {
		return nil
	}
	out := make([]DateKey, 0, int(et.Sub(st).Hours()/24)+1)
	for d := st; !d.After(et); d = d.AddDate(0, 0, 1) {
		out = append(out, DateKeyFromTime(d))
	}
	return out
}
