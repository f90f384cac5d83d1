package domain

import "sort"

// Store maps date keys to day records. It is an immutable snapshot: every
// mutating method returns a new Store and leaves the receiver untouched, so
// callers can compare snapshots cheaply to detect change.
//
// Two invariants hold after any sequence of operations:
//   - no key maps to an empty DayRecord
//   - an entry's status always matches its event type (open iff open_to_plans)
type Store map[DateKey]DayRecord

func NewStore() Store {
	return Store{}
}

// Get returns the day record for key, if any. The returned record is a deep
// copy; mutating it does not affect the store.
func (s Store) Get(key DateKey) (DayRecord, bool) {
	d, ok := s[key]
	if !ok {
		return nil, false
	}
	return d.Clone(), true
}

// SetSlot returns a snapshot with entry written at (key, slot). The stored
// status is re-derived from the event type so the status invariant cannot be
// violated by a caller-supplied entry.
func (s Store) SetSlot(key DateKey, slot TimeSlot, entry SlotEntry) Store {
	e := entry.Clone()
	e.Status = e.EventType.Status()

	out := s.clone()
	day := out[key]
	if day == nil {
		day = DayRecord{}
	} else {
		day = day.Clone()
	}
	day[slot] = e
	out[key] = day
	return out
}

// ClearSlot returns a snapshot with (key, slot) removed. If that leaves the
// day empty, the key is removed entirely.
func (s Store) ClearSlot(key DateKey, slot TimeSlot) Store {
	day, ok := s[key]
	if !ok {
		return s
	}
	if _, ok := day[slot]; !ok {
		return s
	}
	out := s.clone()
	nd := day.Clone()
	delete(nd, slot)
	if len(nd) == 0 {
		delete(out, key)
	} else {
		out[key] = nd
	}
	return out
}

// ClearDay returns a snapshot with every slot for key removed.
func (s Store) ClearDay(key DateKey) Store {
	if _, ok := s[key]; !ok {
		return s
	}
	out := s.clone()
	delete(out, key)
	return out
}

// BulkSet applies entry to the Cartesian product of keys and slots. Both the
// "all slots for one day" and the "apply to a date range" write paths reduce
// to this one primitive; they differ only in how the key list is produced.
func (s Store) BulkSet(keys []DateKey, slots []TimeSlot, entry SlotEntry) Store {
	out := s
	for _, key := range keys {
		for _, slot := range slots {
			out = out.SetSlot(key, slot, entry)
		}
	}
	return out
}

// Keys returns every date key in ascending calendar order. Lexicographic
// order is calendar order because keys are zero-padded.
func (s Store) Keys() []DateKey {
	out := make([]DateKey, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of dates with at least one slot set.
func (s Store) Len() int { return len(s) }

func (s Store) clone() Store {
	out := make(Store, len(s)+1)
	for k, d := range s {
		out[k] = d
	}
	return out
}
