package domain

import (
	"strings"
	"time"
)

// MergedEvent is a contiguous run of dates whose representative entries share
// an event type and location. It is derived fresh from a store snapshot on
// every read; to change one, edit the underlying slot entries and re-derive.
type MergedEvent struct {
	Start     DateKey
	End       DateKey
	EventType EventType
	Location  string
	Notes     string
	Partners  []FriendID
}

// Title renders the human-readable event title, templated per event type.
func (e MergedEvent) Title() string {
	loc := strings.TrimSpace(e.Location)
	if loc == "" {
		return capitalize(string(e.EventType))
	}
	switch e.EventType {
	case EventTraveling:
		return "Trip to " + loc
	case EventLunch, EventDinner, EventWedding, EventParty:
		return capitalize(string(e.EventType)) + " @ " + loc
	default:
		return capitalize(string(e.EventType))
	}
}

// ReconstructEvents derives the upcoming merged events from a store snapshot.
//
// Each date with at least one busy slot is represented by its first busy slot
// in canonical slot order; a day holding different busy event types across
// slots contributes only the earliest one. Adjacent dates merge when the
// event type and location string match exactly AND the date is exactly one
// calendar day after the current run's end; a gap always starts a new event.
// Events that ended before now's calendar date are dropped.
//
// Rerun in full on every store mutation that affects the list view.
func ReconstructEvents(s Store, now time.Time) []MergedEvent {
	var events []MergedEvent
	var cur *MergedEvent

	for _, key := range s.Keys() {
		entry, ok := representativeBusySlot(s[key])
		if !ok {
			cur = nil
			continue
		}
		loc := entry.Details.Location()

		if cur != nil && cur.EventType == entry.EventType && cur.Location == loc && key == cur.End.Next() {
			cur.End = key
			continue
		}
		events = append(events, MergedEvent{
			Start:     key,
			End:       key,
			EventType: entry.EventType,
			Location:  loc,
			Notes:     entry.Details.Notes,
			Partners:  append([]FriendID(nil), entry.Details.Partners...),
		})
		cur = &events[len(events)-1]
	}

	out := make([]MergedEvent, 0, len(events))
	for _, e := range events {
		if e.End.IsPast(now) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// representativeBusySlot returns the first busy slot entry in canonical slot
// order, if any.
func representativeBusySlot(d DayRecord) (SlotEntry, bool) {
	for _, slot := range TimeSlots {
		if e, ok := d[slot]; ok && e.Status == StatusBusy {
			return e, true
		}
	}
	return SlotEntry{}, false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
