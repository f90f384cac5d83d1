package domain

import "strings"

// TimeSlot is one of the three fixed partitions of a day. The set is closed;
// there are no custom slots.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotNight     TimeSlot = "night"
)

// TimeSlots lists every slot in canonical order. The order matters: the list
// reconstruction picks the first busy slot in this order as a day's
// representative entry.
var TimeSlots = []TimeSlot{SlotMorning, SlotAfternoon, SlotNight}

// Valid reports whether s names a known time slot.
func (s TimeSlot) Valid() bool {
	switch s {
	case SlotMorning, SlotAfternoon, SlotNight:
		return true
	}
	return false
}

type Status string

const (
	// StatusOpen means open to plans; it is the sole "available" status.
	StatusOpen Status = "open"
	// StatusBusy covers every non-open event type.
	StatusBusy Status = "busy"
)

type EventType string

const (
	EventOpenToPlans EventType = "open_to_plans"
	EventTraveling   EventType = "traveling"
	EventLunch       EventType = "lunch"
	EventDinner      EventType = "dinner"
	EventEvent       EventType = "event"
	EventWedding     EventType = "wedding"
	EventParty       EventType = "party"
	EventFamily      EventType = "family"
	EventWork        EventType = "work"
	EventOther       EventType = "other"
)

// EventTypes is the fixed catalogue of event types.
var EventTypes = []EventType{
	EventOpenToPlans,
	EventTraveling,
	EventLunch,
	EventDinner,
	EventEvent,
	EventWedding,
	EventParty,
	EventFamily,
	EventWork,
	EventOther,
}

// Valid reports whether e is part of the catalogue.
func (e EventType) Valid() bool {
	for _, t := range EventTypes {
		if e == t {
			return true
		}
	}
	return false
}

// Status returns the status implied by the event type: open for
// open_to_plans, busy for everything else. A slot entry's status is always
// derived this way; the two fields never disagree.
func (e EventType) Status() Status {
	if e == EventOpenToPlans {
		return StatusOpen
	}
	return StatusBusy
}

// Label returns the display label for the event type.
func (e EventType) Label() string {
	switch e {
	case EventOpenToPlans:
		return "Open to plans"
	case EventFamily:
		return "Family Time"
	default:
		s := string(e)
		if s == "" {
			return ""
		}
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

type PrivacyLevel string

const (
	PrivacyPublic  PrivacyLevel = "public"
	PrivacyPrivate PrivacyLevel = "private"
)

// SlotDetails carries the free-form attributes of a slot entry. Only the
// subset relevant to the active event type is meaningful; consumers ignore
// the rest (they may be non-empty, but must not affect rendering or merging).
type SlotDetails struct {
	Destination     string
	RestaurantName  string
	RestaurantPlace string
	EventName       string
	EventPlace      string
	WeddingPlace    string
	EventURL        string

	Partners []FriendID

	Notes        string
	PrivateNotes string
	Privacy      PrivacyLevel
}

// Clone returns a deep copy; the Partners slice is never shared.
func (d SlotDetails) Clone() SlotDetails {
	cp := d
	if d.Partners != nil {
		cp.Partners = append([]FriendID(nil), d.Partners...)
	}
	return cp
}

// Location returns the primary location string for the entry's event type:
// the first non-empty of destination, restaurant name, event location and
// wedding location. Used by the list reconstruction for merge comparison.
func (d SlotDetails) Location() string {
	for _, s := range []string{d.Destination, d.RestaurantName, d.EventPlace, d.WeddingPlace} {
		if v := strings.TrimSpace(s); v != "" {
			return v
		}
	}
	return ""
}

// SlotEntry is the availability record for one date+slot.
type SlotEntry struct {
	Status    Status
	EventType EventType
	Details   SlotDetails
}

// Clone returns a deep copy of the entry.
func (e SlotEntry) Clone() SlotEntry {
	cp := e
	cp.Details = e.Details.Clone()
	return cp
}

// DayRecord maps each set slot to its entry. An absent slot means "unset",
// which is distinct from open.
type DayRecord map[TimeSlot]SlotEntry

// Clone returns a deep copy of the record.
func (d DayRecord) Clone() DayRecord {
	if d == nil {
		return nil
	}
	cp := make(DayRecord, len(d))
	for slot, e := range d {
		cp[slot] = e.Clone()
	}
	return cp
}

// IsFullDay reports whether all three slots are present and pairwise equal on
// (status, event type). Other detail fields are not compared. A record with
// fewer than three slots is never a full-day event.
func (d DayRecord) IsFullDay() bool {
	if len(d) != len(TimeSlots) {
		return false
	}
	first, ok := d[TimeSlots[0]]
	if !ok {
		return false
	}
	for _, slot := range TimeSlots[1:] {
		e, ok := d[slot]
		if !ok || e.Status != first.Status || e.EventType != first.EventType {
			return false
		}
	}
	return true
}

// DaySummary classifies a day for at-a-glance rendering.
type DaySummary string

const (
	DayEmpty      DaySummary = "empty"
	DayFullOpen   DaySummary = "full_day_open"
	DayFullBusy   DaySummary = "full_day_busy"
	DayPartlyOpen DaySummary = "partly_open"
	DayPartlyBusy DaySummary = "partly_busy"
)

// Summary derives the day classification. Recomputed on every read; never
// stored.
func (d DayRecord) Summary() DaySummary {
	if len(d) == 0 {
		return DayEmpty
	}
	if d.IsFullDay() {
		if d[SlotMorning].Status == StatusOpen {
			return DayFullOpen
		}
		return DayFullBusy
	}
	for _, e := range d {
		if e.Status == StatusOpen {
			return DayPartlyOpen
		}
	}
	return DayPartlyBusy
}
