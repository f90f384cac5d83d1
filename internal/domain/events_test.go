package domain_test

import (
	"testing"
	"time"

	"github.com/weekendsync/availability-api/internal/domain"
)

// refNow is before all fixture dates so nothing is filtered as past unless a
// test wants it.
var refNow = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func travelDay(s domain.Store, key domain.DateKey, dest string) domain.Store {
	return s.BulkSet([]domain.DateKey{key}, domain.TimeSlots, busyEntry(domain.EventTraveling, dest))
}

func TestReconstructEvents_MergesContiguousRunsOnly(t *testing.T) {
	t.Parallel()

	s := domain.NewStore()
	s = travelDay(s, "2025-06-01", "Rome")
	s = travelDay(s, "2025-06-02", "Rome")
	s = travelDay(s, "2025-06-03", "Rome")
	// Gap on 06-04.
	s = travelDay(s, "2025-06-05", "Rome")

	events := domain.ReconstructEvents(s, refNow)
	if len(events) != 2 {
		t.Fatalf("events=%d, want 2: %+v", len(events), events)
	}
	if events[0].Start != "2025-06-01" || events[0].End != "2025-06-03" {
		t.Fatalf("first=%q..%q, want 06-01..06-03", events[0].Start, events[0].End)
	}
	if events[1].Start != "2025-06-05" || events[1].End != "2025-06-05" {
		t.Fatalf("second=%q..%q, want 06-05..06-05", events[1].Start, events[1].End)
	}
}

func TestReconstructEvents_SplitsOnTypeOrLocationChange(t *testing.T) {
	t.Parallel()

	s := domain.NewStore()
	s = travelDay(s, "2025-06-01", "Rome")
	s = travelDay(s, "2025-06-02", "Paris") // same type, new location
	s = s.BulkSet([]domain.DateKey{"2025-06-03"}, domain.TimeSlots, busyEntry(domain.EventWork, "")) // new type

	events := domain.ReconstructEvents(s, refNow)
	if len(events) != 3 {
		t.Fatalf("events=%d, want 3: %+v", len(events), events)
	}
	if events[0].Location != "Rome" || events[1].Location != "Paris" {
		t.Fatalf("locations=%q,%q", events[0].Location, events[1].Location)
	}
	if events[2].EventType != domain.EventWork {
		t.Fatalf("third type=%q", events[2].EventType)
	}
}

func TestReconstructEvents_RepresentativeIsFirstBusySlot(t *testing.T) {
	t.Parallel()

	open := domain.SlotEntry{Status: domain.StatusOpen, EventType: domain.EventOpenToPlans}
	s := domain.NewStore().
		SetSlot("2025-06-10", domain.SlotMorning, open).
		SetSlot("2025-06-10", domain.SlotAfternoon, busyEntry(domain.EventLunch, "Cafe Luna")).
		SetSlot("2025-06-10", domain.SlotNight, busyEntry(domain.EventParty, "Warehouse"))

	events := domain.ReconstructEvents(s, refNow)
	if len(events) != 1 {
		t.Fatalf("events=%d, want 1", len(events))
	}
	// The afternoon lunch wins over the night party: earliest busy slot.
	if events[0].EventType != domain.EventLunch || events[0].Location != "Cafe Luna" {
		t.Fatalf("event=%+v, want lunch at Cafe Luna", events[0])
	}
}

func TestReconstructEvents_OpenOnlyDaysProduceNothing(t *testing.T) {
	t.Parallel()

	open := domain.SlotEntry{Status: domain.StatusOpen, EventType: domain.EventOpenToPlans}
	s := domain.NewStore().BulkSet([]domain.DateKey{"2025-06-10", "2025-06-11"}, domain.TimeSlots, open)

	if events := domain.ReconstructEvents(s, refNow); len(events) != 0 {
		t.Fatalf("open days should not appear in the list: %+v", events)
	}
}

func TestReconstructEvents_DropsEventsEndedBeforeToday(t *testing.T) {
	t.Parallel()

	s := domain.NewStore()
	s = travelDay(s, "2025-06-01", "Rome")
	s = travelDay(s, "2025-06-02", "Rome")
	s = travelDay(s, "2025-06-10", "Lisbon")

	now := time.Date(2025, 6, 5, 8, 0, 0, 0, time.UTC)
	events := domain.ReconstructEvents(s, now)
	if len(events) != 1 || events[0].Location != "Lisbon" {
		t.Fatalf("events=%+v, want only the Lisbon trip", events)
	}

	// An event spanning today survives even though it started in the past.
	s = travelDay(s, "2025-06-04", "Berlin")
	s = travelDay(s, "2025-06-05", "Berlin")
	events = domain.ReconstructEvents(s, now)
	if len(events) != 2 {
		t.Fatalf("events=%d, want 2: %+v", len(events), events)
	}
	if events[0].Location != "Berlin" || events[0].Start != "2025-06-04" {
		t.Fatalf("first=%+v, want Berlin starting 06-04", events[0])
	}
}

func TestReconstructEvents_SortedByStartDate(t *testing.T) {
	t.Parallel()

	s := domain.NewStore()
	s = travelDay(s, "2025-08-01", "Oslo")
	s = travelDay(s, "2025-06-01", "Rome")
	s = travelDay(s, "2025-07-01", "Paris")

	events := domain.ReconstructEvents(s, refNow)
	if len(events) != 3 {
		t.Fatalf("events=%d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if !(events[i-1].Start < events[i].Start) {
			t.Fatalf("events not sorted: %+v", events)
		}
	}
}

func TestMergedEvent_Title(t *testing.T) {
	t.Parallel()

	cases := []struct {
		et   domain.EventType
		loc  string
		want string
	}{
		{domain.EventTraveling, "Rome", "Trip to Rome"},
		{domain.EventDinner, "Nobu", "Dinner @ Nobu"},
		{domain.EventLunch, "Cafe Luna", "Lunch @ Cafe Luna"},
		{domain.EventWedding, "Lake Como", "Wedding @ Lake Como"},
		{domain.EventParty, "Warehouse", "Party @ Warehouse"},
		{domain.EventWork, "", "Work"},
		{domain.EventFamily, "", "Family"},
		{domain.EventDinner, "", "Dinner"},
		{domain.EventOther, "somewhere", "Other"},
	}
	for _, tc := range cases {
		e := domain.MergedEvent{EventType: tc.et, Location: tc.loc}
		if got := e.Title(); got != tc.want {
			t.Fatalf("Title(%q,%q)=%q, want %q", tc.et, tc.loc, got, tc.want)
		}
	}
}
