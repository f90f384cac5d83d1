package selection_test

import (
	"context"
	"testing"
	"time"

	memslotrepo "github.com/weekendsync/availability-api/internal/adapters/memory/slotrepo"
	"github.com/weekendsync/availability-api/internal/app/availability"
	"github.com/weekendsync/availability-api/internal/app/selection"
	"github.com/weekendsync/availability-api/internal/domain"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func testClock() fixedClock {
	return fixedClock{now: time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)}
}

func newMachine(t *testing.T) (*selection.Machine, *availability.Calendar) {
	t.Helper()
	cal := availability.NewCalendar("u1", memslotrepo.NewRepo(), testClock())
	return selection.NewMachine(cal, testClock()), cal
}

func seedDay(t *testing.T, cal *availability.Calendar, date domain.DateKey) {
	t.Helper()
	err := cal.ApplyAvailability(context.Background(), availability.ApplyInput{
		Dates:     []domain.DateKey{date},
		Slots:     []domain.TimeSlot{domain.SlotMorning},
		EventType: domain.EventWork,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", date, err)
	}
}

func TestClick_DispatchPriority(t *testing.T) {
	t.Parallel()
	m, cal := newMachine(t)

	// Idle, future date: open the editor.
	if got := m.Click("2025-06-10"); got != selection.ClickOpenEditor {
		t.Fatalf("idle future click=%s, want open_editor", got)
	}

	// Idle, past date with no data: nothing happens.
	if got := m.Click("2025-05-01"); got != selection.ClickIgnored {
		t.Fatalf("idle empty past click=%s, want ignored", got)
	}

	// Idle, past date with data: read-only details, never the editor.
	// Seed via a calendar whose clock makes 2025-05-01 writable.
	past := availability.NewCalendar("u1", memslotrepo.NewRepo(), fixedClock{now: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)})
	seedDay(t, past, "2025-05-01")
	mPast := selection.NewMachine(past, testClock())
	if got := mPast.Click("2025-05-01"); got != selection.ClickOpenDetails {
		t.Fatalf("idle data past click=%s, want open_details", got)
	}

	// Range selection takes over clicks.
	m.StartRangeSelect()
	if got := m.Click("2025-06-10"); got != selection.ClickToggledSelection {
		t.Fatalf("range click=%s, want toggled_selection", got)
	}
	m.Escape()

	// Copy mode outranks everything.
	seedDay(t, cal, "2025-06-10")
	if err := m.StartCopy("2025-06-10"); err != nil {
		t.Fatalf("StartCopy: %v", err)
	}
	if got := m.Click("2025-06-11"); got != selection.ClickToggledTarget {
		t.Fatalf("copy-armed click=%s, want toggled_target", got)
	}
}

func TestClick_ToggleIsSymmetric(t *testing.T) {
	t.Parallel()
	m, _ := newMachine(t)

	m.StartRangeSelect()
	m.Click("2025-06-10")
	m.Click("2025-06-11")
	m.Click("2025-06-10")
	got := m.Selected()
	if len(got) != 1 || got[0] != "2025-06-11" {
		t.Fatalf("selected=%v, want [2025-06-11]", got)
	}
}

func TestDrag_UnionsSweptDates(t *testing.T) {
	t.Parallel()
	m, _ := newMachine(t)

	// A drag from Idle enters range selection implicitly.
	m.BeginDrag("2025-06-10")
	if m.State() != selection.StateRangeSelecting {
		t.Fatalf("state=%s, want range_selecting", m.State())
	}
	m.DragOver("2025-06-11")
	m.DragOver("2025-06-12")
	// Sweeping back over a date must not remove it.
	m.DragOver("2025-06-11")
	m.EndDrag()

	got := m.Selected()
	want := []domain.DateKey{"2025-06-10", "2025-06-11", "2025-06-12"}
	if len(got) != len(want) {
		t.Fatalf("selected=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("selected=%v, want %v", got, want)
		}
	}

	// DragOver after EndDrag is inert.
	m.DragOver("2025-06-13")
	if len(m.Selected()) != 3 {
		t.Fatalf("drag-over after end extended the selection")
	}
}

func TestConfirmBulkEdit_AppliesAllSlotsAndClears(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, cal := newMachine(t)

	m.StartRangeSelect()
	m.Click("2025-06-10")
	m.Click("2025-06-12")
	err := m.ConfirmBulkEdit(ctx, domain.EventTraveling, availability.Details{Destination: "Oslo"})
	if err != nil {
		t.Fatalf("ConfirmBulkEdit: %v", err)
	}

	if m.State() != selection.StateIdle || len(m.Selected()) != 0 {
		t.Fatalf("machine not reset: state=%s selected=%v", m.State(), m.Selected())
	}
	for _, date := range []domain.DateKey{"2025-06-10", "2025-06-12"} {
		day, ok := cal.Get(date)
		if !ok || !day.IsFullDay() {
			t.Fatalf("bulk edit did not write full day %s: %#v", date, day)
		}
	}
	if _, ok := cal.Get("2025-06-11"); ok {
		t.Fatalf("bulk edit wrote an unselected date")
	}
}

func TestConfirmClear_DeletesSelectedDays(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, cal := newMachine(t)
	seedDay(t, cal, "2025-06-10")
	seedDay(t, cal, "2025-06-11")

	m.StartRangeSelect()
	m.Click("2025-06-10")
	if err := m.ConfirmClear(ctx); err != nil {
		t.Fatalf("ConfirmClear: %v", err)
	}
	if m.State() != selection.StateIdle {
		t.Fatalf("state=%s, want idle", m.State())
	}
	if _, ok := cal.Get("2025-06-10"); ok {
		t.Fatalf("selected day survived clear")
	}
	if _, ok := cal.Get("2025-06-11"); !ok {
		t.Fatalf("unselected day was cleared")
	}
}

func TestCopyPasteFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, cal := newMachine(t)
	seedDay(t, cal, "2025-06-10")

	if err := m.StartCopy("2025-06-10"); err != nil {
		t.Fatalf("StartCopy: %v", err)
	}
	if src, ok := m.CopySource(); !ok || src != "2025-06-10" {
		t.Fatalf("copy source=%q ok=%v", src, ok)
	}

	m.Click("2025-06-20")
	m.Click("2025-06-21")
	if err := m.ConfirmPaste(ctx); err != nil {
		t.Fatalf("ConfirmPaste: %v", err)
	}

	if m.State() != selection.StateIdle {
		t.Fatalf("state after paste=%s, want idle", m.State())
	}
	for _, date := range []domain.DateKey{"2025-06-20", "2025-06-21"} {
		if _, ok := cal.Get(date); !ok {
			t.Fatalf("paste missed target %s", date)
		}
	}
}

func TestStartCopy_AbsentDayFails(t *testing.T) {
	t.Parallel()
	m, _ := newMachine(t)

	if err := m.StartCopy("2025-06-10"); err == nil {
		t.Fatalf("StartCopy of empty day should fail")
	}
	if m.State() != selection.StateIdle {
		t.Fatalf("failed copy must not arm the machine")
	}
}

func TestEscape_DiscardsFromAnyState(t *testing.T) {
	t.Parallel()
	m, cal := newMachine(t)
	seedDay(t, cal, "2025-06-10")

	m.StartRangeSelect()
	m.Click("2025-06-11")
	m.Escape()
	if m.State() != selection.StateIdle || len(m.Selected()) != 0 {
		t.Fatalf("escape did not reset range selection")
	}

	if err := m.StartCopy("2025-06-10"); err != nil {
		t.Fatalf("StartCopy: %v", err)
	}
	m.Click("2025-06-20")
	m.Escape()
	if _, ok := m.CopySource(); ok {
		t.Fatalf("escape did not disarm copy")
	}
	// Nothing was pasted.
	if _, ok := cal.Get("2025-06-20"); ok {
		t.Fatalf("escape pasted anyway")
	}
}

func TestHandleKey_Shortcuts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, cal := newMachine(t)
	seedDay(t, cal, "2025-06-10")

	// Ctrl+C needs exactly one selected date.
	m.StartRangeSelect()
	m.Click("2025-06-10")
	m.Click("2025-06-11")
	if ok, _ := m.HandleKey(ctx, selection.Key{Code: "c", Ctrl: true}); ok {
		t.Fatalf("Ctrl+C with two dates selected should be ignored")
	}
	m.Click("2025-06-11")
	ok, err := m.HandleKey(ctx, selection.Key{Code: "c", Ctrl: true})
	if !ok || err != nil {
		t.Fatalf("Ctrl+C: ok=%v err=%v", ok, err)
	}
	if m.State() != selection.StateCopyArmed {
		t.Fatalf("state=%s, want copy_armed", m.State())
	}

	// Ctrl+V pastes onto the toggled targets.
	m.Click("2025-06-20")
	ok, err = m.HandleKey(ctx, selection.Key{Code: "v", Ctrl: true})
	if !ok || err != nil {
		t.Fatalf("Ctrl+V: ok=%v err=%v", ok, err)
	}
	if _, ok := cal.Get("2025-06-20"); !ok {
		t.Fatalf("Ctrl+V did not paste")
	}

	// Ctrl+Z / Ctrl+Y map to undo and redo.
	if ok, _ := m.HandleKey(ctx, selection.Key{Code: "z", Ctrl: true}); !ok {
		t.Fatalf("Ctrl+Z should undo the paste")
	}
	if _, ok := cal.Get("2025-06-20"); ok {
		t.Fatalf("undo did not revert the paste")
	}
	if ok, _ := m.HandleKey(ctx, selection.Key{Code: "y", Ctrl: true}); !ok {
		t.Fatalf("Ctrl+Y should redo")
	}
	if _, ok := cal.Get("2025-06-20"); !ok {
		t.Fatalf("redo did not restore the paste")
	}

	// Escape from Idle is not consumed; from any other state it resets.
	if ok, _ := m.HandleKey(ctx, selection.Key{Code: "escape"}); ok {
		t.Fatalf("escape in idle should not be consumed")
	}
	m.StartRangeSelect()
	if ok, _ := m.HandleKey(ctx, selection.Key{Code: "escape"}); !ok {
		t.Fatalf("escape should reset range selection")
	}
	if m.State() != selection.StateIdle {
		t.Fatalf("state=%s, want idle", m.State())
	}

	// Plain letters without Ctrl are ignored.
	if ok, _ := m.HandleKey(ctx, selection.Key{Code: "c"}); ok {
		t.Fatalf("bare 'c' should be ignored")
	}
}
