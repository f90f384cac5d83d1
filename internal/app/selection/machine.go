package selection

import (
	"context"
	"sort"

	"github.com/weekendsync/availability-api/internal/app/availability"
	"github.com/weekendsync/availability-api/internal/domain"
	"github.com/weekendsync/availability-api/internal/ports/out/clock"
)

// State names the current interaction mode.
type State string

const (
	StateIdle State = "idle"
	// StateRangeSelecting accumulates a set of dates for a bulk edit.
	StateRangeSelecting State = "range_selecting"
	// StateCopyArmed holds a copied source day; date clicks toggle paste
	// targets instead of opening the editor.
	StateCopyArmed State = "copy_armed"
)

// ClickResult tells the caller what a date click did, so the view layer can
// open the right surface without duplicating dispatch logic.
type ClickResult string

const (
	// ClickToggledTarget added or removed a paste target.
	ClickToggledTarget ClickResult = "toggled_target"
	// ClickToggledSelection added or removed a bulk-edit selection member.
	ClickToggledSelection ClickResult = "toggled_selection"
	// ClickOpenEditor means the caller should open the single-day edit form.
	ClickOpenEditor ClickResult = "open_editor"
	// ClickOpenDetails means the caller should open the read-only detail
	// view; past days with data cannot be edited.
	ClickOpenDetails ClickResult = "open_details"
	// ClickIgnored means the click has no effect (past day with no data).
	ClickIgnored ClickResult = "ignored"
)

// Key is a normalized keyboard gesture.
type Key struct {
	Code string // "c", "v", "z", "y", "escape"
	Ctrl bool   // Ctrl or Cmd
}

// Engine is the calendar surface the machine drives. *availability.Calendar
// satisfies it.
type Engine interface {
	ApplyAvailability(ctx context.Context, in availability.ApplyInput) error
	CopyDay(date domain.DateKey) (availability.CopyToken, error)
	PasteDay(ctx context.Context, token availability.CopyToken, targets []domain.DateKey) error
	ClearDays(ctx context.Context, dates []domain.DateKey) error
	Get(date domain.DateKey) (domain.DayRecord, bool)
	Undo() bool
	Redo() bool
}

// Machine translates gestures into engine calls. It owns only transient
// interaction state: the mode, the copied source date and the selected set.
// Nothing here is persisted.
type Machine struct {
	engine Engine
	clock  clock.Clock

	state      State
	copySource domain.DateKey
	copyToken  availability.CopyToken
	selected   map[domain.DateKey]struct{}
	dragging   bool
}

func NewMachine(engine Engine, clk clock.Clock) *Machine {
	return &Machine{
		engine:   engine,
		clock:    clk,
		state:    StateIdle,
		selected: map[domain.DateKey]struct{}{},
	}
}

func (m *Machine) State() State { return m.state }

// CopySource returns the armed copy source, if any.
func (m *Machine) CopySource() (domain.DateKey, bool) {
	if m.state != StateCopyArmed {
		return "", false
	}
	return m.copySource, true
}

// Selected returns the selected dates in ascending calendar order.
func (m *Machine) Selected() []domain.DateKey {
	out := make([]domain.DateKey, 0, len(m.selected))
	for d := range m.selected {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// StartCopy snapshots date as the copy source and arms paste-target
// selection. It can be entered from any state; the previous selection is
// discarded.
func (m *Machine) StartCopy(date domain.DateKey) error {
	token, err := m.engine.CopyDay(date)
	if err != nil {
		return err
	}
	m.state = StateCopyArmed
	m.copySource = date
	m.copyToken = token
	m.selected = map[domain.DateKey]struct{}{}
	m.dragging = false
	return nil
}

// StartRangeSelect enters range selection via the explicit "Select" toggle.
// No-op outside Idle.
func (m *Machine) StartRangeSelect() {
	if m.state != StateIdle {
		return
	}
	m.state = StateRangeSelecting
}

// Click dispatches a date click by a single authoritative priority order:
// copy targets first, then range selection, then the plain open-a-day path.
func (m *Machine) Click(date domain.DateKey) ClickResult {
	switch m.state {
	case StateCopyArmed:
		m.toggle(date)
		return ClickToggledTarget
	case StateRangeSelecting:
		m.toggle(date)
		return ClickToggledSelection
	}

	if date.IsPast(m.clock.Now()) {
		if _, ok := m.engine.Get(date); ok {
			return ClickOpenDetails
		}
		return ClickIgnored
	}
	return ClickOpenEditor
}

// BeginDrag starts a drag gesture at date. A drag from Idle enters range
// selection implicitly.
func (m *Machine) BeginDrag(date domain.DateKey) {
	if m.state == StateCopyArmed {
		// Copy targets are toggled by clicks only.
		return
	}
	m.state = StateRangeSelecting
	m.dragging = true
	m.selected[date] = struct{}{}
}

// DragOver adds every date the pointer passes over. Sweeps union into the
// set; a drag never removes dates.
func (m *Machine) DragOver(date domain.DateKey) {
	if !m.dragging {
		return
	}
	m.selected[date] = struct{}{}
}

// EndDrag finishes the gesture, keeping the accumulated selection.
func (m *Machine) EndDrag() { m.dragging = false }

// ConfirmBulkEdit applies eventType and details to every selected date
// across all three slots, then returns to Idle. On failure the machine stays
// in range selection so the user can retry; the store reflects whatever was
// saved before the failure.
func (m *Machine) ConfirmBulkEdit(ctx context.Context, eventType domain.EventType, details availability.Details) error {
	if m.state != StateRangeSelecting || len(m.selected) == 0 {
		return nil
	}
	err := m.engine.ApplyAvailability(ctx, availability.ApplyInput{
		Dates:     m.Selected(),
		Slots:     domain.TimeSlots,
		EventType: eventType,
		Details:   details,
	})
	if err != nil {
		return err
	}
	m.reset()
	return nil
}

// ConfirmPaste pastes the copied day onto the toggled targets and returns to
// Idle. On failure the machine stays armed; the store reflects whatever was
// saved before the failure.
func (m *Machine) ConfirmPaste(ctx context.Context) error {
	if m.state != StateCopyArmed {
		return nil
	}
	if err := m.engine.PasteDay(ctx, m.copyToken, m.Selected()); err != nil {
		return err
	}
	m.reset()
	return nil
}

// ConfirmClear deletes every selected day whole, then returns to Idle. Same
// failure policy as ConfirmBulkEdit.
func (m *Machine) ConfirmClear(ctx context.Context) error {
	if m.state != StateRangeSelecting || len(m.selected) == 0 {
		return nil
	}
	if err := m.engine.ClearDays(ctx, m.Selected()); err != nil {
		return err
	}
	m.reset()
	return nil
}

// Escape returns to Idle from any state, discarding the copy source and the
// selection without pasting or applying anything.
func (m *Machine) Escape() { m.reset() }

// HandleKey dispatches keyboard shortcuts. It reports whether the key was
// consumed.
func (m *Machine) HandleKey(ctx context.Context, k Key) (bool, error) {
	if k.Code == "escape" {
		if m.state == StateIdle {
			return false, nil
		}
		m.Escape()
		return true, nil
	}
	if !k.Ctrl {
		return false, nil
	}
	switch k.Code {
	case "c":
		// Copy requires an unambiguous source.
		if len(m.selected) != 1 {
			return false, nil
		}
		return true, m.StartCopy(m.Selected()[0])
	case "v":
		if m.state != StateCopyArmed {
			return false, nil
		}
		return true, m.ConfirmPaste(ctx)
	case "z":
		return m.engine.Undo(), nil
	case "y":
		return m.engine.Redo(), nil
	}
	return false, nil
}

func (m *Machine) toggle(date domain.DateKey) {
	if _, ok := m.selected[date]; ok {
		delete(m.selected, date)
		return
	}
	m.selected[date] = struct{}{}
}

func (m *Machine) reset() {
	m.state = StateIdle
	m.copySource = ""
	m.copyToken = availability.CopyToken{}
	m.selected = map[domain.DateKey]struct{}{}
	m.dragging = false
}
