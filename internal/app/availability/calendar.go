package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/weekendsync/availability-api/internal/domain"
	"github.com/weekendsync/availability-api/internal/ports/out/clock"
	"github.com/weekendsync/availability-api/internal/ports/out/slotrepo"
)

// Calendar is one user's availability view: an in-memory store kept in sync
// with the repository, plus local-only copy/paste and undo/redo state.
//
// Writes go to the repository one (date, slot) row at a time, in date order
// then canonical slot order, and stop at the first failure. Rows saved before
// the failure stay both persisted and applied to the store; there is no
// rollback. Deletes are remote-first: the store only changes after the
// repository confirms.
type Calendar struct {
	userID domain.UserID
	repo   slotrepo.Repository
	clock  clock.Clock

	store   domain.Store
	history history
	copied  *copiedDay

	newCopyTokenID func() string
}

type copiedDay struct {
	token CopyToken
	day   domain.DayRecord
}

func NewCalendar(userID domain.UserID, repo slotrepo.Repository, clk clock.Clock) *Calendar {
	return &Calendar{
		userID:         userID,
		repo:           repo,
		clock:          clk,
		store:          domain.NewStore(),
		newCopyTokenID: uuid.NewString,
	}
}

// SetNewCopyTokenIDForTest overrides copy token generation for deterministic
// tests. It should not be used in production code.
func (c *Calendar) SetNewCopyTokenIDForTest(fn func() string) {
	if fn != nil {
		c.newCopyTokenID = fn
	}
}

// Load replaces the store with the persisted rows in [start, end] and resets
// undo/redo history. Rows with an unknown slot or event type are dropped
// rather than poisoning the store.
func (c *Calendar) Load(ctx context.Context, start, end domain.DateKey) error {
	if !start.Valid() {
		return validationError("start", "invalid date: "+string(start))
	}
	if !end.Valid() {
		return validationError("end", "invalid date: "+string(end))
	}
	if end < start {
		return validationError("end", "must be on or after start")
	}

	rows, err := c.repo.FetchRange(ctx, c.userID, start, end)
	if err != nil {
		return persistenceError(err)
	}

	store := domain.NewStore()
	for _, row := range rows {
		if !row.Date.Valid() || !row.Slot.Valid() || !row.EventType.Valid() {
			continue
		}
		store = store.SetSlot(row.Date, row.Slot, row.Entry())
	}
	c.store = store
	c.history.reset()
	return nil
}

// Store returns the current snapshot. Snapshots are immutable; callers may
// hold them across later mutations.
func (c *Calendar) Store() domain.Store { return c.store }

// Get returns the day record for date, if any slot is set.
func (c *Calendar) Get(date domain.DateKey) (domain.DayRecord, bool) {
	return c.store.Get(date)
}

// ApplyAvailability writes the same entry to every (date, slot) pair in the
// product of in.Dates and in.Slots. Dates must be today or later.
func (c *Calendar) ApplyAvailability(ctx context.Context, in ApplyInput) error {
	if len(in.Dates) == 0 {
		return validationError("dates", "must be non-empty")
	}
	if len(in.Slots) == 0 {
		return validationError("slots", "must be non-empty")
	}
	if !in.EventType.Valid() {
		return validationError("eventType", "unknown event type: "+string(in.EventType))
	}
	for _, slot := range in.Slots {
		if !slot.Valid() {
			return validationError("slots", "unknown slot: "+string(slot))
		}
	}
	now := c.clock.Now()
	for _, date := range in.Dates {
		if !date.Valid() {
			return validationError("dates", "invalid date: "+string(date))
		}
		if date.IsPast(now) {
			return pastDateError(string(date))
		}
	}

	entry := domain.SlotEntry{
		Status:    in.EventType.Status(),
		EventType: in.EventType,
		Details:   in.Details.toDomain(),
	}
	return c.saveSequential(ctx, in.Dates, in.Slots, func(domain.DateKey, domain.TimeSlot) domain.SlotEntry {
		return entry
	})
}

// ApplyAvailabilityRange is ApplyAvailability over every date in
// [start, end] inclusive.
func (c *Calendar) ApplyAvailabilityRange(ctx context.Context, start, end domain.DateKey, slots []domain.TimeSlot, eventType domain.EventType, details Details) error {
	dates := domain.DateKeysInRange(start, end)
	if dates == nil {
		return validationError("dates", "invalid date range")
	}
	return c.ApplyAvailability(ctx, ApplyInput{
		Dates:     dates,
		Slots:     slots,
		EventType: eventType,
		Details:   details,
	})
}

// DeleteSlot removes one slot, remote-first: the store is untouched unless
// the repository delete succeeds. Deleting an unset slot is a no-op.
func (c *Calendar) DeleteSlot(ctx context.Context, date domain.DateKey, slot domain.TimeSlot) error {
	if !date.Valid() {
		return validationError("date", "invalid date: "+string(date))
	}
	if !slot.Valid() {
		return validationError("slot", "unknown slot: "+string(slot))
	}

	present := false
	if day, ok := c.store[date]; ok {
		_, present = day[slot]
	}
	if err := c.repo.Remove(ctx, c.userID, date, &slot); err != nil {
		return persistenceError(err)
	}
	if present {
		c.history.push(c.store)
		c.store = c.store.ClearSlot(date, slot)
	}
	return nil
}

// ClearDay removes every slot of a day, remote-first.
func (c *Calendar) ClearDay(ctx context.Context, date domain.DateKey) error {
	if !date.Valid() {
		return validationError("date", "invalid date: "+string(date))
	}

	_, present := c.store[date]
	if err := c.repo.Remove(ctx, c.userID, date, nil); err != nil {
		return persistenceError(err)
	}
	if present {
		c.history.push(c.store)
		c.store = c.store.ClearDay(date)
	}
	return nil
}

// CopyDay snapshots the day for a later paste. The snapshot is a deep copy:
// later edits to the source day do not change what gets pasted.
func (c *Calendar) CopyDay(date domain.DateKey) (CopyToken, error) {
	if !date.Valid() {
		return CopyToken{}, validationError("date", "invalid date: "+string(date))
	}
	day, ok := c.store.Get(date)
	if !ok {
		return CopyToken{}, &Error{Status: 404, Code: "DAY_NOT_FOUND", Message: "no availability set for " + string(date)}
	}
	token := CopyToken{ID: c.newCopyTokenID(), Source: date}
	c.copied = &copiedDay{token: token, day: day}
	return token, nil
}

// Copied returns the token of the currently copied day, if any.
func (c *Calendar) Copied() (CopyToken, bool) {
	if c.copied == nil {
		return CopyToken{}, false
	}
	return c.copied.token, true
}

// PasteDay writes the day held by token onto each target date, overwriting
// whatever the targets hold. An empty target list is a no-op and keeps the
// copied day armed for a later paste. Each copied slot becomes its own row
// write, in date order then slot order, with the same stop-at-first-failure
// behavior as ApplyAvailability.
func (c *Calendar) PasteDay(ctx context.Context, token CopyToken, targets []domain.DateKey) error {
	if c.copied == nil || c.copied.token != token {
		return &Error{Status: 409, Code: "NOTHING_COPIED", Message: "no matching copied day"}
	}
	if len(targets) == 0 {
		return nil
	}

	now := c.clock.Now()
	for _, date := range targets {
		if !date.Valid() {
			return validationError("targets", "invalid date: "+string(date))
		}
		if date.IsPast(now) {
			return pastDateError(string(date))
		}
	}

	slots := make([]domain.TimeSlot, 0, len(c.copied.day))
	for _, slot := range domain.TimeSlots {
		if _, ok := c.copied.day[slot]; ok {
			slots = append(slots, slot)
		}
	}
	day := c.copied.day
	err := c.saveSequential(ctx, targets, slots, func(_ domain.DateKey, slot domain.TimeSlot) domain.SlotEntry {
		return day[slot].Clone()
	})
	if err != nil {
		return err
	}
	c.copied = nil
	return nil
}

// ClearDays removes every slot of each date, remote-first per day, stopping
// at the first failure. Days cleared before the failure stay cleared.
func (c *Calendar) ClearDays(ctx context.Context, dates []domain.DateKey) error {
	for _, date := range dates {
		if !date.Valid() {
			return validationError("dates", "invalid date: "+string(date))
		}
	}
	for _, date := range dates {
		if err := c.ClearDay(ctx, date); err != nil {
			return err
		}
	}
	return nil
}

// UpcomingEvents reconstructs the merged event list from the current store,
// filtered to events that have not fully passed.
func (c *Calendar) UpcomingEvents() []domain.MergedEvent {
	return domain.ReconstructEvents(c.store, c.clock.Now())
}

// Undo reverts the store to the previous snapshot. Local-only: nothing is
// written to the repository, so the next load reflects persisted state again.
func (c *Calendar) Undo() bool {
	next, ok := c.history.undo(c.store)
	if ok {
		c.store = next
	}
	return ok
}

// Redo re-applies the most recently undone snapshot. Local-only, like Undo.
func (c *Calendar) Redo() bool {
	next, ok := c.history.redo(c.store)
	if ok {
		c.store = next
	}
	return ok
}

// saveSequential persists one row per (date, slot) pair and applies each to
// the store only after its save succeeds. On failure the partial result
// stands: saved rows stay applied, the rest are never attempted.
func (c *Calendar) saveSequential(ctx context.Context, dates []domain.DateKey, slots []domain.TimeSlot, entryFor func(domain.DateKey, domain.TimeSlot) domain.SlotEntry) error {
	prev := c.store
	cur := prev
	saved := 0
	now := c.clock.Now()

	commit := func() {
		if saved == 0 {
			return
		}
		c.history.push(prev)
		c.store = cur
	}

	for _, date := range dates {
		for _, slot := range slots {
			entry := entryFor(date, slot)
			if err := c.repo.Save(ctx, rowFromEntry(c.userID, date, slot, entry, now)); err != nil {
				commit()
				return persistenceError(err)
			}
			cur = cur.SetSlot(date, slot, entry)
			saved++
		}
	}
	commit()
	return nil
}

func rowFromEntry(userID domain.UserID, date domain.DateKey, slot domain.TimeSlot, e domain.SlotEntry, now time.Time) slotrepo.Row {
	return slotrepo.Row{
		UserID:          userID,
		Date:            date,
		Slot:            slot,
		Status:          e.EventType.Status(),
		EventType:       e.EventType,
		Destination:     e.Details.Destination,
		RestaurantName:  e.Details.RestaurantName,
		RestaurantPlace: e.Details.RestaurantPlace,
		EventName:       e.Details.EventName,
		EventPlace:      e.Details.EventPlace,
		WeddingPlace:    e.Details.WeddingPlace,
		EventURL:        e.Details.EventURL,
		Partners:        append([]domain.FriendID(nil), e.Details.Partners...),
		Notes:           e.Details.Notes,
		PrivateNotes:    e.Details.PrivateNotes,
		Privacy:         e.Details.Privacy,
		UpdatedAt:       now,
	}
}
