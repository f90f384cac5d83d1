package contracttest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/weekendsync/availability-api/internal/domain"
	slotrepoport "github.com/weekendsync/availability-api/internal/ports/out/slotrepo"
)

type CleanupFunc = func()

type SlotRepoFactory func(t *testing.T) (slotrepoport.Repository, CleanupFunc)

// RunSlotRepo exercises the slot repository contract shared by every adapter.
func RunSlotRepo(t *testing.T, newRepo SlotRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(1000, 0).UTC()
	userA := domain.UserID(uuid.NewString())
	userB := domain.UserID(uuid.NewString())

	row := func(user domain.UserID, date domain.DateKey, slot domain.TimeSlot, et domain.EventType, dest string) slotrepoport.Row {
		return slotrepoport.Row{
			UserID:      user,
			Date:        date,
			Slot:        slot,
			Status:      et.Status(),
			EventType:   et,
			Destination: dest,
			Privacy:     domain.PrivacyPublic,
			UpdatedAt:   now,
		}
	}

	// Upsert: second save on the same (user, date, slot) overwrites.
	if err := repo.Save(ctx, row(userA, "2025-06-10", domain.SlotMorning, domain.EventTraveling, "Rome")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, row(userA, "2025-06-10", domain.SlotMorning, domain.EventTraveling, "Paris")); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	rows, err := repo.FetchRange(ctx, userA, "2025-06-10", "2025-06-10")
	if err != nil {
		t.Fatalf("FetchRange: %v", err)
	}
	if len(rows) != 1 || rows[0].Destination != "Paris" {
		t.Fatalf("expected single overwritten row, got %#v", rows)
	}

	// Range is inclusive of both ends and ordered date asc, slot order.
	if err := repo.Save(ctx, row(userA, "2025-06-10", domain.SlotNight, domain.EventDinner, "")); err != nil {
		t.Fatalf("Save night: %v", err)
	}
	if err := repo.Save(ctx, row(userA, "2025-06-10", domain.SlotAfternoon, domain.EventLunch, "")); err != nil {
		t.Fatalf("Save afternoon: %v", err)
	}
	if err := repo.Save(ctx, row(userA, "2025-06-12", domain.SlotMorning, domain.EventWork, "")); err != nil {
		t.Fatalf("Save 06-12: %v", err)
	}
	if err := repo.Save(ctx, row(userA, "2025-06-09", domain.SlotMorning, domain.EventWork, "")); err != nil {
		t.Fatalf("Save 06-09: %v", err)
	}

	rows, err = repo.FetchRange(ctx, userA, "2025-06-10", "2025-06-12")
	if err != nil {
		t.Fatalf("FetchRange: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows=%d, want 4 (06-09 excluded): %#v", len(rows), rows)
	}
	wantOrder := []struct {
		date domain.DateKey
		slot domain.TimeSlot
	}{
		{"2025-06-10", domain.SlotMorning},
		{"2025-06-10", domain.SlotAfternoon},
		{"2025-06-10", domain.SlotNight},
		{"2025-06-12", domain.SlotMorning},
	}
	for i, w := range wantOrder {
		if rows[i].Date != w.date || rows[i].Slot != w.slot {
			t.Fatalf("rows[%d]=(%s,%s), want (%s,%s)", i, rows[i].Date, rows[i].Slot, w.date, w.slot)
		}
	}

	// Users are isolated.
	if err := repo.Save(ctx, row(userB, "2025-06-10", domain.SlotMorning, domain.EventParty, "")); err != nil {
		t.Fatalf("Save userB: %v", err)
	}
	rows, err = repo.FetchRange(ctx, userA, "2025-06-01", "2025-06-30")
	if err != nil {
		t.Fatalf("FetchRange userA: %v", err)
	}
	for _, r := range rows {
		if r.UserID != userA {
			t.Fatalf("leaked row from another user: %#v", r)
		}
	}

	// Remove one slot leaves the rest of the day.
	morning := domain.SlotMorning
	if err := repo.Remove(ctx, userA, "2025-06-10", &morning); err != nil {
		t.Fatalf("Remove slot: %v", err)
	}
	rows, _ = repo.FetchRange(ctx, userA, "2025-06-10", "2025-06-10")
	if len(rows) != 2 {
		t.Fatalf("rows after slot remove=%d, want 2", len(rows))
	}

	// Remove with nil slot deletes the whole day; repeating it is not an error.
	if err := repo.Remove(ctx, userA, "2025-06-10", nil); err != nil {
		t.Fatalf("Remove day: %v", err)
	}
	if err := repo.Remove(ctx, userA, "2025-06-10", nil); err != nil {
		t.Fatalf("Remove absent day should be a no-op: %v", err)
	}
	rows, _ = repo.FetchRange(ctx, userA, "2025-06-10", "2025-06-10")
	if len(rows) != 0 {
		t.Fatalf("rows after day remove=%d, want 0", len(rows))
	}

	// Partners round-trip.
	withPartners := row(userA, "2025-07-01", domain.SlotNight, domain.EventParty, "")
	withPartners.Partners = []domain.FriendID{"f1", "alone"}
	withPartners.Notes = "bring cake"
	if err := repo.Save(ctx, withPartners); err != nil {
		t.Fatalf("Save partners: %v", err)
	}
	rows, _ = repo.FetchRange(ctx, userA, "2025-07-01", "2025-07-01")
	if len(rows) != 1 || len(rows[0].Partners) != 2 || rows[0].Partners[0] != "f1" || rows[0].Notes != "bring cake" {
		t.Fatalf("partners round-trip failed: %#v", rows)
	}
}
