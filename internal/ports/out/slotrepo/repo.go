package slotrepo

import (
	"context"
	"time"

	"github.com/weekendsync/availability-api/internal/domain"
)

// Row is the persistence shape of one (user, date, slot) availability record.
// It is not an HTTP DTO. Empty strings map to NULL columns at the adapter
// boundary.
type Row struct {
	UserID domain.UserID
	Date   domain.DateKey
	Slot   domain.TimeSlot

	Status    domain.Status
	EventType domain.EventType

	Destination     string
	RestaurantName  string
	RestaurantPlace string
	EventName       string
	EventPlace      string
	WeddingPlace    string
	EventURL        string

	Partners []domain.FriendID

	Notes        string
	PrivateNotes string
	Privacy      domain.PrivacyLevel

	UpdatedAt time.Time
}

// Entry converts the row into its domain slot entry.
func (r Row) Entry() domain.SlotEntry {
	return domain.SlotEntry{
		Status:    r.Status,
		EventType: r.EventType,
		Details: domain.SlotDetails{
			Destination:     r.Destination,
			RestaurantName:  r.RestaurantName,
			RestaurantPlace: r.RestaurantPlace,
			EventName:       r.EventName,
			EventPlace:      r.EventPlace,
			WeddingPlace:    r.WeddingPlace,
			EventURL:        r.EventURL,
			Partners:        append([]domain.FriendID(nil), r.Partners...),
			Notes:           r.Notes,
			PrivateNotes:    r.PrivateNotes,
			Privacy:         r.Privacy,
		},
	}
}

// Repository provides access to persisted availability records.
//
// Save is an upsert keyed by (user, date, slot) and must fail loudly on any
// backend error; it never silently drops a write. Remove with a nil slot
// deletes every slot of the date; removing absent rows is not an error.
//
// FetchRange returns all rows in [start, end] inclusive, ordered by date
// ascending then canonical slot order, so callers can reduce the flat list
// into a store deterministically.
type Repository interface {
	Save(ctx context.Context, row Row) error
	FetchRange(ctx context.Context, userID domain.UserID, start, end domain.DateKey) ([]Row, error)
	Remove(ctx context.Context, userID domain.UserID, date domain.DateKey, slot *domain.TimeSlot) error
}
