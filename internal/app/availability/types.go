package availability

import "github.com/weekendsync/availability-api/internal/domain"

// Details is the caller-supplied attribute set for a slot write. Fields that
// do not apply to the chosen event type may be left empty; they are stored as
// given and ignored by consumers.
type Details struct {
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
}

func (d Details) toDomain() domain.SlotDetails {
	privacy := d.Privacy
	if privacy != domain.PrivacyPrivate {
		privacy = domain.PrivacyPublic
	}
	return domain.SlotDetails{
		Destination:     d.Destination,
		RestaurantName:  d.RestaurantName,
		RestaurantPlace: d.RestaurantPlace,
		EventName:       d.EventName,
		EventPlace:      d.EventPlace,
		WeddingPlace:    d.WeddingPlace,
		EventURL:        d.EventURL,
		Partners:        append([]domain.FriendID(nil), d.Partners...),
		Notes:           d.Notes,
		PrivateNotes:    d.PrivateNotes,
		Privacy:         privacy,
	}
}

// ApplyInput describes one availability write: the same event type and
// details applied to every (date, slot) pair in the product of Dates and
// Slots.
type ApplyInput struct {
	Dates     []domain.DateKey
	Slots     []domain.TimeSlot
	EventType domain.EventType
	Details   Details
}

// CopyToken identifies a copied day held by the calendar until it is pasted
// or replaced by another copy.
type CopyToken struct {
	ID     string
	Source domain.DateKey
}
