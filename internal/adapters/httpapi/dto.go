package httpapi

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/weekendsync/availability-api/internal/app/availability"
	"github.com/weekendsync/availability-api/internal/domain"
)

// Wire shapes. Dates travel as "YYYY-MM-DD" via openapi date types; private
// notes are included because the API serves only the record owner.

type SlotDetailsDTO struct {
	Destination        string   `json:"destination,omitempty"`
	RestaurantName     string   `json:"restaurantName,omitempty"`
	RestaurantLocation string   `json:"restaurantLocation,omitempty"`
	EventName          string   `json:"eventName,omitempty"`
	EventLocation      string   `json:"eventLocation,omitempty"`
	WeddingLocation    string   `json:"weddingLocation,omitempty"`
	EventUrl           string   `json:"eventUrl,omitempty"`
	Partners           []string `json:"partners,omitempty"`
	Notes              string   `json:"notes,omitempty"`
	PrivateNotes       string   `json:"privateNotes,omitempty"`
	PrivacyLevel       string   `json:"privacyLevel,omitempty"`
}

type SlotEntryDTO struct {
	Slot      string         `json:"slot"`
	Status    string         `json:"status"`
	EventType string         `json:"eventType"`
	Details   SlotDetailsDTO `json:"details"`
}

type DayDTO struct {
	Date    openapi_types.Date `json:"date"`
	Summary string             `json:"summary"`
	FullDay bool               `json:"fullDay"`
	Slots   []SlotEntryDTO     `json:"slots"`
}

type AvailabilityResponse struct {
	Days []DayDTO `json:"days"`
}

type ApplyRequest struct {
	Dates     []openapi_types.Date `json:"dates,omitempty"`
	Start     *openapi_types.Date  `json:"start,omitempty"`
	End       *openapi_types.Date  `json:"end,omitempty"`
	Slots     []string             `json:"slots,omitempty"`
	EventType string               `json:"eventType"`
	Details   SlotDetailsDTO       `json:"details"`
}

type EventDTO struct {
	Start     openapi_types.Date `json:"start"`
	End       openapi_types.Date `json:"end"`
	EventType string             `json:"eventType"`
	Title     string             `json:"title"`
	Location  string             `json:"location,omitempty"`
	Notes     string             `json:"notes,omitempty"`
	Partners  []string           `json:"partners,omitempty"`
}

type EventsResponse struct {
	Events []EventDTO `json:"events"`
}

func toDateDTO(key domain.DateKey) openapi_types.Date {
	t, _ := key.Time()
	return openapi_types.Date{Time: t}
}

func fromDateDTO(d openapi_types.Date) domain.DateKey {
	return domain.DateKeyFromTime(d.Time)
}

func toDetailsDTO(d domain.SlotDetails) SlotDetailsDTO {
	out := SlotDetailsDTO{
		Destination:        d.Destination,
		RestaurantName:     d.RestaurantName,
		RestaurantLocation: d.RestaurantPlace,
		EventName:          d.EventName,
		EventLocation:      d.EventPlace,
		WeddingLocation:    d.WeddingPlace,
		EventUrl:           d.EventURL,
		Notes:              d.Notes,
		PrivateNotes:       d.PrivateNotes,
		PrivacyLevel:       string(d.Privacy),
	}
	for _, p := range d.Partners {
		out.Partners = append(out.Partners, string(p))
	}
	return out
}

func fromDetailsDTO(d SlotDetailsDTO) availability.Details {
	out := availability.Details{
		Destination:     d.Destination,
		RestaurantName:  d.RestaurantName,
		RestaurantPlace: d.RestaurantLocation,
		EventName:       d.EventName,
		EventPlace:      d.EventLocation,
		WeddingPlace:    d.WeddingLocation,
		EventURL:        d.EventUrl,
		Notes:           d.Notes,
		PrivateNotes:    d.PrivateNotes,
		Privacy:         domain.PrivacyLevel(d.PrivacyLevel),
	}
	for _, p := range d.Partners {
		out.Partners = append(out.Partners, domain.FriendID(p))
	}
	return out
}

func toDayDTO(date domain.DateKey, day domain.DayRecord) DayDTO {
	out := DayDTO{
		Date:    toDateDTO(date),
		Summary: string(day.Summary()),
		FullDay: day.IsFullDay(),
		Slots:   make([]SlotEntryDTO, 0, len(day)),
	}
	for _, slot := range domain.TimeSlots {
		e, ok := day[slot]
		if !ok {
			continue
		}
		out.Slots = append(out.Slots, SlotEntryDTO{
			Slot:      string(slot),
			Status:    string(e.Status),
			EventType: string(e.EventType),
			Details:   toDetailsDTO(e.Details),
		})
	}
	return out
}

func toEventDTO(e domain.MergedEvent) EventDTO {
	out := EventDTO{
		Start:     toDateDTO(e.Start),
		End:       toDateDTO(e.End),
		EventType: string(e.EventType),
		Title:     e.Title(),
		Location:  e.Location,
		Notes:     e.Notes,
	}
	for _, p := range e.Partners {
		out.Partners = append(out.Partners, string(p))
	}
	return out
}
