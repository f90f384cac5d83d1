package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/weekendsync/availability-api/internal/app/availability"
	"github.com/weekendsync/availability-api/internal/domain"
	"github.com/weekendsync/availability-api/internal/ports/out/clock"
	"github.com/weekendsync/availability-api/internal/ports/out/slotrepo"
)

// Server is the HTTP adapter. Each request builds a calendar for the
// authenticated user on top of the shared repository; the HTTP surface is
// stateless, so copy/paste and undo history live only in embedding callers,
// not here.
type Server struct {
	Repo   slotrepo.Repository
	Clock  clock.Clock
	Logger *slog.Logger
}

func NewServer(repo slotrepo.Repository, clk clock.Clock, logger *slog.Logger) *Server {
	return &Server{Repo: repo, Clock: clk, Logger: logger}
}

func (s *Server) calendarFor(user domain.UserID) *availability.Calendar {
	return availability.NewCalendar(user, s.Repo, s.Clock)
}

// GET /v1/availability?start=YYYY-MM-DD&end=YYYY-MM-DD
func (s *Server) handleGetAvailability(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing user", nil)
		return
	}
	start, end, ok := rangeParams(w, r)
	if !ok {
		return
	}

	cal := s.calendarFor(user)
	if err := cal.Load(r.Context(), start, end); err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, availabilityResponse(cal.Store()))
}

// PUT /v1/availability
func (s *Server) handlePutAvailability(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing user", nil)
		return
	}

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "malformed JSON body", nil)
		return
	}

	dates := make([]domain.DateKey, 0, len(req.Dates))
	for _, d := range req.Dates {
		dates = append(dates, fromDateDTO(d))
	}
	if len(dates) == 0 && req.Start != nil && req.End != nil {
		dates = domain.DateKeysInRange(fromDateDTO(*req.Start), fromDateDTO(*req.End))
	}
	slots := make([]domain.TimeSlot, 0, len(req.Slots))
	for _, sl := range req.Slots {
		slots = append(slots, domain.TimeSlot(sl))
	}
	if len(slots) == 0 {
		slots = domain.TimeSlots
	}

	cal := s.calendarFor(user)
	err := cal.ApplyAvailability(r.Context(), availability.ApplyInput{
		Dates:     dates,
		Slots:     slots,
		EventType: domain.EventType(req.EventType),
		Details:   fromDetailsDTO(req.Details),
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, availabilityResponse(cal.Store()))
}

// DELETE /v1/availability/{date}?slot=morning
func (s *Server) handleDeleteAvailability(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing user", nil)
		return
	}
	date := domain.DateKey(chi.URLParam(r, "date"))

	cal := s.calendarFor(user)
	var err error
	if raw := r.URL.Query().Get("slot"); raw != "" {
		err = cal.DeleteSlot(r.Context(), date, domain.TimeSlot(raw))
	} else {
		err = cal.ClearDay(r.Context(), date)
	}
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /v1/events?start=YYYY-MM-DD&end=YYYY-MM-DD
func (s *Server) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing user", nil)
		return
	}
	start, end, ok := rangeParams(w, r)
	if !ok {
		return
	}

	cal := s.calendarFor(user)
	if err := cal.Load(r.Context(), start, end); err != nil {
		writeAppError(w, r, err)
		return
	}

	events := cal.UpcomingEvents()
	out := EventsResponse{Events: make([]EventDTO, 0, len(events))}
	for _, e := range events {
		out.Events = append(out.Events, toEventDTO(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func rangeParams(w http.ResponseWriter, r *http.Request) (start, end domain.DateKey, ok bool) {
	start = domain.DateKey(r.URL.Query().Get("start"))
	end = domain.DateKey(r.URL.Query().Get("end"))
	if !start.Valid() || !end.Valid() {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"start and end must be YYYY-MM-DD dates",
			map[string]any{"start": string(start), "end": string(end)})
		return "", "", false
	}
	return start, end, true
}

func availabilityResponse(store domain.Store) AvailabilityResponse {
	out := AvailabilityResponse{Days: make([]DayDTO, 0, store.Len())}
	for _, key := range store.Keys() {
		day, _ := store.Get(key)
		out.Days = append(out.Days, toDayDTO(key, day))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
