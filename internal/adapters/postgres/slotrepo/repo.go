package slotrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weekendsync/availability-api/internal/domain"
	"github.com/weekendsync/availability-api/internal/ports/out/slotrepo"
)

// Repo is a Postgres implementation of slotrepo.Repository backed by the
// availability table, primary-keyed on (user_id, date, time_slot).
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Save(ctx context.Context, row slotrepo.Row) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	updatedAt := row.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO availability (
			user_id, date, time_slot, status, event_type,
			travel_destination, restaurant_name, restaurant_location,
			event_name, event_location, wedding_location, event_url,
			partners, notes, private_notes, privacy_level, updated_at
		)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (user_id, date, time_slot) DO UPDATE
		SET status = EXCLUDED.status,
		    event_type = EXCLUDED.event_type,
		    travel_destination = EXCLUDED.travel_destination,
		    restaurant_name = EXCLUDED.restaurant_name,
		    restaurant_location = EXCLUDED.restaurant_location,
		    event_name = EXCLUDED.event_name,
		    event_location = EXCLUDED.event_location,
		    wedding_location = EXCLUDED.wedding_location,
		    event_url = EXCLUDED.event_url,
		    partners = EXCLUDED.partners,
		    notes = EXCLUDED.notes,
		    private_notes = EXCLUDED.private_notes,
		    privacy_level = EXCLUDED.privacy_level,
		    updated_at = EXCLUDED.updated_at
	`,
		string(row.UserID), string(row.Date), string(row.Slot),
		string(row.Status), string(row.EventType),
		textOrNil(row.Destination), textOrNil(row.RestaurantName), textOrNil(row.RestaurantPlace),
		textOrNil(row.EventName), textOrNil(row.EventPlace), textOrNil(row.WeddingPlace), textOrNil(row.EventURL),
		partnersOrNil(row.Partners), textOrNil(row.Notes), textOrNil(row.PrivateNotes),
		string(privacyOrDefault(row.Privacy)), updatedAt.UTC(),
	)
	return err
}

func (r *Repo) FetchRange(ctx context.Context, userID domain.UserID, start, end domain.DateKey) ([]slotrepo.Row, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT date, time_slot, status, event_type,
		       travel_destination, restaurant_name, restaurant_location,
		       event_name, event_location, wedding_location, event_url,
		       partners, notes, private_notes, privacy_level, updated_at
		FROM availability
		WHERE user_id = $1 AND date BETWEEN $2::date AND $3::date
		ORDER BY date ASC,
		         CASE time_slot WHEN 'morning' THEN 0 WHEN 'afternoon' THEN 1 ELSE 2 END ASC
	`, string(userID), string(start), string(end))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]slotrepo.Row, 0)
	for rows.Next() {
		var (
			date      time.Time
			slot      string
			status    string
			eventType string
			dest, restName, restLoc, evName, evLoc, wedLoc, evURL *string
			partners  []string
			notes, privNotes *string
			privacy   *string
			updatedAt time.Time
		)
		if err := rows.Scan(
			&date, &slot, &status, &eventType,
			&dest, &restName, &restLoc, &evName, &evLoc, &wedLoc, &evURL,
			&partners, &notes, &privNotes, &privacy, &updatedAt,
		); err != nil {
			return nil, err
		}
		row := slotrepo.Row{
			UserID:          userID,
			Date:            domain.DateKeyFromTime(date),
			Slot:            domain.TimeSlot(slot),
			Status:          domain.Status(status),
			EventType:       domain.EventType(eventType),
			Destination:     deref(dest),
			RestaurantName:  deref(restName),
			RestaurantPlace: deref(restLoc),
			EventName:       deref(evName),
			EventPlace:      deref(evLoc),
			WeddingPlace:    deref(wedLoc),
			EventURL:        deref(evURL),
			Notes:           deref(notes),
			PrivateNotes:    deref(privNotes),
			Privacy:         privacyOrDefault(domain.PrivacyLevel(deref(privacy))),
			UpdatedAt:       updatedAt.UTC(),
		}
		for _, p := range partners {
			row.Partners = append(row.Partners, domain.FriendID(p))
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Remove(ctx context.Context, userID domain.UserID, date domain.DateKey, slot *domain.TimeSlot) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	if slot != nil {
		_, err := r.pool.Exec(ctx, `
			DELETE FROM availability
			WHERE user_id = $1 AND date = $2::date AND time_slot = $3
		`, string(userID), string(date), string(*slot))
		return err
	}
	_, err := r.pool.Exec(ctx, `
		DELETE FROM availability
		WHERE user_id = $1 AND date = $2::date
	`, string(userID), string(date))
	return err
}

func textOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func partnersOrNil(ps []domain.FriendID) []string {
	if len(ps) == 0 {
		return nil
	}
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, string(p))
	}
	return out
}

func privacyOrDefault(p domain.PrivacyLevel) domain.PrivacyLevel {
	if p == domain.PrivacyPrivate {
		return domain.PrivacyPrivate
	}
	return domain.PrivacyPublic
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
