package slotrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/weekendsync/availability-api/internal/domain"
	"github.com/weekendsync/availability-api/internal/ports/out/slotrepo"
)

type rowKey struct {
	user domain.UserID
	date domain.DateKey
	slot domain.TimeSlot
}

// Repo is an in-memory implementation of slotrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	rows map[rowKey]slotrepo.Row
}

func NewRepo() *Repo {
	return &Repo{
		rows: make(map[rowKey]slotrepo.Row),
	}
}

func (r *Repo) Save(ctx context.Context, row slotrepo.Row) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[rowKey{row.UserID, row.Date, row.Slot}] = cloneRow(row)
	return nil
}

func (r *Repo) FetchRange(ctx context.Context, userID domain.UserID, start, end domain.DateKey) ([]slotrepo.Row, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]slotrepo.Row, 0)
	for k, row := range r.rows {
		if k.user != userID {
			continue
		}
		if k.date < start || k.date > end {
			continue
		}
		out = append(out, cloneRow(row))
	}
	sortRows(out)
	return out, nil
}

func (r *Repo) Remove(ctx context.Context, userID domain.UserID, date domain.DateKey, slot *domain.TimeSlot) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if slot != nil {
		delete(r.rows, rowKey{userID, date, *slot})
		return nil
	}
	for _, s := range domain.TimeSlots {
		delete(r.rows, rowKey{userID, date, s})
	}
	return nil
}

func cloneRow(row slotrepo.Row) slotrepo.Row {
	cp := row
	if row.Partners != nil {
		cp.Partners = append([]domain.FriendID(nil), row.Partners...)
	}
	return cp
}

func slotRank(s domain.TimeSlot) int {
	for i, v := range domain.TimeSlots {
		if v == s {
			return i
		}
	}
	return len(domain.TimeSlots)
}

func sortRows(rows []slotrepo.Row) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return slotRank(rows[i].Slot) < slotRank(rows[j].Slot)
	})
}
