// Package memory keeps bookings and event logs in process memory, for runs without MySQL.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"travel_booking/internal/domain"
)

type Repo struct {
	mu       sync.RWMutex
	bookings []domain.Booking
	events   []domain.EventLog
	nextID   int64
}

func New() *Repo { return &Repo{} }

func (r *Repo) SaveBooking(ctx context.Context, b domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == b.ID {
			r.bookings[i] = b
			return nil
		}
	}
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *Repo) UpdateStatus(ctx context.Context, id string, s domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID != id {
			continue
		}
		if s == domain.StatusCancelled {
			r.bookings[i].Cancel()
		} else if r.bookings[i].Status != domain.StatusCancelled {
			r.bookings[i].Status = s
		}
		return nil
	}
	return domain.ErrNotFound
}

func (r *Repo) GetBooking(ctx context.Context, id, userID string) (domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bookings {
		if b.ID == id && b.UserID == userID {
			return b, nil
		}
	}
	return domain.Booking{}, domain.ErrNotFound
}

// ListBookings returns the user's bookings, newest first.
func (r *Repo) ListBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Booking{}
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Booking) int { return b.BookingDate.Compare(a.BookingDate) })
	return out, nil
}

func (r *Repo) InsertEvent(ctx context.Context, e domain.EventLog) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	e.ID = r.nextID
	e.Metadata = maps.Clone(e.Metadata)
	r.events = append(r.events, e)
	return e.ID, nil
}

// ListEvents filters like the SQL repo: exact matches, newest first, then limit/offset.
func (r *Repo) ListEvents(ctx context.Context, q domain.EventQuery) (domain.EventsPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var hit []domain.EventLog
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		if q.UserID != "" && e.UserID != q.UserID {
			continue
		}
		if q.SessionID != "" && e.SessionID != q.SessionID {
			continue
		}
		if q.EventType != "" && string(e.EventType) != q.EventType {
			continue
		}
		hit = append(hit, e)
	}
	page := domain.EventsPage{Events: []domain.EventLog{}, Total: int64(len(hit))}
	if q.Offset < len(hit) {
		end := len(hit)
		if q.Limit > 0 {
			end = min(end, q.Offset+q.Limit)
		}
		page.Events = append(page.Events, hit[q.Offset:end]...)
	}
	return page, nil
}
