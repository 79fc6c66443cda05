// Package state is the per-session state container: search slots, the booking flow and UI chrome.
// A Store is owned by one session and only changes through Dispatch.
package state

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"travel_booking/internal/domain"
)

type model struct {
	search     map[domain.CatalogType]*domain.SearchResultSet
	issued     map[domain.CatalogType]uint64
	flow       Flow
	draftSeq   uint64
	bookings   []domain.Booking
	loading    bool
	bookingErr string
	ui         UI
}

func (m *model) slot(t domain.CatalogType) (*domain.SearchResultSet, error) {
	s, ok := m.search[t]
	if !ok {
		return nil, fmt.Errorf("catalog type %q: %w", t, domain.ErrInvalidInput)
	}
	return s, nil
}

type Store struct {
	mu sync.RWMutex
	m  model
}

func New() *Store {
	st := &Store{m: model{
		search: map[domain.CatalogType]*domain.SearchResultSet{},
		issued: map[domain.CatalogType]uint64{},
		flow:   Empty{},
		ui: UI{
			SearchType: domain.Hotels,
			Modals:     map[Modal]bool{ModalLogin: false, ModalSignup: false, ModalBooking: false},
		},
	}}
	for _, t := range domain.CatalogTypes {
		st.m.search[t] = &domain.SearchResultSet{
			Type:    t,
			Items:   []domain.CatalogItem{},
			Filters: domain.DefaultFilters(t),
			Sort:    domain.SortPrice,
			Page:    1,
		}
	}
	return st
}

// Dispatch applies one action. A failed action leaves the state untouched.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return a.reduce(&s.m)
}

// StartSearch dispatches StartSearch and returns the sequence number the completion must carry.
func (s *Store) StartSearch(t domain.CatalogType, c domain.SearchCriteria) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := (StartSearch{Type: t, Criteria: c}).reduce(&s.m); err != nil {
		return 0, err
	}
	return s.m.issued[t], nil
}

// BeginPayment dispatches BeginPayment and returns the draft being paid for together with
// the sequence number ConfirmBooking and FailBooking must carry.
func (s *Store) BeginPayment() (domain.BookingDraft, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := (BeginPayment{}).reduce(&s.m); err != nil {
		return domain.BookingDraft{}, 0, err
	}
	f := s.m.flow.(Finalizing)
	return cloneDraft(f.Draft), f.Seq, nil
}

func (s *Store) Search(t domain.CatalogType) (domain.SearchResultSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot, err := s.m.slot(t)
	if err != nil {
		return domain.SearchResultSet{}, err
	}
	out := *slot
	out.Items = slices.Clone(slot.Items)
	out.Filters = slot.Filters.Clone()
	if slot.Criteria.Near != nil {
		n := *slot.Criteria.Near
		out.Criteria.Near = &n
	}
	return out, nil
}

type BookingSnapshot struct {
	Phase     Phase                `json:"phase"`
	Draft     *domain.BookingDraft `json:"currentBooking"`
	Confirmed *domain.Booking      `json:"confirmed,omitempty"`
	Bookings  []domain.Booking     `json:"bookings"`
	Loading   bool                 `json:"loading"`
	Error     string               `json:"error,omitempty"`
}

func (s *Store) Booking() BookingSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := BookingSnapshot{
		Phase:    s.m.flow.Phase(),
		Bookings: make([]domain.Booking, 0, len(s.m.bookings)),
		Loading:  s.m.loading,
		Error:    s.m.bookingErr,
	}
	if d, ok := draftOf(s.m.flow); ok {
		d = cloneDraft(d)
		out.Draft = &d
	}
	if c, ok := s.m.flow.(Confirmed); ok {
		b := cloneBooking(c.Booking)
		out.Confirmed = &b
	}
	for _, b := range s.m.bookings {
		out.Bookings = append(out.Bookings, cloneBooking(b))
	}
	return out
}

// Flow returns the current booking flow variant.
func (s *Store) Flow() Flow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch v := s.m.flow.(type) {
	case Drafting:
		return Drafting{Draft: cloneDraft(v.Draft)}
	case Finalizing:
		return Finalizing{Draft: cloneDraft(v.Draft), Seq: v.Seq}
	case Confirmed:
		return Confirmed{Booking: cloneBooking(v.Booking)}
	}
	return Empty{}
}

type UI struct {
	SearchType domain.CatalogType `json:"searchType"`
	Modals     map[Modal]bool     `json:"modals"`
	Loading    bool               `json:"loading"`
	Error      string             `json:"error,omitempty"`
}

func (s *Store) UI() UI {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.m.ui
	out.Modals = maps.Clone(s.m.ui.Modals)
	return out
}

func cloneDraft(d domain.BookingDraft) domain.BookingDraft {
	if d.Hotel != nil {
		h := *d.Hotel
		d.Hotel = &h
	}
	if d.Flight != nil {
		f := *d.Flight
		f.Passengers = slices.Clone(f.Passengers)
		d.Flight = &f
	}
	if d.Car != nil {
		c := *d.Car
		c.Insurance = slices.Clone(c.Insurance)
		d.Car = &c
	}
	return d
}

func cloneBooking(b domain.Booking) domain.Booking {
	if b.Hotel != nil {
		h := *b.Hotel
		b.Hotel = &h
	}
	if b.Flight != nil {
		f := *b.Flight
		f.Passengers = slices.Clone(f.Passengers)
		b.Flight = &f
	}
	if b.Car != nil {
		c := *b.Car
		c.Insurance = slices.Clone(c.Insurance)
		b.Car = &c
	}
	if b.Payment.Billing != nil {
		a := *b.Payment.Billing
		b.Payment.Billing = &a
	}
	return b
}
