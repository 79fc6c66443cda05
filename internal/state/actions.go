package state

import (
	"errors"
	"fmt"
	"slices"

	"travel_booking/internal/domain"
)

// ErrStale is returned when a search completion carries a sequence number that is no longer the latest.
var ErrStale = errors.New("superseded search completion")

// Action is a typed state transition. Only Store.Dispatch applies them.
type Action interface {
	reduce(m *model) error
}

// Search actions.

type StartSearch struct {
	Type     domain.CatalogType
	Criteria domain.SearchCriteria
}

type CompleteSearch struct {
	Type       domain.CatalogType
	Seq        uint64
	Items      []domain.CatalogItem
	TotalPages int
}

type FailSearch struct {
	Type  domain.CatalogType
	Seq   uint64
	Error string
}

type SetFilters struct {
	Type  domain.CatalogType
	Patch domain.FiltersPatch
}

type ResetFilters struct{ Type domain.CatalogType }

type SetSort struct {
	Type domain.CatalogType
	Key  domain.SortKey
}

type SetPage struct {
	Type domain.CatalogType
	Page int
}

type ClearResults struct{ Type domain.CatalogType }

func (a StartSearch) reduce(m *model) error {
	s, err := m.slot(a.Type)
	if err != nil {
		return err
	}
	m.issued[a.Type]++
	s.Seq = m.issued[a.Type]
	s.Loading = true
	s.Error = ""
	s.Criteria = a.Criteria
	return nil
}

func (a CompleteSearch) reduce(m *model) error {
	s, err := m.slot(a.Type)
	if err != nil {
		return err
	}
	if a.Seq != m.issued[a.Type] {
		return ErrStale
	}
	s.Loading = false
	s.Items = slices.Clone(a.Items)
	if s.Items == nil {
		s.Items = []domain.CatalogItem{}
	}
	s.TotalPages = a.TotalPages
	return nil
}

func (a FailSearch) reduce(m *model) error {
	s, err := m.slot(a.Type)
	if err != nil {
		return err
	}
	if a.Seq != m.issued[a.Type] {
		return ErrStale
	}
	s.Loading = false
	s.Error = a.Error
	return nil
}

func (a SetFilters) reduce(m *model) error {
	s, err := m.slot(a.Type)
	if err != nil {
		return err
	}
	s.Filters = s.Filters.Merge(a.Patch)
	return nil
}

func (a ResetFilters) reduce(m *model) error {
	s, err := m.slot(a.Type)
	if err != nil {
		return err
	}
	s.Filters = domain.DefaultFilters(a.Type)
	return nil
}

func (a SetSort) reduce(m *model) error {
	s, err := m.slot(a.Type)
	if err != nil {
		return err
	}
	s.Sort = a.Key
	return nil
}

func (a SetPage) reduce(m *model) error {
	s, err := m.slot(a.Type)
	if err != nil {
		return err
	}
	if a.Page < 1 {
		return fmt.Errorf("page %d: %w", a.Page, domain.ErrInvalidInput)
	}
	s.Page = a.Page
	return nil
}

func (a ClearResults) reduce(m *model) error {
	s, err := m.slot(a.Type)
	if err != nil {
		return err
	}
	s.Items = []domain.CatalogItem{}
	s.TotalPages = 0
	s.Page = 1
	s.Error = ""
	return nil
}

// Booking actions.

type StartBooking struct{ Draft domain.BookingDraft }

type UpdateDraft struct{ Patch domain.DraftPatch }

type BeginPayment struct{}

// FailBooking and ConfirmBooking carry the Seq BeginPayment issued. Seq 0 applies to
// whatever draft is in progress.
type FailBooking struct {
	Error string
	Seq   uint64
}

type ConfirmBooking struct {
	Booking domain.Booking
	Seq     uint64
}

type CancelBooking struct{ ID string }

type ClearDraft struct{}

type ClearBookingError struct{}

type LoadBookings struct{ Bookings []domain.Booking }

// StartBooking always replaces whatever draft exists. Nothing of the previous draft survives,
// and a payment still running for it can no longer confirm.
func (a StartBooking) reduce(m *model) error {
	m.draftSeq++
	m.flow = Drafting{Draft: cloneDraft(a.Draft)}
	m.loading = false
	m.bookingErr = ""
	return nil
}

func (a UpdateDraft) reduce(m *model) error {
	d, ok := m.flow.(Drafting)
	if !ok {
		if m.flow.Phase() == PhaseFinalizing {
			return fmt.Errorf("update while finalizing: %w", domain.ErrInvalidTransition)
		}
		return domain.ErrNoDraft
	}
	draft := d.Draft
	p := a.Patch
	if p.Hotel != nil {
		h := *p.Hotel
		draft.Hotel = &h
	}
	if p.Flight != nil {
		f := *p.Flight
		f.Passengers = slices.Clone(f.Passengers)
		draft.Flight = &f
	}
	if p.Car != nil {
		c := *p.Car
		c.Insurance = slices.Clone(c.Insurance)
		draft.Car = &c
	}
	if p.TotalPrice != nil {
		draft.TotalPrice = *p.TotalPrice
	}
	if p.Taxes != nil {
		draft.Taxes = *p.Taxes
	}
	m.flow = Drafting{Draft: draft}
	return nil
}

func (BeginPayment) reduce(m *model) error {
	d, ok := m.flow.(Drafting)
	if !ok {
		if _, has := draftOf(m.flow); has {
			return fmt.Errorf("payment already in progress: %w", domain.ErrInvalidTransition)
		}
		return domain.ErrNoDraft
	}
	m.flow = Finalizing{Draft: d.Draft, Seq: m.draftSeq}
	m.loading = true
	m.bookingErr = ""
	return nil
}

// FailBooking returns a finalizing flow to drafting so the user can retry.
// A failure for a draft that was replaced or cleared meanwhile changes nothing.
func (a FailBooking) reduce(m *model) error {
	f, ok := m.flow.(Finalizing)
	if a.Seq != 0 && (!ok || f.Seq != a.Seq) {
		return nil
	}
	m.loading = false
	m.bookingErr = a.Error
	if ok {
		m.flow = Drafting{Draft: f.Draft}
	}
	return nil
}

// ConfirmBooking with a Seq only applies while that same draft is finalizing.
func (a ConfirmBooking) reduce(m *model) error {
	if a.Seq != 0 {
		f, ok := m.flow.(Finalizing)
		if !ok || f.Seq != a.Seq {
			if _, has := draftOf(m.flow); !has {
				return domain.ErrNoDraft
			}
			return fmt.Errorf("draft replaced during payment: %w", domain.ErrInvalidTransition)
		}
	} else if _, ok := draftOf(m.flow); !ok {
		return domain.ErrNoDraft
	}
	b := cloneBooking(a.Booking)
	m.bookings = append(m.bookings, b)
	m.flow = Confirmed{Booking: b}
	m.loading = false
	m.bookingErr = ""
	return nil
}

// CancelBooking is a no-op for unknown ids and for bookings already cancelled.
func (a CancelBooking) reduce(m *model) error {
	for i := range m.bookings {
		if m.bookings[i].ID == a.ID {
			m.bookings[i].Cancel()
			return nil
		}
	}
	return nil
}

func (ClearDraft) reduce(m *model) error {
	m.flow = Empty{}
	m.loading = false
	return nil
}

func (ClearBookingError) reduce(m *model) error {
	m.bookingErr = ""
	return nil
}

func (a LoadBookings) reduce(m *model) error {
	m.bookings = make([]domain.Booking, 0, len(a.Bookings))
	for _, b := range a.Bookings {
		m.bookings = append(m.bookings, cloneBooking(b))
	}
	return nil
}

// UI chrome actions.

type Modal string

const (
	ModalLogin   Modal = "login"
	ModalSignup  Modal = "signup"
	ModalBooking Modal = "booking"
)

func ParseModal(s string) (Modal, bool) {
	switch Modal(s) {
	case ModalLogin, ModalSignup, ModalBooking:
		return Modal(s), true
	}
	return "", false
}

type SetSearchType struct{ Type domain.CatalogType }

type OpenModal struct{ Modal Modal }

type CloseModal struct{ Modal Modal }

type CloseAllModals struct{}

type SetLoading struct{ Loading bool }

type SetError struct{ Error string }

func (a SetSearchType) reduce(m *model) error {
	if _, ok := domain.ParseCatalogType(string(a.Type)); !ok {
		return fmt.Errorf("search type %q: %w", a.Type, domain.ErrInvalidInput)
	}
	m.ui.SearchType = a.Type
	return nil
}

func (a OpenModal) reduce(m *model) error {
	if _, ok := ParseModal(string(a.Modal)); !ok {
		return fmt.Errorf("modal %q: %w", a.Modal, domain.ErrInvalidInput)
	}
	m.ui.Modals[a.Modal] = true
	return nil
}

func (a CloseModal) reduce(m *model) error {
	if _, ok := ParseModal(string(a.Modal)); !ok {
		return fmt.Errorf("modal %q: %w", a.Modal, domain.ErrInvalidInput)
	}
	m.ui.Modals[a.Modal] = false
	return nil
}

func (CloseAllModals) reduce(m *model) error {
	for k := range m.ui.Modals {
		m.ui.Modals[k] = false
	}
	return nil
}

func (a SetLoading) reduce(m *model) error {
	m.ui.Loading = a.Loading
	return nil
}

func (a SetError) reduce(m *model) error {
	m.ui.Error = a.Error
	return nil
}
