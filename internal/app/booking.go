package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"travel_booking/internal/adapters/observability"
	"travel_booking/internal/catalog"
	"travel_booking/internal/domain"
	"travel_booking/internal/state"
)

// Tax rates shown on the quote of each booking type.
const (
	HotelTaxRate  = 0.15
	FlightTaxRate = 0.20
	CarTaxRate    = 0.10
)

const paymentFailed = "Payment failed. Please try again."

const dateLayout = "2006-01-02"

type HotelRequest struct {
	HotelID  string `json:"hotelId"`
	RoomID   string `json:"roomId"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Guests   int    `json:"guests"`
	Rooms    int    `json:"rooms"`
}

type FlightRequest struct {
	FlightID   string             `json:"flightId"`
	Count      int                `json:"passengerCount"`
	Passengers []domain.Passenger `json:"passengers"`
}

type CarRequest struct {
	CarID       string   `json:"carId"`
	PickupDate  string   `json:"pickupDate"`
	DropoffDate string   `json:"dropoffDate"`
	DriverAge   int      `json:"driverAge"`
	Insurance   []string `json:"insurance"`
}

// Checkout is what the traveler and payment steps collect before confirming.
type Checkout struct {
	Traveler domain.TravelerInfo `json:"travelerInfo"`
	Payment  domain.PaymentInfo  `json:"paymentInfo"`
}

type BookingService struct {
	cat          *catalog.Catalog
	repo         domain.BookingRepository
	events       domain.EventRepository
	paymentDelay time.Duration
	now          func() time.Time
	newID        func() string
}

// NewBookingService wires the booking flow. repo and events may be nil; persistence is then skipped.
func NewBookingService(cat *catalog.Catalog, repo domain.BookingRepository, events domain.EventRepository, paymentDelay time.Duration) *BookingService {
	return &BookingService{
		cat: cat, repo: repo, events: events, paymentDelay: paymentDelay,
		now:   time.Now,
		newID: NewBookingID,
	}
}

// NewBookingID returns a reference like TRV-1A2B3C4D.
func NewBookingID() string {
	id := uuid.New()
	return "TRV-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

func (s *BookingService) QuoteHotel(req HotelRequest) (domain.BookingDraft, error) {
	h, err := s.cat.Hotel(req.HotelID)
	if err != nil {
		return domain.BookingDraft{}, fmt.Errorf("hotel %s: %w", req.HotelID, err)
	}
	if req.RoomID == "" && len(h.Rooms) > 0 {
		req.RoomID = h.Rooms[0].ID
	}
	room, ok := h.Room(req.RoomID)
	if !ok {
		return domain.BookingDraft{}, fmt.Errorf("room %s: %w", req.RoomID, domain.ErrNotFound)
	}
	if !room.Available {
		return domain.BookingDraft{}, fmt.Errorf("room %s: %w", room.ID, domain.ErrUnavailable)
	}
	if req.Guests <= 0 {
		req.Guests = DefaultGuests
	}
	if req.Rooms <= 0 {
		req.Rooms = DefaultRooms
	}
	if req.Guests > room.MaxGuests*req.Rooms {
		return domain.BookingDraft{}, fmt.Errorf("%d guests in %d x %s: %w", req.Guests, req.Rooms, room.Name, domain.ErrInvalidInput)
	}
	subtotal := room.Price * float64(req.Rooms) * float64(Days(req.CheckIn, req.CheckOut))
	return domain.BookingDraft{
		Type: domain.BookHotel,
		Item: h,
		Hotel: &domain.HotelLeg{
			HotelID: h.ID, RoomID: room.ID, CheckIn: req.CheckIn, CheckOut: req.CheckOut,
			Guests: req.Guests, Rooms: req.Rooms,
		},
		TotalPrice: subtotal,
		Taxes:      tax(subtotal, HotelTaxRate),
	}, nil
}

func (s *BookingService) QuoteFlight(req FlightRequest) (domain.BookingDraft, error) {
	f, err := s.cat.Flight(req.FlightID)
	if err != nil {
		return domain.BookingDraft{}, fmt.Errorf("flight %s: %w", req.FlightID, err)
	}
	count := max(req.Count, len(req.Passengers))
	if count <= 0 {
		count = DefaultPassengers
	}
	subtotal := f.Price * float64(count)
	return domain.BookingDraft{
		Type:       domain.BookFlight,
		Item:       f,
		Flight:     &domain.FlightLeg{FlightID: f.ID, Passengers: req.Passengers, Count: count},
		TotalPrice: subtotal,
		Taxes:      tax(subtotal, FlightTaxRate),
	}, nil
}

func (s *BookingService) QuoteCar(req CarRequest) (domain.BookingDraft, error) {
	c, err := s.cat.Car(req.CarID)
	if err != nil {
		return domain.BookingDraft{}, fmt.Errorf("car %s: %w", req.CarID, err)
	}
	if !c.Available {
		return domain.BookingDraft{}, fmt.Errorf("car %s: %w", c.ID, domain.ErrUnavailable)
	}
	if req.DriverAge <= 0 {
		req.DriverAge = DefaultDriverAge
	}
	if req.DriverAge < c.Rental.Requirements.MinAge {
		return domain.BookingDraft{}, fmt.Errorf("driver aged %d, minimum %d: %w", req.DriverAge, c.Rental.Requirements.MinAge, domain.ErrUnderage)
	}
	days := float64(Days(req.PickupDate, req.DropoffDate))
	subtotal := c.Price * days
	for _, name := range req.Insurance {
		opt, ok := c.InsuranceOption(name)
		if !ok {
			return domain.BookingDraft{}, fmt.Errorf("insurance %q: %w", name, domain.ErrInvalidInput)
		}
		subtotal += opt.Price * days
	}
	cover := append(append([]string{}, c.Insurance.Included...), req.Insurance...)
	return domain.BookingDraft{
		Type: domain.BookCar,
		Item: c,
		Car: &domain.CarLeg{
			CarID: c.ID, PickupDate: req.PickupDate, DropoffDate: req.DropoffDate,
			PickupLocation: c.Location.PickupAddress, DropoffLocation: c.Location.PickupAddress,
			DriverAge: req.DriverAge, Insurance: cover,
		},
		TotalPrice: subtotal,
		Taxes:      tax(subtotal, CarTaxRate),
	}, nil
}

// StartHotel, StartFlight and StartCar quote the request and replace the session's draft with it.
func (s *BookingService) StartHotel(ctx context.Context, st *state.Store, req HotelRequest) (domain.BookingDraft, error) {
	d, err := s.QuoteHotel(req)
	return s.start(st, d, err)
}

func (s *BookingService) StartFlight(ctx context.Context, st *state.Store, req FlightRequest) (domain.BookingDraft, error) {
	d, err := s.QuoteFlight(req)
	return s.start(st, d, err)
}

func (s *BookingService) StartCar(ctx context.Context, st *state.Store, req CarRequest) (domain.BookingDraft, error) {
	d, err := s.QuoteCar(req)
	return s.start(st, d, err)
}

func (s *BookingService) start(st *state.Store, d domain.BookingDraft, err error) (domain.BookingDraft, error) {
	if err != nil {
		return domain.BookingDraft{}, err
	}
	if err := st.Dispatch(state.StartBooking{Draft: d}); err != nil {
		return domain.BookingDraft{}, err
	}
	observability.ObserveBooking(string(d.Type), "started")
	return d, nil
}

// Confirm runs the simulated payment and turns the session's draft into a booking.
// On cancellation the flow returns to drafting with an error the user can retry from.
func (s *BookingService) Confirm(ctx context.Context, st *state.Store, userID string, co Checkout) (domain.Booking, error) {
	if co.Payment.Method == "" {
		co.Payment.Method = "card"
	}
	if err := validateCheckout(co); err != nil {
		return domain.Booking{}, err
	}
	d, seq, err := st.BeginPayment()
	if err != nil {
		return domain.Booking{}, err
	}

	if err := sleepCtx(ctx, s.paymentDelay); err != nil {
		_ = st.Dispatch(state.FailBooking{Error: paymentFailed, Seq: seq})
		observability.ObserveBooking(string(d.Type), "failed")
		return domain.Booking{}, fmt.Errorf("payment: %w", err)
	}

	b := domain.Booking{
		ID:          s.newID(),
		UserID:      userID,
		Type:        d.Type,
		Status:      domain.StatusConfirmed,
		BookingDate: s.now().UTC(),
		TotalPrice:  d.TotalPrice,
		Taxes:       d.Taxes,
		Traveler:    co.Traveler,
		Payment:     co.Payment.Mask(),
		Hotel:       d.Hotel,
		Flight:      d.Flight,
		Car:         d.Car,
	}
	if err := st.Dispatch(state.ConfirmBooking{Booking: b, Seq: seq}); err != nil {
		observability.ObserveBooking(string(d.Type), "failed")
		return domain.Booking{}, err
	}
	observability.ObserveBooking(string(b.Type), "confirmed")
	s.persist(ctx, b)
	return b, nil
}

// Create stores a booking built outside the session flow (the REST create endpoint).
func (s *BookingService) Create(ctx context.Context, userID string, b domain.Booking) (domain.Booking, error) {
	switch b.Type {
	case domain.BookHotel, domain.BookFlight, domain.BookCar:
	default:
		return domain.Booking{}, fmt.Errorf("booking type %q: %w", b.Type, domain.ErrInvalidInput)
	}
	b.ID = s.newID()
	b.UserID = userID
	b.Status = domain.StatusConfirmed
	b.BookingDate = s.now().UTC()
	if s.repo == nil {
		return b, nil
	}
	if err := s.repo.SaveBooking(ctx, b); err != nil {
		return domain.Booking{}, err
	}
	s.recordDBUpdate(ctx, "INSERT", b)
	observability.ObserveBooking(string(b.Type), "confirmed")
	return b, nil
}

// Cancel marks a booking cancelled in the session and the repository. Unknown ids are ErrNotFound.
func (s *BookingService) Cancel(ctx context.Context, st *state.Store, userID, id string) (domain.Booking, error) {
	_ = st.Dispatch(state.CancelBooking{ID: id})
	for _, b := range st.Booking().Bookings {
		if b.ID == id {
			s.cancelStored(ctx, b)
			observability.ObserveBooking(string(b.Type), "cancelled")
			return b, nil
		}
	}
	if s.repo == nil {
		return domain.Booking{}, domain.ErrNotFound
	}
	b, err := s.repo.GetBooking(ctx, id, userID)
	if err != nil {
		return domain.Booking{}, err
	}
	if b.Cancel() {
		s.cancelStored(ctx, b)
		observability.ObserveBooking(string(b.Type), "cancelled")
	}
	return b, nil
}

// LoadBookings replaces the session's booking list with the user's stored bookings.
func (s *BookingService) LoadBookings(ctx context.Context, st *state.Store, userID string) ([]domain.Booking, error) {
	if s.repo == nil {
		return st.Booking().Bookings, nil
	}
	bs, err := s.repo.ListBookings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := st.Dispatch(state.LoadBookings{Bookings: bs}); err != nil {
		return nil, err
	}
	return st.Booking().Bookings, nil
}

func (s *BookingService) Get(ctx context.Context, st *state.Store, userID, id string) (domain.Booking, error) {
	for _, b := range st.Booking().Bookings {
		if b.ID == id {
			return b, nil
		}
	}
	if s.repo == nil {
		return domain.Booking{}, domain.ErrNotFound
	}
	return s.repo.GetBooking(ctx, id, userID)
}

func (s *BookingService) persist(ctx context.Context, b domain.Booking) {
	if s.repo == nil {
		return
	}
	if err := s.repo.SaveBooking(ctx, b); err != nil {
		log.Warn().Err(err).Str("booking_id", b.ID).Msg("save booking failed")
		return
	}
	s.recordDBUpdate(ctx, "INSERT", b)
}

func (s *BookingService) cancelStored(ctx context.Context, b domain.Booking) {
	if s.repo == nil {
		return
	}
	if err := s.repo.UpdateStatus(ctx, b.ID, domain.StatusCancelled); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn().Err(err).Str("booking_id", b.ID).Msg("cancel booking failed")
		}
		return
	}
	s.recordDBUpdate(ctx, "UPDATE", b)
}

func (s *BookingService) recordDBUpdate(ctx context.Context, op string, b domain.Booking) {
	if s.events == nil {
		return
	}
	_, err := s.events.InsertEvent(ctx, domain.EventLog{
		EventType: domain.EventDBUpdate,
		Text:      fmt.Sprintf("Database %s on bookings", op),
		UserID:    b.UserID,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Metadata: map[string]any{
			"table": "bookings", "operation": op, "record_id": b.ID, "status": string(b.Status),
		},
		Source: "backend",
	})
	if err != nil {
		log.Warn().Err(err).Msg("record db update failed")
	}
}

func validateCheckout(co Checkout) error {
	t := co.Traveler
	if strings.TrimSpace(t.FirstName) == "" || strings.TrimSpace(t.LastName) == "" {
		return fmt.Errorf("traveler name required: %w", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(t.Email); err != nil {
		return fmt.Errorf("traveler email: %w", domain.ErrInvalidInput)
	}
	switch co.Payment.Method {
	case "paypal":
		return nil
	case "card":
		digits := 0
		for _, r := range co.Payment.CardNumber {
			switch {
			case r >= '0' && r <= '9':
				digits++
			case r == ' ' || r == '-':
			default:
				return fmt.Errorf("card number: %w", domain.ErrInvalidInput)
			}
		}
		if digits < 13 || digits > 19 {
			return fmt.Errorf("card number: %w", domain.ErrInvalidInput)
		}
		return nil
	}
	return fmt.Errorf("payment method %q: %w", co.Payment.Method, domain.ErrInvalidInput)
}

// Days is the number of whole days between two yyyy-mm-dd dates, at least 1.
// Missing or malformed dates count as a single day.
func Days(from, to string) int {
	a, errA := time.Parse(dateLayout, from)
	b, errB := time.Parse(dateLayout, to)
	if errA != nil || errB != nil {
		return 1
	}
	d := int(math.Ceil(math.Abs(b.Sub(a).Hours()) / 24))
	if d == 0 {
		return 1
	}
	return d
}

func tax(subtotal, rate float64) float64 { return math.Round(subtotal * rate) }

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
