package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"travel_booking/internal/app"
	"travel_booking/internal/catalog"
	"travel_booking/internal/domain"
	"travel_booking/internal/state"
	"travel_booking/internal/storage/memory"
)

func checkout() app.Checkout {
	return app.Checkout{
		Traveler: domain.TravelerInfo{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "555"},
		Payment:  domain.PaymentInfo{Method: "card", CardNumber: "4242 4242 4242 4242", ExpiryDate: "12/30", CVV: "123"},
	}
}

func TestQuotes(t *testing.T) {
	svc := app.NewBookingService(catalog.New(), nil, nil, 0)

	d, err := svc.QuoteHotel(app.HotelRequest{HotelID: "1", RoomID: "r2", CheckIn: "2024-03-15", CheckOut: "2024-03-18", Guests: 3, Rooms: 2})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	// 459 x 2 rooms x 3 nights
	if d.TotalPrice != 2754 || d.Taxes != 413 {
		t.Fatalf("hotel quote: total=%v taxes=%v", d.TotalPrice, d.Taxes)
	}

	d, err = svc.QuoteFlight(app.FlightRequest{FlightID: "f1", Count: 2})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if d.TotalPrice != 1198 || d.Taxes != 240 || d.Flight.Count != 2 {
		t.Fatalf("flight quote: %+v", d)
	}

	d, err = svc.QuoteCar(app.CarRequest{CarID: "c1", PickupDate: "2024-03-01", DropoffDate: "2024-03-04", DriverAge: 30, Insurance: []string{"Full Coverage"}})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	// (35 + 18) x 3 days
	if d.TotalPrice != 159 || d.Taxes != 16 {
		t.Fatalf("car quote: total=%v taxes=%v", d.TotalPrice, d.Taxes)
	}
	if len(d.Car.Insurance) != 3 {
		t.Fatalf("included plus selected cover expected: %v", d.Car.Insurance)
	}
}

func TestQuoteRejections(t *testing.T) {
	svc := app.NewBookingService(catalog.New(), nil, nil, 0)
	cases := []struct {
		name string
		run  func() error
		want error
	}{
		{"underage", func() error { _, err := svc.QuoteCar(app.CarRequest{CarID: "c5", DriverAge: 25}); return err }, domain.ErrUnderage},
		{"unavailable car", func() error { _, err := svc.QuoteCar(app.CarRequest{CarID: "c7", DriverAge: 40}); return err }, domain.ErrUnavailable},
		{"unavailable room", func() error { _, err := svc.QuoteHotel(app.HotelRequest{HotelID: "10", RoomID: "r12"}); return err }, domain.ErrUnavailable},
		{"unknown insurance", func() error {
			_, err := svc.QuoteCar(app.CarRequest{CarID: "c1", DriverAge: 40, Insurance: []string{"Alien Abduction"}})
			return err
		}, domain.ErrInvalidInput},
		{"too many guests", func() error {
			_, err := svc.QuoteHotel(app.HotelRequest{HotelID: "1", RoomID: "r1", Guests: 5, Rooms: 1})
			return err
		}, domain.ErrInvalidInput},
		{"unknown flight", func() error { _, err := svc.QuoteFlight(app.FlightRequest{FlightID: "zz"}); return err }, domain.ErrNotFound},
	}
	for _, tc := range cases {
		if err := tc.run(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestConfirm_PersistsAndClearsDraft(t *testing.T) {
	repo := memory.New()
	svc := app.NewBookingService(catalog.New(), repo, repo, 0)
	st := state.New()
	ctx := context.Background()

	if _, err := svc.StartCar(ctx, st, app.CarRequest{CarID: "c1", DriverAge: 30}); err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, err := svc.StartHotel(ctx, st, app.HotelRequest{HotelID: "1", RoomID: "r1"}); err != nil {
		t.Fatalf("err: %v", err)
	}

	b, err := svc.Confirm(ctx, st, "1", checkout())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if b.Type != domain.BookHotel || b.Car != nil || b.TotalPrice != 289 {
		t.Fatalf("booking should come from the latest draft: %+v", b)
	}
	if !strings.HasPrefix(b.ID, "TRV-") || len(b.ID) != 12 {
		t.Fatalf("booking id: %s", b.ID)
	}
	if b.Payment.CardNumber != "****-****-****-4242" {
		t.Fatalf("card not masked: %s", b.Payment.CardNumber)
	}

	snap := st.Booking()
	if snap.Draft != nil || len(snap.Bookings) != 1 || snap.Phase != state.PhaseConfirmed {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	stored, err := repo.GetBooking(ctx, b.ID, "1")
	if err != nil || stored.Status != domain.StatusConfirmed {
		t.Fatalf("not persisted: %v %+v", err, stored)
	}
	ev, _ := repo.ListEvents(ctx, domain.EventQuery{EventType: string(domain.EventDBUpdate)})
	if ev.Total != 1 || ev.Events[0].Metadata["record_id"] != b.ID {
		t.Fatalf("db update event: %+v", ev)
	}

	if _, err := svc.Confirm(ctx, st, "1", checkout()); !errors.Is(err, domain.ErrNoDraft) {
		t.Fatalf("second confirm should have no draft, got %v", err)
	}
}

func TestConfirm_CancelledPaymentKeepsDraft(t *testing.T) {
	svc := app.NewBookingService(catalog.New(), nil, nil, time.Hour)
	st := state.New()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := svc.StartFlight(ctx, st, app.FlightRequest{FlightID: "f1"}); err != nil {
		t.Fatalf("err: %v", err)
	}
	_, err := svc.Confirm(ctx, st, "1", checkout())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline, got %v", err)
	}
	snap := st.Booking()
	if snap.Phase != state.PhaseDrafting || snap.Draft == nil || snap.Error == "" {
		t.Fatalf("expected drafting with error, got %+v", snap)
	}
	if len(snap.Bookings) != 0 {
		t.Fatalf("no booking expected")
	}
}

// confirmDuringPayment starts Confirm in the background, waits until the payment step is
// running, applies interrupt, and returns Confirm's result.
func confirmDuringPayment(t *testing.T, svc *app.BookingService, st *state.Store, interrupt func()) (domain.Booking, error) {
	t.Helper()
	type result struct {
		b   domain.Booking
		err error
	}
	done := make(chan result, 1)
	go func() {
		b, err := svc.Confirm(context.Background(), st, "1", checkout())
		done <- result{b, err}
	}()
	deadline := time.Now().Add(time.Second)
	for st.Flow().Phase() != state.PhaseFinalizing {
		if time.Now().After(deadline) {
			t.Fatal("payment never started")
		}
		time.Sleep(time.Millisecond)
	}
	interrupt()
	r := <-done
	return r.b, r.err
}

func TestConfirm_DraftReplacedDuringPayment(t *testing.T) {
	repo := memory.New()
	svc := app.NewBookingService(catalog.New(), repo, repo, 100*time.Millisecond)
	st := state.New()
	ctx := context.Background()
	if _, err := svc.StartCar(ctx, st, app.CarRequest{CarID: "c1", DriverAge: 30}); err != nil {
		t.Fatalf("err: %v", err)
	}

	_, err := confirmDuringPayment(t, svc, st, func() {
		if _, err := svc.StartHotel(ctx, st, app.HotelRequest{HotelID: "1", RoomID: "r1"}); err != nil {
			t.Errorf("start hotel: %v", err)
		}
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	snap := st.Booking()
	if snap.Phase != state.PhaseDrafting || snap.Draft == nil || snap.Draft.Type != domain.BookHotel {
		t.Fatalf("hotel draft should survive: %+v", snap)
	}
	if snap.Loading || len(snap.Bookings) != 0 {
		t.Fatalf("no booking and no loading expected: %+v", snap)
	}
	if stored, _ := repo.ListBookings(ctx, "1"); len(stored) != 0 {
		t.Fatalf("nothing should be persisted: %+v", stored)
	}
}

func TestConfirm_DraftClearedDuringPayment(t *testing.T) {
	svc := app.NewBookingService(catalog.New(), nil, nil, 100*time.Millisecond)
	st := state.New()
	if _, err := svc.StartCar(context.Background(), st, app.CarRequest{CarID: "c1", DriverAge: 30}); err != nil {
		t.Fatalf("err: %v", err)
	}

	_, err := confirmDuringPayment(t, svc, st, func() {
		if err := st.Dispatch(state.ClearDraft{}); err != nil {
			t.Errorf("clear: %v", err)
		}
	})
	if !errors.Is(err, domain.ErrNoDraft) {
		t.Fatalf("expected no draft, got %v", err)
	}
	snap := st.Booking()
	if snap.Loading || snap.Phase != state.PhaseEmpty || len(snap.Bookings) != 0 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestConfirm_ValidatesCheckout(t *testing.T) {
	svc := app.NewBookingService(catalog.New(), nil, nil, 0)
	st := state.New()
	ctx := context.Background()
	if _, err := svc.StartFlight(ctx, st, app.FlightRequest{FlightID: "f2"}); err != nil {
		t.Fatalf("err: %v", err)
	}

	co := checkout()
	co.Traveler.Email = "nope"
	if _, err := svc.Confirm(ctx, st, "1", co); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid email, got %v", err)
	}
	co = checkout()
	co.Payment.CardNumber = "1234"
	if _, err := svc.Confirm(ctx, st, "1", co); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid card, got %v", err)
	}
	if st.Flow().Phase() != state.PhaseDrafting {
		t.Fatalf("validation must not move the flow")
	}
}

func TestCancelAndLoad(t *testing.T) {
	repo := memory.New()
	svc := app.NewBookingService(catalog.New(), repo, repo, 0)
	ctx := context.Background()

	other := state.New()
	if _, err := svc.StartCar(ctx, other, app.CarRequest{CarID: "c3", DriverAge: 19}); err != nil {
		t.Fatalf("err: %v", err)
	}
	b, err := svc.Confirm(ctx, other, "1", checkout())
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	// a fresh session of the same user sees it after loading
	st := state.New()
	bs, err := svc.LoadBookings(ctx, st, "1")
	if err != nil || len(bs) != 1 {
		t.Fatalf("load: %v %d", err, len(bs))
	}
	got, err := svc.Cancel(ctx, st, "1", b.ID)
	if err != nil || got.Status != domain.StatusCancelled {
		t.Fatalf("cancel: %v %+v", err, got)
	}
	stored, _ := repo.GetBooking(ctx, b.ID, "1")
	if stored.Status != domain.StatusCancelled {
		t.Fatalf("repo status: %s", stored.Status)
	}

	// booking only in the repo, not in this session
	fresh := state.New()
	if got, err := svc.Cancel(ctx, fresh, "1", b.ID); err != nil || got.Status != domain.StatusCancelled {
		t.Fatalf("cancel from repo: %v %+v", err, got)
	}
	if _, err := svc.Cancel(ctx, fresh, "1", "TRV-MISSING"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Get(ctx, fresh, "2", b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("other users must not see it, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	repo := memory.New()
	svc := app.NewBookingService(catalog.New(), repo, repo, 0)
	b, err := svc.Create(context.Background(), "1", domain.Booking{Type: domain.BookFlight, TotalPrice: 599, Flight: &domain.FlightLeg{FlightID: "f1", Count: 1}})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if b.Status != domain.StatusConfirmed || b.UserID != "1" || b.ID == "" {
		t.Fatalf("created: %+v", b)
	}
	if _, err := svc.Create(context.Background(), "1", domain.Booking{Type: "boat"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid type, got %v", err)
	}
}

func TestDays(t *testing.T) {
	cases := map[[2]string]int{
		{"2024-03-15", "2024-03-18"}: 3,
		{"2024-03-18", "2024-03-15"}: 3,
		{"2024-03-15", "2024-03-15"}: 1,
		{"", "2024-03-15"}:           1,
		{"garbage", "x"}:             1,
	}
	for in, want := range cases {
		if got := app.Days(in[0], in[1]); got != want {
			t.Fatalf("Days(%q,%q) = %d, want %d", in[0], in[1], got, want)
		}
	}
}
