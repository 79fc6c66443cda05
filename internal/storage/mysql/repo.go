package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel_booking/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func valJSON(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	return string(b), nil
}

// details is the JSON shape of the per-type legs of a booking.
type details struct {
	Hotel  *domain.HotelLeg  `json:"hotel,omitempty"`
	Flight *domain.FlightLeg `json:"flight,omitempty"`
	Car    *domain.CarLeg    `json:"car,omitempty"`
}

// Repo stores bookings and event logs in MySQL with raw SQL.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) SaveBooking(ctx context.Context, b domain.Booking) error {
	traveler, err := valJSON(b.Traveler)
	if err != nil {
		return err
	}
	payment, err := valJSON(b.Payment)
	if err != nil {
		return err
	}
	legs, err := valJSON(details{Hotel: b.Hotel, Flight: b.Flight, Car: b.Car})
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertBookingSQL,
		b.ID,
		b.UserID,
		string(b.Type),
		string(b.Status),
		b.BookingDate.UTC(),
		b.TotalPrice,
		b.Taxes,
		traveler,
		payment,
		legs,
	)
	return err
}

func (r *Repo) UpdateStatus(ctx context.Context, id string, s domain.BookingStatus) error {
	res, err := r.db.ExecContext(ctx, updateStatusSQL, string(s), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	// Nothing changed: either the row is already cancelled or it does not exist.
	var one int
	if err := r.db.QueryRowContext(ctx, bookingExistsSQL, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *Repo) GetBooking(ctx context.Context, id, userID string) (domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, getBookingSQL, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, err
}

func (r *Repo) ListBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type scanner interface{ Scan(dest ...any) error }

func scanBooking(row scanner) (domain.Booking, error) {
	var b domain.Booking
	var typ, status string
	var traveler, payment, legs []byte
	if err := row.Scan(
		&b.ID, &b.UserID, &typ, &status, &b.BookingDate, &b.TotalPrice, &b.Taxes,
		&traveler, &payment, &legs,
	); err != nil {
		return domain.Booking{}, err
	}
	b.Type = domain.BookingType(typ)
	b.Status = domain.BookingStatus(status)
	b.BookingDate = b.BookingDate.UTC()
	if len(traveler) > 0 {
		if err := json.Unmarshal(traveler, &b.Traveler); err != nil {
			return domain.Booking{}, fmt.Errorf("booking %s traveler_info: %w", b.ID, err)
		}
	}
	if len(payment) > 0 {
		if err := json.Unmarshal(payment, &b.Payment); err != nil {
			return domain.Booking{}, fmt.Errorf("booking %s payment_info: %w", b.ID, err)
		}
	}
	if len(legs) > 0 {
		var d details
		if err := json.Unmarshal(legs, &d); err != nil {
			return domain.Booking{}, fmt.Errorf("booking %s details: %w", b.ID, err)
		}
		b.Hotel, b.Flight, b.Car = d.Hotel, d.Flight, d.Car
	}
	return b, nil
}

// ---- event logs ----

func (r *Repo) InsertEvent(ctx context.Context, e domain.EventLog) (int64, error) {
	ts, err := time.Parse(time.RFC3339Nano, e.Timestamp)
	if err != nil {
		ts = time.Now()
	}
	meta, err := valJSON(e.Metadata)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, insertEventSQL,
		string(e.EventType),
		e.Text,
		valStr(e.UserID),
		valStr(e.SessionID),
		ts.UTC(),
		meta,
		e.Source,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListEvents applies exact-match filters, newest first, then limit/offset. Total counts all matches.
func (r *Repo) ListEvents(ctx context.Context, q domain.EventQuery) (domain.EventsPage, error) {
	var where []string
	var args []any
	if q.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, q.UserID)
	}
	if q.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, q.SessionID)
	}
	if q.EventType != "" {
		where = append(where, "event_type = ?")
		args = append(args, q.EventType)
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	page := domain.EventsPage{Events: []domain.EventLog{}}
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM event_logs"+cond, args...).Scan(&page.Total); err != nil {
		return domain.EventsPage{}, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM event_logs"+cond+" ORDER BY `timestamp` DESC, id DESC LIMIT ? OFFSET ?",
		append(args, q.Limit, q.Offset)...)
	if err != nil {
		return domain.EventsPage{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.EventLog
		var typ string
		var userID, sessionID sql.NullString
		var ts time.Time
		var meta []byte
		if err := rows.Scan(&e.ID, &typ, &e.Text, &userID, &sessionID, &ts, &meta, &e.Source); err != nil {
			return domain.EventsPage{}, err
		}
		e.EventType = domain.EventType(typ)
		e.UserID, e.SessionID = userID.String, sessionID.String
		e.Timestamp = ts.UTC().Format(time.RFC3339Nano)
		if len(meta) > 0 {
			_ = json.Unmarshal(meta, &e.Metadata)
		}
		page.Events = append(page.Events, e)
	}
	return page, rows.Err()
}
