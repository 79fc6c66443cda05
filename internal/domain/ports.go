package domain

import "context"

type BookingRepository interface {
	SaveBooking(ctx context.Context, b Booking) error
	UpdateStatus(ctx context.Context, id string, s BookingStatus) error
	GetBooking(ctx context.Context, id, userID string) (Booking, error)
	ListBookings(ctx context.Context, userID string) ([]Booking, error)
}

type EventRepository interface {
	InsertEvent(ctx context.Context, e EventLog) (int64, error)
	ListEvents(ctx context.Context, q EventQuery) (EventsPage, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// KV is the local key/value storage the client side persists tokens and failed events in.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// EventSender delivers one telemetry event. A nil error means a confirmed 2xx.
type EventSender interface {
	SendEvent(ctx context.Context, e TelemetryEvent) error
}

// Local storage keys shared by the client stub and the event logger.
const (
	KeyAuthToken    = "authToken"
	KeyUser         = "user"
	KeyFailedEvents = "failed_log_events"
	// KeyFailedEventsCorrupt holds a failed-events value that no longer decoded.
	KeyFailedEventsCorrupt = "failed_log_events_corrupt"
)
