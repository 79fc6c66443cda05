package app

import (
	"context"
	"fmt"
	"time"

	"travel_booking/internal/adapters/observability"
	"travel_booking/internal/domain"
)

const (
	defaultEventsLimit = 100
	maxEventsLimit     = 1000
)

// EventService stores telemetry beacons posted by clients and serves them back for inspection.
type EventService struct {
	repo domain.EventRepository
	now  func() time.Time
}

func NewEventService(r domain.EventRepository) *EventService {
	return &EventService{repo: r, now: time.Now}
}

func (s *EventService) Record(ctx context.Context, e domain.TelemetryEvent, source string) (int64, error) {
	if e.Type == "" {
		return 0, fmt.Errorf("event type required: %w", domain.ErrInvalidInput)
	}
	if e.Timestamp == "" {
		e.Timestamp = s.now().UTC().Format(time.RFC3339Nano)
	}
	if source == "" {
		source = "frontend"
	}
	id, err := s.repo.InsertEvent(ctx, domain.EventLog{
		EventType: e.Type,
		Text:      e.Text,
		UserID:    e.UserID,
		SessionID: e.SessionID,
		Timestamp: e.Timestamp,
		Metadata:  e.Metadata(),
		Source:    source,
	})
	if err != nil {
		return 0, err
	}
	observability.ObserveTelemetry("stored")
	return id, nil
}

func (s *EventService) List(ctx context.Context, q domain.EventQuery) (domain.EventsPage, error) {
	if q.Limit <= 0 {
		q.Limit = defaultEventsLimit
	}
	q.Limit = min(q.Limit, maxEventsLimit)
	q.Offset = max(q.Offset, 0)
	return s.repo.ListEvents(ctx, q)
}
