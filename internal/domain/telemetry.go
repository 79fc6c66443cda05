package domain

type EventType string

const (
	EventClick      EventType = "CLICK"
	EventScroll     EventType = "SCROLL"
	EventHover      EventType = "HOVER"
	EventKeyPress   EventType = "KEY_PRESS"
	EventGoBack     EventType = "GO_BACK"
	EventGoForward  EventType = "GO_FORWARD"
	EventGoToURL    EventType = "GO_TO_URL"
	EventSetStorage EventType = "SET_STORAGE"
	EventCustom     EventType = "CUSTOM"
	EventDBUpdate   EventType = "DB_UPDATE"
)

func (t EventType) IsNavigation() bool {
	return t == EventGoBack || t == EventGoForward || t == EventGoToURL
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TelemetryEvent is the wire shape accepted by POST /api/v1/logs/events.
// Which optional fields are set depends on Type.
type TelemetryEvent struct {
	Type      EventType `json:"type"`
	Text      string    `json:"text"`
	Timestamp string    `json:"timestamp"`
	UserID    string    `json:"user_id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`

	PageURL           string         `json:"page_url,omitempty"`
	ElementIdentifier string         `json:"element_identifier,omitempty"`
	Coordinates       *Point         `json:"coordinates,omitempty"`
	ScrollX           *int           `json:"scroll_x,omitempty"`
	ScrollY           *int           `json:"scroll_y,omitempty"`
	Key               string         `json:"key,omitempty"`
	TargetURL         string         `json:"target_url,omitempty"`
	StorageType       string         `json:"storage_type,omitempty"`
	Value             string         `json:"value,omitempty"`
	CustomAction      string         `json:"custom_action,omitempty"`
	Data              map[string]any `json:"data,omitempty"`
}

// Metadata is everything but the envelope fields, as stored next to the event row.
func (e TelemetryEvent) Metadata() map[string]any {
	m := map[string]any{}
	put := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	put("page_url", e.PageURL)
	put("element_identifier", e.ElementIdentifier)
	put("key", e.Key)
	put("target_url", e.TargetURL)
	put("storage_type", e.StorageType)
	put("value", e.Value)
	put("custom_action", e.CustomAction)
	if e.Coordinates != nil {
		m["coordinates"] = *e.Coordinates
	}
	if e.ScrollX != nil {
		m["scroll_x"] = *e.ScrollX
	}
	if e.ScrollY != nil {
		m["scroll_y"] = *e.ScrollY
	}
	if len(e.Data) > 0 {
		m["data"] = e.Data
	}
	return m
}

// EventLog is a persisted telemetry event.
type EventLog struct {
	ID        int64          `json:"id"`
	EventType EventType      `json:"event_type"`
	Text      string         `json:"description"`
	UserID    string         `json:"user_id,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	Timestamp string         `json:"timestamp"`
	Metadata  map[string]any `json:"metadata"`
	Source    string         `json:"source"` // frontend|backend
}

type EventQuery struct {
	UserID    string
	SessionID string
	EventType string
	Limit     int
	Offset    int
}

type EventsPage struct {
	Events []EventLog `json:"events"`
	Total  int64      `json:"total"`
}
