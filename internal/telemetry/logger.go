// Package telemetry is the client-side usage beacon: events are queued without blocking the caller,
// sent by a background goroutine, and parked in local storage when delivery fails.
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"golang.org/x/sync/semaphore"

	"travel_booking/internal/adapters/observability"
	"travel_booking/internal/domain"
)

type Config struct {
	QueueSize     int
	FlushInterval time.Duration // 0 means failed events are only resent by RetryFailedEvents
	Workers       int           // concurrent sends during a retry
	SendTimeout   time.Duration
}

func (c Config) withDefaults() Config {
	if c.QueueSize <= 0 {
		c.QueueSize = 256
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = 5 * time.Second
	}
	return c
}

type Logger struct {
	sender domain.EventSender
	kv     domain.KV
	cfg    Config
	log    zerolog.Logger
	now    func() time.Time

	sessionID string
	queue     chan domain.TelemetryEvent

	mu      sync.RWMutex
	userID  string
	pageURL string

	failedMu sync.Mutex // serializes read-modify-write of the failed queue
}

// New builds a logger whose session id is fixed for its lifetime. The user id is read once from kv.
func New(ctx context.Context, sender domain.EventSender, kv domain.KV, cfg Config, log zerolog.Logger) *Logger {
	cfg = cfg.withDefaults()
	l := &Logger{
		sender:    sender,
		kv:        kv,
		cfg:       cfg,
		log:       log.With().Str("component", "telemetry").Logger(),
		now:       time.Now,
		sessionID: newSessionID(time.Now()),
		queue:     make(chan domain.TelemetryEvent, cfg.QueueSize),
	}
	l.userID = l.readUserID(ctx)
	return l
}

func newSessionID(now time.Time) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, 9)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return "session_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + string(b)
}

func (l *Logger) readUserID(ctx context.Context) string {
	raw, ok, err := l.kv.Get(ctx, domain.KeyUser)
	if err != nil || !ok {
		return ""
	}
	var u struct {
		ID any `json:"id"`
	}
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		l.log.Warn().Err(err).Msg("could not read user id for logging")
		return ""
	}
	return cast.ToString(u.ID)
}

func (l *Logger) SessionID() string { return l.sessionID }

func (l *Logger) UserID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.userID
}

func (l *Logger) SetUserID(id string) {
	l.mu.Lock()
	l.userID = id
	l.mu.Unlock()
}

// SetPageURL sets the page the following events are attributed to.
func (l *Logger) SetPageURL(u string) {
	l.mu.Lock()
	l.pageURL = u
	l.mu.Unlock()
}

func (l *Logger) page() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pageURL
}

func (l *Logger) LogClick(text, element string, at domain.Point) {
	l.Log(domain.TelemetryEvent{Type: domain.EventClick, Text: text, PageURL: l.page(), ElementIdentifier: element, Coordinates: &at})
}

func (l *Logger) LogScroll(text string, x, y int) {
	l.Log(domain.TelemetryEvent{Type: domain.EventScroll, Text: text, PageURL: l.page(), ScrollX: &x, ScrollY: &y})
}

func (l *Logger) LogHover(text, element string) {
	l.Log(domain.TelemetryEvent{Type: domain.EventHover, Text: text, PageURL: l.page(), ElementIdentifier: element})
}

func (l *Logger) LogKeyPress(text, element, key string) {
	l.Log(domain.TelemetryEvent{Type: domain.EventKeyPress, Text: text, PageURL: l.page(), ElementIdentifier: element, Key: key})
}

// LogNavigation accepts GO_BACK, GO_FORWARD and GO_TO_URL; anything else is dropped.
func (l *Logger) LogNavigation(text string, typ domain.EventType, targetURL string) {
	if !typ.IsNavigation() {
		l.log.Warn().Str("type", string(typ)).Msg("not a navigation event")
		return
	}
	l.Log(domain.TelemetryEvent{Type: typ, Text: text, PageURL: l.page(), TargetURL: targetURL})
}

func (l *Logger) LogStorage(text, storageType, key, value string) {
	l.Log(domain.TelemetryEvent{Type: domain.EventSetStorage, Text: text, PageURL: l.page(), StorageType: storageType, Key: key, Value: value})
}

func (l *Logger) LogCustom(text, action string, data map[string]any) {
	l.Log(domain.TelemetryEvent{Type: domain.EventCustom, Text: text, CustomAction: action, Data: data})
}

// Log stamps e and queues it. It never blocks: with a full queue the event goes straight to the failed queue.
func (l *Logger) Log(e domain.TelemetryEvent) {
	e.Timestamp = l.now().UTC().Format(time.RFC3339Nano)
	e.SessionID = l.sessionID
	e.UserID = l.UserID()
	select {
	case l.queue <- e:
	default:
		l.park(context.Background(), e)
	}
}

// Run sends queued events until ctx is done, and flushes the failed queue every FlushInterval.
// Events still queued at shutdown are parked in the failed queue.
func (l *Logger) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if l.cfg.FlushInterval > 0 {
		t := time.NewTicker(l.cfg.FlushInterval)
		defer t.Stop()
		tick = t.C
	}
	for {
		select {
		case <-ctx.Done():
			l.drain()
			return nil
		case e := <-l.queue:
			if err := l.send(ctx, e); err != nil {
				l.park(context.WithoutCancel(ctx), e)
			}
		case <-tick:
			if _, _, err := l.RetryFailedEvents(ctx); err != nil {
				l.log.Warn().Err(err).Msg("scheduled retry failed")
			}
		}
	}
}

// Flush sends everything queued right now, parking failures. Short-lived callers that never Run use it.
func (l *Logger) Flush(ctx context.Context) {
	for {
		select {
		case e := <-l.queue:
			if err := l.send(ctx, e); err != nil {
				l.park(context.WithoutCancel(ctx), e)
			}
		default:
			return
		}
	}
}

func (l *Logger) drain() {
	for {
		select {
		case e := <-l.queue:
			l.park(context.Background(), e)
		default:
			return
		}
	}
}

func (l *Logger) send(ctx context.Context, e domain.TelemetryEvent) error {
	ctx, cancel := context.WithTimeout(ctx, l.cfg.SendTimeout)
	defer cancel()
	if err := l.sender.SendEvent(ctx, e); err != nil {
		l.log.Debug().Err(err).Str("type", string(e.Type)).Msg("send log event failed")
		return err
	}
	observability.ObserveTelemetry("sent")
	return nil
}

func (l *Logger) park(ctx context.Context, e domain.TelemetryEvent) {
	l.failedMu.Lock()
	defer l.failedMu.Unlock()
	q, err := l.readFailed(ctx)
	switch {
	case errors.Is(err, errCorruptQueue):
		// keep the undecodable value aside and start a fresh queue
		if raw, _, gerr := l.kv.Get(ctx, domain.KeyFailedEvents); gerr == nil {
			if serr := l.kv.Set(ctx, domain.KeyFailedEventsCorrupt, raw); serr != nil {
				l.log.Error().Err(serr).Msg("keep undecodable failed events")
				observability.ObserveTelemetry("dropped")
				return
			}
		}
		l.log.Warn().Err(err).Str("moved_to", domain.KeyFailedEventsCorrupt).Msg("failed events queue reset")
		q = nil
	case err != nil:
		l.log.Error().Err(err).Msg("read failed events")
		observability.ObserveTelemetry("dropped")
		return
	}
	if err := l.writeFailed(ctx, append(q, e)); err != nil {
		l.log.Error().Err(err).Msg("store failed event")
		observability.ObserveTelemetry("dropped")
		return
	}
	observability.ObserveTelemetry("queued")
}

// RetryFailedEvents resends the failed queue. Each event that gets a confirmed delivery is removed;
// the rest stay queued, together with anything that failed while the retry was running.
func (l *Logger) RetryFailedEvents(ctx context.Context) (resent, remaining int, err error) {
	l.failedMu.Lock()
	batch, err := l.readFailed(ctx)
	if err == nil && len(batch) > 0 {
		err = l.kv.Del(ctx, domain.KeyFailedEvents)
	}
	l.failedMu.Unlock()
	if err != nil {
		return 0, 0, err
	}
	if len(batch) == 0 {
		return 0, 0, nil
	}

	ok := make([]bool, len(batch))
	sem := semaphore.NewWeighted(int64(l.cfg.Workers))
	var wg sync.WaitGroup
	for i, e := range batch {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(i int, e domain.TelemetryEvent) {
			defer wg.Done()
			defer sem.Release(1)
			ok[i] = l.send(ctx, e) == nil
		}(i, e)
	}
	wg.Wait()

	var keep []domain.TelemetryEvent
	for i, e := range batch {
		if ok[i] {
			resent++
			observability.ObserveTelemetry("resent")
			continue
		}
		keep = append(keep, e)
	}

	l.failedMu.Lock()
	defer l.failedMu.Unlock()
	wctx := context.WithoutCancel(ctx)
	newer, err := l.readFailed(wctx)
	if err != nil {
		return resent, len(keep), err
	}
	keep = append(keep, newer...)
	if len(keep) == 0 {
		return resent, 0, nil
	}
	if err := l.writeFailed(wctx, keep); err != nil {
		return resent, len(keep), err
	}
	return resent, len(keep), nil
}

// Failed returns the currently parked events.
func (l *Logger) Failed(ctx context.Context) ([]domain.TelemetryEvent, error) {
	l.failedMu.Lock()
	defer l.failedMu.Unlock()
	return l.readFailed(ctx)
}

var errCorruptQueue = errors.New("decode " + domain.KeyFailedEvents)

func (l *Logger) readFailed(ctx context.Context) ([]domain.TelemetryEvent, error) {
	raw, ok, err := l.kv.Get(ctx, domain.KeyFailedEvents)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var out []domain.TelemetryEvent
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: %w", errCorruptQueue, err)
	}
	return out, nil
}

func (l *Logger) writeFailed(ctx context.Context, q []domain.TelemetryEvent) error {
	b, err := json.Marshal(q)
	if err != nil {
		return err
	}
	return l.kv.Set(ctx, domain.KeyFailedEvents, string(b))
}
