package telemetry_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_booking/internal/adapters/localstore"
	"travel_booking/internal/domain"
	"travel_booking/internal/telemetry"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []domain.TelemetryEvent
	fail func(e domain.TelemetryEvent) bool
}

func (f *fakeSender) SendEvent(ctx context.Context, e domain.TelemetryEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil && f.fail(e) {
		return errors.New("API Error: 503 Service Unavailable")
	}
	f.sent = append(f.sent, e)
	return nil
}

func (f *fakeSender) setFail(fn func(e domain.TelemetryEvent) bool) {
	f.mu.Lock()
	f.fail = fn
	f.mu.Unlock()
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func failAll(domain.TelemetryEvent) bool { return true }

func newLogger(t *testing.T, s domain.EventSender, kv domain.KV, cfg telemetry.Config) *telemetry.Logger {
	t.Helper()
	return telemetry.New(context.Background(), s, kv, cfg, zerolog.Nop())
}

func TestSessionAndUserIdentity(t *testing.T) {
	kv := localstore.NewMemory()
	require.NoError(t, kv.Set(context.Background(), domain.KeyUser, `{"id": 7, "email": "demo@example.com"}`))

	l := newLogger(t, &fakeSender{}, kv, telemetry.Config{})
	assert.Regexp(t, regexp.MustCompile(`^session_\d+_[0-9a-z]{9}$`), l.SessionID())
	assert.Equal(t, "7", l.UserID())

	// read once: later changes to the stored user are not picked up
	require.NoError(t, kv.Set(context.Background(), domain.KeyUser, `{"id": 8}`))
	assert.Equal(t, "7", l.UserID())
	l.SetUserID("9")
	assert.Equal(t, "9", l.UserID())

	bad := localstore.NewMemory()
	require.NoError(t, bad.Set(context.Background(), domain.KeyUser, `not json`))
	assert.Empty(t, newLogger(t, &fakeSender{}, bad, telemetry.Config{}).UserID())
}

func TestLogNeverBlocks(t *testing.T) {
	kv := localstore.NewMemory()
	l := newLogger(t, &fakeSender{}, kv, telemetry.Config{QueueSize: 1})

	done := make(chan struct{})
	go func() {
		l.LogClick("Search button", "btn-search", domain.Point{X: 1, Y: 2})
		l.LogHover("Hotel card", "card-1")
		l.LogKeyPress("Destination typed", "input-destination", "Enter")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("logging blocked without a running sender")
	}

	parked, err := l.Failed(context.Background())
	require.NoError(t, err)
	assert.Len(t, parked, 2)
}

func TestRunSendsAndParksFailures(t *testing.T) {
	kv := localstore.NewMemory()
	s := &fakeSender{fail: func(e domain.TelemetryEvent) bool { return e.Type == domain.EventScroll }}
	l := newLogger(t, s, kv, telemetry.Config{})
	l.SetPageURL("http://localhost:3000/search")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	l.LogClick("Book now", "btn-book", domain.Point{X: 10, Y: 20})
	l.LogScroll("Results scrolled", 0, 480)
	l.LogCustom("Booking confirmed", "booking_confirmed", map[string]any{"booking_id": "TRV-1"})

	require.Eventually(t, func() bool { return s.count() == 2 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		q, _ := l.Failed(context.Background())
		return len(q) == 1
	}, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	q, _ := l.Failed(context.Background())
	assert.Equal(t, domain.EventScroll, q[0].Type)
	require.NotNil(t, q[0].ScrollY)
	assert.Equal(t, 480, *q[0].ScrollY)
	assert.Equal(t, l.SessionID(), q[0].SessionID)
	assert.Equal(t, "http://localhost:3000/search", q[0].PageURL)
	assert.NotEmpty(t, q[0].Timestamp)
}

func TestRetryClearsOnlyConfirmedEvents(t *testing.T) {
	kv := localstore.NewMemory()
	s := &fakeSender{fail: failAll}
	l := newLogger(t, s, kv, telemetry.Config{QueueSize: 1, Workers: 2})
	for _, text := range []string{"a", "b", "c", "d"} {
		l.LogHover(text, "el")
	}
	// queue of one: three parked right away, flush the fourth through a stopped run
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, l.Run(ctx))

	parked, _ := l.Failed(context.Background())
	require.Len(t, parked, 4)

	s.setFail(func(e domain.TelemetryEvent) bool { return e.Text == "c" })
	resent, remaining, err := l.RetryFailedEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, resent)
	assert.Equal(t, 1, remaining)

	parked, _ = l.Failed(context.Background())
	require.Len(t, parked, 1)
	assert.Equal(t, "c", parked[0].Text)

	s.setFail(nil)
	resent, remaining, err = l.RetryFailedEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resent)
	assert.Zero(t, remaining)
	_, ok, _ := kv.Get(context.Background(), domain.KeyFailedEvents)
	assert.False(t, ok)

	resent, remaining, err = l.RetryFailedEvents(context.Background())
	require.NoError(t, err)
	assert.Zero(t, resent+remaining)
}

func TestScheduledFlush(t *testing.T) {
	kv := localstore.NewMemory()
	s := &fakeSender{fail: failAll}
	l := newLogger(t, s, kv, telemetry.Config{FlushInterval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	l.LogStorage("Token stored", "local", domain.KeyAuthToken, "***")
	require.Eventually(t, func() bool {
		q, _ := l.Failed(context.Background())
		return len(q) == 1
	}, time.Second, 5*time.Millisecond)

	s.setFail(nil)
	require.Eventually(t, func() bool {
		q, _ := l.Failed(context.Background())
		return len(q) == 0 && s.count() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestNavigationRejectsOtherTypes(t *testing.T) {
	kv := localstore.NewMemory()
	l := newLogger(t, &fakeSender{}, kv, telemetry.Config{QueueSize: 1})
	l.LogNavigation("not navigation", domain.EventClick, "")
	l.LogNavigation("back", domain.EventGoBack, "")
	l.LogNavigation("to url", domain.EventGoToURL, "/hotels/1")

	// the first accepted event fills the queue, the second is parked
	q, _ := l.Failed(context.Background())
	require.Len(t, q, 1)
	assert.Equal(t, domain.EventGoToURL, q[0].Type)
	assert.Equal(t, "/hotels/1", q[0].TargetURL)
}

func TestFlushSendsQueuedAndParksFailures(t *testing.T) {
	kv := localstore.NewMemory()
	s := &fakeSender{fail: func(e domain.TelemetryEvent) bool { return e.Text == "bad" }}
	l := newLogger(t, s, kv, telemetry.Config{})

	l.LogCustom("good", "checkout", nil)
	l.LogCustom("bad", "checkout", nil)
	l.Flush(context.Background())

	assert.Equal(t, 1, s.count())
	failed, err := l.Failed(context.Background())
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "bad", failed[0].Text)
}

func TestParkKeepsUndecodableQueueAside(t *testing.T) {
	ctx := context.Background()
	kv := localstore.NewMemory()
	require.NoError(t, kv.Set(ctx, domain.KeyFailedEvents, "{truncated"))
	l := newLogger(t, &fakeSender{fail: failAll}, kv, telemetry.Config{})

	l.LogCustom("after corruption", "checkout", nil)
	l.Flush(ctx)

	raw, ok, err := kv.Get(ctx, domain.KeyFailedEventsCorrupt)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{truncated", raw)

	q, err := l.Failed(ctx)
	require.NoError(t, err)
	require.Len(t, q, 1)
	assert.Equal(t, "after corruption", q[0].Text)
}
