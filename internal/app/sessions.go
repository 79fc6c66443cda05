package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"travel_booking/internal/adapters/observability"
	"travel_booking/internal/state"
)

// Sessions maps a session id to its own state store. Idle sessions are evicted by Sweep.
type Sessions struct {
	mu    sync.Mutex
	items map[string]*session
	idle  time.Duration
	now   func() time.Time
}

type session struct {
	store *state.Store
	seen  time.Time
}

func NewSessions(idle time.Duration) *Sessions {
	return &Sessions{items: map[string]*session{}, idle: idle, now: time.Now}
}

func NewSessionID() string { return uuid.NewString() }

// Get returns the store of id, creating it on first use.
func (s *Sessions) Get(id string) *state.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		it = &session{store: state.New()}
		s.items[id] = it
		observability.ActiveSessions.Set(float64(len(s.items)))
	}
	it.seen = s.now()
	return it.store
}

// Peek returns the store of id without creating one. Unknown ids get a fresh store that is not
// kept, so read-only requests without a session leave nothing behind.
func (s *Sessions) Peek(id string) *state.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it, ok := s.items[id]; ok {
		it.seen = s.now()
		return it.store
	}
	return state.New()
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep drops sessions not seen for longer than the idle timeout and reports how many went.
func (s *Sessions) Sweep() int {
	if s.idle <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.idle)
	n := 0
	for id, it := range s.items {
		if it.seen.Before(cutoff) {
			delete(s.items, id)
			n++
		}
	}
	observability.ActiveSessions.Set(float64(len(s.items)))
	return n
}

const minSweepEvery = time.Second

// Run sweeps every half idle timeout, at most once per second, until ctx is done.
func (s *Sessions) Run(ctx context.Context) error {
	if s.idle <= 0 {
		<-ctx.Done()
		return nil
	}
	t := time.NewTicker(max(s.idle/2, minSweepEvery))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			s.Sweep()
		}
	}
}
