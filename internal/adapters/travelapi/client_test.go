package travelapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"travel_booking/internal/adapters/localstore"
	"travel_booking/internal/adapters/travelapi"
	"travel_booking/internal/domain"
)

func TestClient_GetHotel_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			_ = json.NewEncoder(w).Encode(domain.Hotel{ID: "1", Name: "Grand Luxury Hotel Paris"})
		}
	}))
	defer ts.Close()

	cl, err := travelapi.New(ts.URL, localstore.NewMemory(), 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	h, err := cl.GetHotel(ctx, "1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if h.Name != "Grand Luxury Hotel Paris" {
		t.Fatalf("unexpected payload: %+v", h)
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("expected 3 calls due to retries, got %d", hits)
	}
}

func TestClient_ErrorsCarryStatusText(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, _ := travelapi.New(ts.URL, localstore.NewMemory(), 100)
	_, err := cl.GetBooking(context.Background(), "TRV-NOPE")
	if err == nil || err.Error() != "API Error: 404 Not Found" {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound in chain")
	}
}

func TestClient_WritesAreNotRetried(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	cl, _ := travelapi.New(ts.URL, localstore.NewMemory(), 100)
	err := cl.SendEvent(context.Background(), domain.TelemetryEvent{Type: domain.EventClick, Text: "x"})
	var apiErr *travelapi.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 500 {
		t.Fatalf("expected APIError 500, got %v", err)
	}
	if hits != 1 {
		t.Fatalf("POST must be sent once, got %d", hits)
	}
}

func TestClient_DemoLoginStoresTokenAndUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/demo-login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.Token{AccessToken: "tok-123", TokenType: "bearer"})
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(domain.DemoUser)
	})
	mux.HandleFunc("GET /search/hotels", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(travelapi.SessionHeader) != "sess-1" || r.URL.Query().Get("destination") != "Paris" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(travelapi.HotelsPage{Results: []domain.Hotel{{ID: "1"}}, Page: 1, TotalPages: 1, Total: 1})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	kv := localstore.NewMemory()
	cl, _ := travelapi.New(ts.URL, kv, 100)
	u, err := cl.DemoLogin(context.Background())
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.Email != "demo@example.com" {
		t.Fatalf("user: %+v", u)
	}
	if tok, _, _ := kv.Get(context.Background(), domain.KeyAuthToken); tok != "tok-123" {
		t.Fatalf("token not stored: %q", tok)
	}
	raw, _, _ := kv.Get(context.Background(), domain.KeyUser)
	var stored domain.User
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || stored.ID != "1" {
		t.Fatalf("user not stored: %q", raw)
	}

	cl.SetSession("sess-1")
	page, err := cl.SearchHotels(context.Background(), url.Values{"destination": {"Paris"}})
	if err != nil || len(page.Results) != 1 {
		t.Fatalf("search: %v %+v", err, page)
	}

	if err := cl.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := cl.CurrentUser(context.Background()); !errors.Is(err, travelapi.ErrUnauthorized) {
		t.Fatalf("expected unauthorized after logout, got %v", err)
	}
}
