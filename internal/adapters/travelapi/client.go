// Package travelapi is the REST client of the booking API. The bearer token and the current user
// live in local storage, the way the web client keeps them.
package travelapi

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"travel_booking/internal/adapters/observability"
	"travel_booking/internal/domain"
)

const SessionHeader = "X-Session-ID"

type Client struct {
	base    string
	hc      *http.Client
	kv      domain.KV
	rl      *rate.Limiter
	session string
}

func New(base string, kv domain.KV, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("API base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		kv:   kv,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// SetSession pins the server-side session the search and booking-draft calls act on.
func (c *Client) SetSession(id string) { c.session = id }

func (c *Client) Session() string { return c.session }

// APIError carries the status of a non-2xx response.
type APIError struct {
	Status     int
	StatusText string
}

func (e *APIError) Error() string { return fmt.Sprintf("API Error: %d %s", e.Status, e.StatusText) }

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	}
	return nil
}

var ErrUnauthorized = errors.New("travelapi: unauthorized")

// ---- auth ----

// DemoLogin signs in as the demo user and stores the token and user in local storage.
func (c *Client) DemoLogin(ctx context.Context) (domain.User, error) {
	var tok domain.Token
	if err := c.do(ctx, http.MethodPost, "/auth/demo-login", nil, &tok); err != nil {
		return domain.User{}, err
	}
	if err := c.kv.Set(ctx, domain.KeyAuthToken, tok.AccessToken); err != nil {
		return domain.User{}, err
	}
	u, err := c.CurrentUser(ctx)
	if err != nil {
		return domain.User{}, err
	}
	b, err := json.Marshal(u)
	if err != nil {
		return domain.User{}, err
	}
	return u, c.kv.Set(ctx, domain.KeyUser, string(b))
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.kv.Del(ctx, domain.KeyAuthToken); err != nil {
		return err
	}
	return c.kv.Del(ctx, domain.KeyUser)
}

func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var u domain.User
	return u, c.do(ctx, http.MethodGet, "/users/me", nil, &u)
}

// ---- bookings ----

func (c *Client) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	var out domain.Booking
	return out, c.do(ctx, http.MethodPost, "/bookings", b, &out)
}

func (c *Client) GetUserBookings(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	return out, c.do(ctx, http.MethodGet, "/bookings", nil, &out)
}

func (c *Client) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	var out domain.Booking
	return out, c.do(ctx, http.MethodGet, "/bookings/"+url.PathEscape(id), nil, &out)
}

func (c *Client) CancelBooking(ctx context.Context, id string) (domain.Booking, error) {
	var out domain.Booking
	return out, c.do(ctx, http.MethodPost, "/bookings/"+url.PathEscape(id)+"/cancel", nil, &out)
}

// ---- catalog ----

// HotelsPage is one page of a hotel search.
type HotelsPage struct {
	Results    []domain.Hotel       `json:"results"`
	Filters    domain.SearchFilters `json:"filters"`
	SortBy     domain.SortKey       `json:"sortBy"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
	Total      int                  `json:"total"`
}

// SearchHotels runs a hotel search with the query-string contract (destination, checkIn, guests, ...).
func (c *Client) SearchHotels(ctx context.Context, q url.Values) (HotelsPage, error) {
	var out HotelsPage
	p := "/search/hotels"
	if len(q) > 0 {
		p += "?" + q.Encode()
	}
	return out, c.do(ctx, http.MethodGet, p, nil, &out)
}

func (c *Client) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	var out domain.Hotel
	return out, c.do(ctx, http.MethodGet, "/hotels/"+url.PathEscape(id), nil, &out)
}

// ---- telemetry ----

// SendEvent posts one telemetry event. Only a 2xx answer counts as delivered.
func (c *Client) SendEvent(ctx context.Context, e domain.TelemetryEvent) error {
	return c.do(ctx, http.MethodPost, "/logs/events", e, nil)
}

// ---- internals ----

// do sends one request. GETs are retried on 429 and transient 5xx; writes are sent once.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = b
	}
	attempts := 1
	if method == http.MethodGet {
		attempts = 4
	}
	endpoint := path
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, method, c.base+path, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("User-Agent", "travel-booking/1.0")
		if c.session != "" {
			req.Header.Set(SessionHeader, c.session)
		}
		if tok, ok, _ := c.kv.Get(ctx, domain.KeyAuthToken); ok && tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("travelapi", endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < attempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("travelapi", endpoint, resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			defer resp.Body.Close()
			if out == nil || resp.StatusCode == http.StatusNoContent {
				_, _ = io.Copy(io.Discard, resp.Body)
				return nil
			}
			return json.NewDecoder(resp.Body).Decode(out)

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = &APIError{Status: resp.StatusCode, StatusText: statusText(resp)}
			if i < attempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return &APIError{Status: resp.StatusCode, StatusText: statusText(resp)}
		}
	}
	return lastErr
}

// statusText is the reason phrase of resp, e.g. "Not Found".
func statusText(resp *http.Response) string {
	if s := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))); s != "" {
		return s
	}
	return http.StatusText(resp.StatusCode)
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 100ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 100 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
