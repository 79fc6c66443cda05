package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"

	"travel_booking/internal/app"
	"travel_booking/internal/catalog"
	"travel_booking/internal/domain"
	"travel_booking/internal/query"
	"travel_booking/internal/state"
)

type Handlers struct {
	Catalog  *catalog.Catalog
	Search   *app.SearchService
	Bookings *app.BookingService
	Events   *app.EventService
	Auth     *app.AuthService
	Sessions *app.Sessions
	// Storage backs the per-session local storage routes.
	Storage domain.KV
	// RequireAuth guards the account routes; see RequireAuth in auth.go.
	RequireAuth func(http.Handler) http.Handler
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api/v1", func(r chi.Router) {
		r.Route("/search/{type}", func(r chi.Router) {
			r.Get("/", h.search)
			r.Get("/state", h.searchState)
			r.Patch("/filters", h.setFilters)
			r.Delete("/filters", h.resetFilters)
			r.Put("/sort", h.setSort)
			r.Put("/page", h.setPage)
			r.Delete("/results", h.clearResults)
		})

		r.Get("/hotels/{id}", h.getItem(domain.Hotels))
		r.Get("/flights/{id}", h.getItem(domain.Flights))
		r.Get("/cars/{id}", h.getItem(domain.Cars))

		r.Get("/booking/draft", h.getDraft)
		r.Patch("/booking/draft", h.updateDraft)
		r.Delete("/booking/draft", h.clearDraft)
		r.Post("/booking/draft/hotel", h.startHotel)
		r.Post("/booking/draft/flight", h.startFlight)
		r.Post("/booking/draft/car", h.startCar)

		r.Post("/auth/demo-login", h.demoLogin)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuth)
			r.Get("/users/me", h.me)
			r.Post("/booking/confirm", h.confirm)
			r.Get("/bookings", h.listBookings)
			r.Post("/bookings", h.createBooking)
			r.Get("/bookings/{id}", h.getBooking)
			r.Post("/bookings/{id}/cancel", h.cancelBooking)
		})

		r.Post("/logs/events", h.logEvent)
		r.Get("/logs/events", h.listEvents)

		r.Get("/storage/{key}", h.getStorage)
		r.Put("/storage/{key}", h.setStorage)
		r.Delete("/storage/{key}", h.delStorage)

		r.Get("/ui", h.getUI)
		r.Put("/ui/search-type", h.setSearchType)
		r.Post("/ui/modals/{name}/{action}", h.toggleModal)
		r.Delete("/ui/modals", h.closeModals)
	})
}

// view is store for handlers that only read; it never registers a new session.
func (h *Handlers) view(r *http.Request) *state.Store {
	return h.Sessions.Peek(SessionID(r.Context()))
}

func (h *Handlers) store(r *http.Request) *state.Store {
	return h.Sessions.Get(SessionID(r.Context()))
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, http.StatusBadRequest, "Invalid Input", err.Error())
	case errors.Is(err, domain.ErrUnderage), errors.Is(err, domain.ErrUnavailable):
		writeProblem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", err.Error())
	case errors.Is(err, domain.ErrNoDraft), errors.Is(err, domain.ErrInvalidTransition):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst); err != nil {
		return errors.Join(domain.ErrInvalidInput, err)
	}
	return nil
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// ---- search ----

// searchPage is one page of a session's result set.
type searchPage struct {
	Type       domain.CatalogType    `json:"type"`
	Criteria   domain.SearchCriteria `json:"criteria"`
	Results    []domain.CatalogItem  `json:"results"`
	Filters    domain.SearchFilters  `json:"filters"`
	SortBy     domain.SortKey        `json:"sortBy"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"totalPages"`
	Total      int                   `json:"total"`
	Loading    bool                  `json:"loading"`
	Error      string                `json:"error,omitempty"`
}

func (h *Handlers) page(rs domain.SearchResultSet) searchPage {
	return searchPage{
		Type:       rs.Type,
		Criteria:   rs.Criteria,
		Results:    query.Page(rs.Items, rs.Page, h.Search.PageSize()),
		Filters:    rs.Filters,
		SortBy:     rs.Sort,
		Page:       rs.Page,
		TotalPages: rs.TotalPages,
		Total:      len(rs.Items),
		Loading:    rs.Loading,
		Error:      rs.Error,
	}
}

func catalogType(w http.ResponseWriter, r *http.Request) (domain.CatalogType, bool) {
	t, ok := domain.ParseCatalogType(chi.URLParam(r, "type"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown catalog type")
	}
	return t, ok
}

// search runs a new search from the query-string contract. sortBy and page are optional;
// a new search starts on page 1.
func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	t, ok := catalogType(w, r)
	if !ok {
		return
	}
	st := h.store(r)
	q := r.URL.Query()
	if k := q.Get("sortBy"); k != "" {
		if err := st.Dispatch(state.SetSort{Type: t, Key: domain.SortKey(k)}); err != nil {
			writeError(w, err)
			return
		}
	}
	page := 1
	if p := q.Get("page"); p != "" {
		n, err := cast.ToIntE(p)
		if err != nil || n < 1 {
			writeProblem(w, http.StatusBadRequest, "Invalid page", "page must be a positive integer")
			return
		}
		page = n
	}
	if err := st.Dispatch(state.SetPage{Type: t, Page: page}); err != nil {
		writeError(w, err)
		return
	}
	_ = st.Dispatch(state.SetSearchType{Type: t})

	rs, err := h.Search.Search(r.Context(), st, t, app.ParseCriteria(q))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.page(rs))
}

func (h *Handlers) searchState(w http.ResponseWriter, r *http.Request) {
	t, ok := catalogType(w, r)
	if !ok {
		return
	}
	rs, err := h.view(r).Search(t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.page(rs))
}

func (h *Handlers) setFilters(w http.ResponseWriter, r *http.Request) {
	t, ok := catalogType(w, r)
	if !ok {
		return
	}
	var p domain.FiltersPatch
	if err := decode(r, &p); err != nil {
		writeError(w, err)
		return
	}
	rs, err := h.Search.SetFilters(r.Context(), h.store(r), t, p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.page(rs))
}

func (h *Handlers) resetFilters(w http.ResponseWriter, r *http.Request) {
	t, ok := catalogType(w, r)
	if !ok {
		return
	}
	rs, err := h.Search.ResetFilters(r.Context(), h.store(r), t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.page(rs))
}

func (h *Handlers) setSort(w http.ResponseWriter, r *http.Request) {
	t, ok := catalogType(w, r)
	if !ok {
		return
	}
	var body struct {
		SortBy domain.SortKey `json:"sortBy"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	rs, err := h.Search.SetSort(r.Context(), h.store(r), t, body.SortBy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.page(rs))
}

func (h *Handlers) setPage(w http.ResponseWriter, r *http.Request) {
	t, ok := catalogType(w, r)
	if !ok {
		return
	}
	var body struct {
		Page int `json:"page"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	rs, err := h.Search.SetPage(r.Context(), h.store(r), t, body.Page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.page(rs))
}

func (h *Handlers) clearResults(w http.ResponseWriter, r *http.Request) {
	t, ok := catalogType(w, r)
	if !ok {
		return
	}
	st := h.store(r)
	if err := st.Dispatch(state.ClearResults{Type: t}); err != nil {
		writeError(w, err)
		return
	}
	rs, _ := st.Search(t)
	writeJSON(w, http.StatusOK, h.page(rs))
}

// ---- catalog items ----

func (h *Handlers) getItem(t domain.CatalogType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := h.Catalog.Item(t, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}

		etag, body := calcETagAndBody(item)
		// If client already has this version, short-circuit.
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
			w.Header().Set("ETag", etag)
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			log.Error().Err(err).Str("type", string(t)).Msg("failed to write item body")
		}
	}
}

// ---- booking flow ----

func (h *Handlers) getDraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.view(r).Booking())
}

func (h *Handlers) updateDraft(w http.ResponseWriter, r *http.Request) {
	var p domain.DraftPatch
	if err := decode(r, &p); err != nil {
		writeError(w, err)
		return
	}
	st := h.store(r)
	if err := st.Dispatch(state.UpdateDraft{Patch: p}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st.Booking())
}

func (h *Handlers) clearDraft(w http.ResponseWriter, r *http.Request) {
	st := h.store(r)
	_ = st.Dispatch(state.ClearDraft{})
	_ = st.Dispatch(state.ClearBookingError{})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) startHotel(w http.ResponseWriter, r *http.Request) {
	var req app.HotelRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.started(w, r, func(st *state.Store) (domain.BookingDraft, error) {
		return h.Bookings.StartHotel(r.Context(), st, req)
	})
}

func (h *Handlers) startFlight(w http.ResponseWriter, r *http.Request) {
	var req app.FlightRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.started(w, r, func(st *state.Store) (domain.BookingDraft, error) {
		return h.Bookings.StartFlight(r.Context(), st, req)
	})
}

func (h *Handlers) startCar(w http.ResponseWriter, r *http.Request) {
	var req app.CarRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.started(w, r, func(st *state.Store) (domain.BookingDraft, error) {
		return h.Bookings.StartCar(r.Context(), st, req)
	})
}

func (h *Handlers) started(w http.ResponseWriter, r *http.Request, start func(*state.Store) (domain.BookingDraft, error)) {
	st := h.store(r)
	if _, err := start(st); err != nil {
		writeError(w, err)
		return
	}
	_ = st.Dispatch(state.OpenModal{Modal: state.ModalBooking})
	writeJSON(w, http.StatusCreated, st.Booking())
}

func (h *Handlers) confirm(w http.ResponseWriter, r *http.Request) {
	var co app.Checkout
	if err := decode(r, &co); err != nil {
		writeError(w, err)
		return
	}
	st := h.store(r)
	b, err := h.Bookings.Confirm(r.Context(), st, userID(r), co)
	if err != nil {
		writeError(w, err)
		return
	}
	_ = st.Dispatch(state.CloseModal{Modal: state.ModalBooking})
	writeJSON(w, http.StatusCreated, b)
}

// ---- bookings ----

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	bs, err := h.Bookings.LoadBookings(r.Context(), h.store(r), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bs)
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var b domain.Booking
	if err := decode(r, &b); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Bookings.Create(r.Context(), userID(r), b)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Bookings.Get(r.Context(), h.view(r), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Bookings.Cancel(r.Context(), h.store(r), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// ---- auth ----

func (h *Handlers) demoLogin(w http.ResponseWriter, r *http.Request) {
	tok, _, err := h.Auth.DemoLogin()
	if err != nil {
		writeError(w, err)
		return
	}
	_ = h.store(r).Dispatch(state.CloseModal{Modal: state.ModalLogin})
	writeJSON(w, http.StatusOK, tok)
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Auth.User(userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// ---- telemetry ----

func (h *Handlers) logEvent(w http.ResponseWriter, r *http.Request) {
	var e domain.TelemetryEvent
	if err := decode(r, &e); err != nil {
		writeError(w, err)
		return
	}
	id, err := h.Events.Record(r.Context(), e, "frontend")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "event_id": id})
}

func (h *Handlers) listEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	eq := domain.EventQuery{
		UserID:    q.Get("user_id"),
		SessionID: q.Get("session_id"),
		EventType: q.Get("event_type"),
	}
	for name, dst := range map[string]*int{"limit": &eq.Limit, "offset": &eq.Offset} {
		if s := q.Get(name); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				writeProblem(w, http.StatusBadRequest, "Invalid "+name, name+" must be a non-negative integer")
				return
			}
			*dst = n
		}
	}
	page, err := h.Events.List(r.Context(), eq)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// ---- local storage ----

type storageItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// storageKey scopes a local storage key to the request's session.
func storageKey(r *http.Request) (string, bool) {
	k := chi.URLParam(r, "key")
	if k == "" || len(k) > 128 {
		return "", false
	}
	return SessionID(r.Context()) + ":" + k, true
}

func (h *Handlers) getStorage(w http.ResponseWriter, r *http.Request) {
	k, ok := storageKey(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid key")
		return
	}
	v, found, err := h.Storage.Get(r.Context(), k)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, domain.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, storageItem{Key: chi.URLParam(r, "key"), Value: v})
}

func (h *Handlers) setStorage(w http.ResponseWriter, r *http.Request) {
	k, ok := storageKey(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid key")
		return
	}
	var body struct {
		Value string `json:"value"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Storage.Set(r.Context(), k, body.Value); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) delStorage(w http.ResponseWriter, r *http.Request) {
	k, ok := storageKey(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid key")
		return
	}
	if err := h.Storage.Del(r.Context(), k); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- ui chrome ----

func (h *Handlers) getUI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.view(r).UI())
}

func (h *Handlers) setSearchType(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Type string `json:"type"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	t, ok := domain.ParseCatalogType(body.Type)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid Input", "type must be hotels, flights or cars")
		return
	}
	st := h.store(r)
	if err := st.Dispatch(state.SetSearchType{Type: t}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st.UI())
}

func (h *Handlers) toggleModal(w http.ResponseWriter, r *http.Request) {
	m, ok := state.ParseModal(chi.URLParam(r, "name"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown modal")
		return
	}
	var a state.Action
	switch chi.URLParam(r, "action") {
	case "open":
		a = state.OpenModal{Modal: m}
	case "close":
		a = state.CloseModal{Modal: m}
	default:
		writeProblem(w, http.StatusNotFound, "Not Found", "action must be open or close")
		return
	}
	st := h.store(r)
	if err := st.Dispatch(a); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st.UI())
}

func (h *Handlers) closeModals(w http.ResponseWriter, r *http.Request) {
	st := h.store(r)
	_ = st.Dispatch(state.CloseAllModals{})
	writeJSON(w, http.StatusOK, st.UI())
}
