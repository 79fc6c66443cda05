package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"travel_booking/internal/adapters/observability"
	"travel_booking/internal/domain"
	"travel_booking/internal/query"
	"travel_booking/internal/state"
)

// SearchService runs the query engine against a session store and owns re-search after filter changes.
type SearchService struct {
	engine   *query.Engine
	cache    domain.Cache
	cacheTTL time.Duration
	pageSize int
}

func NewSearchService(e *query.Engine, c domain.Cache, ttl time.Duration, pageSize int) *SearchService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &SearchService{engine: e, cache: c, cacheTTL: ttl, pageSize: pageSize}
}

func (s *SearchService) PageSize() int { return s.pageSize }

// Search records the criteria, runs the engine with the store's current filters and sort,
// and completes the search under the issued sequence number.
func (s *SearchService) Search(ctx context.Context, st *state.Store, t domain.CatalogType, c domain.SearchCriteria) (domain.SearchResultSet, error) {
	seq, err := st.StartSearch(t, c)
	if err != nil {
		return domain.SearchResultSet{}, err
	}
	cur, err := st.Search(t)
	if err != nil {
		return domain.SearchResultSet{}, err
	}

	items, err := s.run(ctx, t, c, cur.Filters, cur.Sort)
	if err != nil {
		if ferr := st.Dispatch(state.FailSearch{Type: t, Seq: seq, Error: err.Error()}); errors.Is(ferr, state.ErrStale) {
			observability.ObserveSearch(string(t), "stale")
		} else {
			observability.ObserveSearch(string(t), "failed")
		}
		return domain.SearchResultSet{}, err
	}

	err = st.Dispatch(state.CompleteSearch{Type: t, Seq: seq, Items: items, TotalPages: query.TotalPages(len(items), s.pageSize)})
	switch {
	case errors.Is(err, state.ErrStale):
		observability.ObserveSearch(string(t), "stale")
		log.Debug().Str("type", string(t)).Uint64("seq", seq).Msg("search superseded")
	case err != nil:
		return domain.SearchResultSet{}, err
	default:
		observability.ObserveSearch(string(t), "applied")
	}
	return st.Search(t)
}

// OnFilterOrSortChange reissues the last search of t with the store's current filters and sort.
func (s *SearchService) OnFilterOrSortChange(ctx context.Context, st *state.Store, t domain.CatalogType) (domain.SearchResultSet, error) {
	cur, err := st.Search(t)
	if err != nil {
		return domain.SearchResultSet{}, err
	}
	return s.Search(ctx, st, t, cur.Criteria)
}

func (s *SearchService) SetFilters(ctx context.Context, st *state.Store, t domain.CatalogType, p domain.FiltersPatch) (domain.SearchResultSet, error) {
	if err := st.Dispatch(state.SetFilters{Type: t, Patch: p}); err != nil {
		return domain.SearchResultSet{}, err
	}
	return s.OnFilterOrSortChange(ctx, st, t)
}

func (s *SearchService) ResetFilters(ctx context.Context, st *state.Store, t domain.CatalogType) (domain.SearchResultSet, error) {
	if err := st.Dispatch(state.ResetFilters{Type: t}); err != nil {
		return domain.SearchResultSet{}, err
	}
	return s.OnFilterOrSortChange(ctx, st, t)
}

func (s *SearchService) SetSort(ctx context.Context, st *state.Store, t domain.CatalogType, k domain.SortKey) (domain.SearchResultSet, error) {
	if err := st.Dispatch(state.SetSort{Type: t, Key: k}); err != nil {
		return domain.SearchResultSet{}, err
	}
	return s.OnFilterOrSortChange(ctx, st, t)
}

func (s *SearchService) SetPage(ctx context.Context, st *state.Store, t domain.CatalogType, page int) (domain.SearchResultSet, error) {
	if err := st.Dispatch(state.SetPage{Type: t, Page: page}); err != nil {
		return domain.SearchResultSet{}, err
	}
	return s.OnFilterOrSortChange(ctx, st, t)
}

func (s *SearchService) run(ctx context.Context, t domain.CatalogType, c domain.SearchCriteria, f domain.SearchFilters, sort domain.SortKey) ([]domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := cacheKey(t, c, f, sort)
	if err != nil {
		return nil, err
	}
	switch t {
	case domain.Hotels:
		return cached(ctx, s, key, func() []domain.Hotel {
			return s.engine.SearchHotels(query.HotelQuery{
				Destination: c.Destination, CheckIn: c.CheckIn, CheckOut: c.CheckOut,
				Guests: c.Guests, Rooms: c.Rooms, Filters: f, Sort: sort, Near: c.Near,
			})
		}), nil
	case domain.Flights:
		return cached(ctx, s, key, func() []domain.Flight {
			return s.engine.SearchFlights(query.FlightQuery{
				From: c.From, To: c.To, Departure: c.Departure, Return: c.Return,
				Passengers: c.Passengers, TripType: c.TripType, Filters: f, Sort: sort,
			})
		}), nil
	case domain.Cars:
		return cached(ctx, s, key, func() []domain.Car {
			return s.engine.SearchCars(query.CarQuery{
				Location: c.Location, PickupDate: c.PickupDate, DropoffDate: c.DropoffDate,
				Age: c.Age, Filters: f, Sort: sort, Near: c.Near,
			})
		}), nil
	}
	return nil, fmt.Errorf("catalog type %q: %w", t, domain.ErrInvalidInput)
}

func cached[T domain.CatalogItem](ctx context.Context, s *SearchService, key string, run func() []T) []domain.CatalogItem {
	var rows []T
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &rows); ok {
			return toItems(rows)
		}
	}
	rows = run()
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, rows, int(s.cacheTTL.Seconds()))
	}
	return toItems(rows)
}

func toItems[T domain.CatalogItem](rows []T) []domain.CatalogItem {
	out := make([]domain.CatalogItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, r)
	}
	return out
}

func cacheKey(t domain.CatalogType, c domain.SearchCriteria, f domain.SearchFilters, sort domain.SortKey) (string, error) {
	b, err := json.Marshal(struct {
		C domain.SearchCriteria
		F domain.SearchFilters
		S domain.SortKey
	}{c, f, sort})
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(b)
	return "search:" + string(t) + ":" + hex.EncodeToString(sum[:]), nil
}
