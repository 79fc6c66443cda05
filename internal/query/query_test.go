package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_booking/internal/catalog"
	"travel_booking/internal/domain"
	"travel_booking/internal/query"
)

func engine() *query.Engine { return query.New(catalog.New()) }

func ptr[T any](v T) *T { return &v }

func TestHotelsPriceRangeIsInclusive(t *testing.T) {
	e := engine()
	for _, pr := range []domain.PriceRange{{Min: 0, Max: 1000}, {Min: 180, Max: 289}, {Min: 245, Max: 245}, {Min: 500, Max: 600}} {
		res := e.SearchHotels(query.HotelQuery{Filters: domain.SearchFilters{PriceRange: ptr(pr)}})
		require.NotNil(t, res)
		for _, h := range res {
			assert.GreaterOrEqual(t, h.Price, pr.Min)
			assert.LessOrEqual(t, h.Price, pr.Max)
		}
	}
	res := e.SearchHotels(query.HotelQuery{Filters: domain.SearchFilters{PriceRange: &domain.PriceRange{Min: 245, Max: 245}}})
	require.Len(t, res, 1)
	assert.Equal(t, "Tokyo Bay Resort", res[0].Name)
}

func TestSortOrders(t *testing.T) {
	e := engine()

	byPrice := e.SearchHotels(query.HotelQuery{Sort: domain.SortPrice})
	for i := 1; i < len(byPrice); i++ {
		assert.LessOrEqual(t, byPrice[i-1].Price, byPrice[i].Price)
	}
	byRating := e.SearchHotels(query.HotelQuery{Sort: domain.SortRating})
	for i := 1; i < len(byRating); i++ {
		assert.GreaterOrEqual(t, byRating[i-1].Rating, byRating[i].Rating)
	}
	cars := e.SearchCars(query.CarQuery{Sort: domain.SortRating})
	for i := 1; i < len(cars); i++ {
		assert.GreaterOrEqual(t, cars[i-1].Rental.Rating, cars[i].Rental.Rating)
	}
	cats := e.SearchCars(query.CarQuery{Sort: domain.SortCategory})
	for i := 1; i < len(cats); i++ {
		assert.LessOrEqual(t, cats[i-1].Category, cats[i].Category)
	}
	deps := e.SearchFlights(query.FlightQuery{Sort: domain.SortDeparture})
	for i := 1; i < len(deps); i++ {
		assert.False(t, deps[i].Departure.Before(deps[i-1].Departure))
	}
}

func TestRatingSortIsStable(t *testing.T) {
	// 1, 8 share 4.8 and 4, 9 share 4.7; ties keep catalog order.
	res := engine().SearchHotels(query.HotelQuery{Sort: domain.SortRating})
	var ids []string
	for _, h := range res {
		ids = append(ids, h.ID)
	}
	assert.Equal(t, []string{"5", "1", "8", "4", "9", "2", "6", "7", "3", "10"}, ids)
}

func TestUnknownSortKeepsIdentityOrder(t *testing.T) {
	e := engine()
	res := e.SearchHotels(query.HotelQuery{Sort: "nonsense"})
	require.Len(t, res, 10)
	for i, h := range res {
		assert.Equal(t, catalog.New().Hotels()[i].ID, h.ID)
	}
	// duration means nothing for hotels.
	assert.Equal(t, res, e.SearchHotels(query.HotelQuery{Sort: domain.SortDuration}))
}

func TestDistanceSort(t *testing.T) {
	e := engine()
	noRef := e.SearchHotels(query.HotelQuery{Sort: domain.SortDistance})
	assert.Equal(t, e.SearchHotels(query.HotelQuery{}), noRef, "without a reference point the order is untouched")

	zurich := domain.Coordinates{Lat: 47.3769, Lng: 8.5417}
	res := e.SearchHotels(query.HotelQuery{Sort: domain.SortDistance, Near: &zurich})
	require.NotEmpty(t, res)
	assert.Equal(t, "Swiss Alpine Lodge", res[0].Name)
	for i := 1; i < len(res); i++ {
		assert.LessOrEqual(t,
			query.Distance(zurich, res[i-1].Location.Coordinates),
			query.Distance(zurich, res[i].Location.Coordinates))
	}
}

func TestEmptyLocationIsNoop(t *testing.T) {
	e := engine()
	all := e.SearchHotels(query.HotelQuery{})
	assert.Equal(t, all, e.SearchHotels(query.HotelQuery{Destination: ""}))
	assert.Equal(t, all, e.SearchHotels(query.HotelQuery{Destination: "   "}))
	assert.Equal(t, all, e.SearchHotels(query.HotelQuery{Destination: "Where are you going?"}))

	flights := e.SearchFlights(query.FlightQuery{})
	assert.Equal(t, flights, e.SearchFlights(query.FlightQuery{From: "From where?", To: "Where to?"}))

	cars := e.SearchCars(query.CarQuery{Age: 25})
	assert.Equal(t, cars, e.SearchCars(query.CarQuery{Location: "Pick-up location", Age: 25}))
}

func TestHotelDestinationMatchesCityCountryOrName(t *testing.T) {
	e := engine()
	japan := e.SearchHotels(query.HotelQuery{Destination: "JAPAN"})
	assert.Len(t, japan, 2)
	byName := e.SearchHotels(query.HotelQuery{Destination: "ryokan"})
	require.Len(t, byName, 1)
	assert.Equal(t, "8", byName[0].ID)
	assert.Empty(t, e.SearchHotels(query.HotelQuery{Destination: "Atlantis"}))
	assert.NotNil(t, e.SearchHotels(query.HotelQuery{Destination: "Atlantis"}))
}

func TestTagFilterIsOr(t *testing.T) {
	e := engine()
	res := e.SearchHotels(query.HotelQuery{Filters: domain.SearchFilters{Tags: []string{"Zen Garden", "Ski Storage"}}})
	var names []string
	for _, h := range res {
		names = append(names, h.Name)
	}
	assert.ElementsMatch(t, []string{"Swiss Alpine Lodge", "Kyoto Traditional Ryokan"}, names)
}

func TestMinRating(t *testing.T) {
	res := engine().SearchHotels(query.HotelQuery{Filters: domain.SearchFilters{MinRating: ptr(4.8)}})
	require.Len(t, res, 3)
	for _, h := range res {
		assert.GreaterOrEqual(t, h.Rating, 4.8)
	}
}

func TestCarsRespectAgeAndAvailability(t *testing.T) {
	e := engine()
	for _, age := range []int{18, 21, 25, 30, 70} {
		res := e.SearchCars(query.CarQuery{Age: age})
		for _, c := range res {
			assert.True(t, c.Available)
			assert.GreaterOrEqual(t, age, c.Rental.Requirements.MinAge)
		}
	}
	assert.Len(t, e.SearchCars(query.CarQuery{Age: 18}), 1)
	// age 0 skips the age filter but unavailable cars are still dropped.
	assert.Len(t, e.SearchCars(query.CarQuery{}), 7)
}

func TestCarTags(t *testing.T) {
	res := engine().SearchCars(query.CarQuery{Age: 40, Filters: domain.SearchFilters{Tags: []string{"Electric"}}})
	require.Len(t, res, 1)
	assert.Equal(t, "Tesla Model Y", res[0].Name)
}

func TestFlightFilters(t *testing.T) {
	e := engine()
	nonstop := e.SearchFlights(query.FlightQuery{Filters: domain.SearchFilters{Stops: ptr(0)}})
	for _, f := range nonstop {
		assert.Zero(t, f.Stops)
	}
	business := e.SearchFlights(query.FlightQuery{Filters: domain.SearchFilters{CabinClass: domain.Business}})
	require.NotEmpty(t, business)
	for _, f := range business {
		assert.Equal(t, domain.Business, f.CabinClass)
	}
	londonDubai := e.SearchFlights(query.FlightQuery{From: "london", To: "dubai"})
	require.Len(t, londonDubai, 1)
	assert.Equal(t, "BA 789", londonDubai[0].FlightNumber)
}

func TestOneSidedRouteKeepsAllFlights(t *testing.T) {
	e := engine()
	all := e.SearchFlights(query.FlightQuery{})
	assert.Equal(t, all, e.SearchFlights(query.FlightQuery{From: "New York"}))
	assert.Equal(t, all, e.SearchFlights(query.FlightQuery{To: "Paris"}))
	assert.Equal(t, all, e.SearchFlights(query.FlightQuery{From: "New York", To: "Where to?"}))
}

func TestScenarioParisHotelsByPrice(t *testing.T) {
	res := engine().SearchHotels(query.HotelQuery{
		Destination: "Paris",
		Filters:     domain.SearchFilters{PriceRange: &domain.PriceRange{Min: 0, Max: 1000}},
		Sort:        domain.SortPrice,
	})
	idx := -1
	for i, h := range res {
		if h.Name == "Grand Luxury Hotel Paris" {
			idx = i
			assert.Equal(t, 289.0, h.Price)
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	for _, h := range res[idx+1:] {
		assert.GreaterOrEqual(t, h.Price, 289.0)
	}
}

func TestScenarioNewYorkParisFlights(t *testing.T) {
	e := engine()
	res := e.SearchFlights(query.FlightQuery{From: "New York", To: "Paris"})
	var af *domain.Flight
	for i := range res {
		if res[i].FlightNumber == "AF 1234" {
			af = &res[i]
		}
	}
	require.NotNil(t, af)
	assert.Equal(t, 599.0, af.Price)

	byDuration := e.SearchFlights(query.FlightQuery{From: "New York", To: "Paris", Sort: domain.SortDuration})
	seen := false
	for _, f := range byDuration {
		if f.FlightNumber == "AF 1234" {
			seen = true
			continue
		}
		if f.Duration < af.Duration {
			assert.False(t, seen, "%s is shorter and must come first", f.FlightNumber)
		}
	}
	assert.Equal(t, "DL 264", byDuration[0].FlightNumber)
}

func TestPaging(t *testing.T) {
	assert.Equal(t, 0, query.TotalPages(0, 10))
	assert.Equal(t, 1, query.TotalPages(10, 10))
	assert.Equal(t, 2, query.TotalPages(11, 10))

	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, query.Page(items, 2, 2))
	assert.Equal(t, []int{5}, query.Page(items, 3, 2))
	assert.Equal(t, []int{}, query.Page(items, 4, 2))
	assert.Equal(t, []int{}, query.Page(items, 0, 2))
}

func TestResultsAreCopies(t *testing.T) {
	e := engine()
	res := e.SearchHotels(query.HotelQuery{})
	res[0].Price = 1
	assert.NotEqual(t, 1.0, e.SearchHotels(query.HotelQuery{})[0].Price)
}
