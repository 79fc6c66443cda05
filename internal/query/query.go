// Package query is the search engine over the static catalog: filter, then stable-sort.
// Every entry point is pure and synchronous. None of them can fail and none returns nil.
package query

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"travel_booking/internal/catalog"
	"travel_booking/internal/domain"
)

// Placeholder strings of the search forms. They are treated as an empty location.
var placeholders = map[string]struct{}{
	"where are you going?": {},
	"from where?":          {},
	"where to?":            {},
	"pick-up location":     {},
}

type HotelQuery struct {
	Destination string
	CheckIn     string
	CheckOut    string
	Guests      int
	Rooms       int
	Filters     domain.SearchFilters
	Sort        domain.SortKey
	Near        *domain.Coordinates
}

type FlightQuery struct {
	From       string
	To         string
	Departure  string
	Return     string
	Passengers int
	TripType   string
	Filters    domain.SearchFilters
	Sort       domain.SortKey
}

type CarQuery struct {
	Location    string
	PickupDate  string
	DropoffDate string
	Age         int
	Filters     domain.SearchFilters
	Sort        domain.SortKey
	Near        *domain.Coordinates
}

type Engine struct {
	cat *catalog.Catalog
}

func New(cat *catalog.Catalog) *Engine { return &Engine{cat: cat} }

func (e *Engine) SearchHotels(q HotelQuery) []domain.Hotel {
	out := e.cat.Hotels()
	if needle, ok := location(q.Destination); ok {
		out = keep(out, func(h domain.Hotel) bool {
			return contains(h.Location.City, needle) || contains(h.Location.Country, needle) || contains(h.Name, needle)
		})
	}
	f := q.Filters
	if f.PriceRange != nil {
		out = keep(out, func(h domain.Hotel) bool { return f.PriceRange.Contains(h.Price) })
	}
	if f.MinRating != nil {
		out = keep(out, func(h domain.Hotel) bool { return h.Rating >= *f.MinRating })
	}
	if len(f.Tags) > 0 {
		out = keep(out, func(h domain.Hotel) bool { return anyTag(h.Amenities, f.Tags) })
	}

	switch q.Sort {
	case domain.SortPrice:
		slices.SortStableFunc(out, func(a, b domain.Hotel) int { return cmp.Compare(a.Price, b.Price) })
	case domain.SortRating:
		slices.SortStableFunc(out, func(a, b domain.Hotel) int { return cmp.Compare(b.Rating, a.Rating) })
	case domain.SortDistance:
		if q.Near != nil {
			ref := *q.Near
			slices.SortStableFunc(out, func(a, b domain.Hotel) int {
				return cmp.Compare(Distance(ref, a.Location.Coordinates), Distance(ref, b.Location.Coordinates))
			})
		}
	}
	return out
}

func (e *Engine) SearchFlights(q FlightQuery) []domain.Flight {
	out := e.cat.Flights()
	// The route narrows results only when both ends are given.
	from, okFrom := location(q.From)
	to, okTo := location(q.To)
	if okFrom && okTo {
		out = keep(out, func(f domain.Flight) bool { return contains(f.From.City, from) && contains(f.To.City, to) })
	}
	f := q.Filters
	if f.PriceRange != nil {
		out = keep(out, func(fl domain.Flight) bool { return f.PriceRange.Contains(fl.Price) })
	}
	if f.Stops != nil {
		out = keep(out, func(fl domain.Flight) bool { return fl.Stops == *f.Stops })
	}
	if f.CabinClass != "" {
		out = keep(out, func(fl domain.Flight) bool { return fl.CabinClass == f.CabinClass })
	}
	if len(f.Tags) > 0 {
		out = keep(out, func(fl domain.Flight) bool { return anyTag(fl.Amenities, f.Tags) })
	}

	switch q.Sort {
	case domain.SortPrice:
		slices.SortStableFunc(out, func(a, b domain.Flight) int { return cmp.Compare(a.Price, b.Price) })
	case domain.SortDuration:
		slices.SortStableFunc(out, func(a, b domain.Flight) int { return cmp.Compare(a.Duration, b.Duration) })
	case domain.SortDeparture:
		slices.SortStableFunc(out, func(a, b domain.Flight) int { return a.Departure.Compare(b.Departure) })
	}
	return out
}

func (e *Engine) SearchCars(q CarQuery) []domain.Car {
	out := e.cat.Cars()
	if needle, ok := location(q.Location); ok {
		out = keep(out, func(c domain.Car) bool {
			return contains(c.Location.City, needle) || contains(c.Location.Country, needle) ||
				contains(c.Location.PickupAddress, needle) || contains(c.Name, needle)
		})
	}
	f := q.Filters
	if f.PriceRange != nil {
		out = keep(out, func(c domain.Car) bool { return f.PriceRange.Contains(c.Price) })
	}
	if len(f.Tags) > 0 {
		out = keep(out, func(c domain.Car) bool { return anyTag(c.Tags(), f.Tags) })
	}
	out = keep(out, func(c domain.Car) bool {
		if !c.Available {
			return false
		}
		return q.Age <= 0 || c.Rental.Requirements.MinAge <= q.Age
	})

	switch q.Sort {
	case domain.SortPrice:
		slices.SortStableFunc(out, func(a, b domain.Car) int { return cmp.Compare(a.Price, b.Price) })
	case domain.SortRating:
		slices.SortStableFunc(out, func(a, b domain.Car) int { return cmp.Compare(b.Rental.Rating, a.Rental.Rating) })
	case domain.SortCategory:
		slices.SortStableFunc(out, func(a, b domain.Car) int { return cmp.Compare(a.Category, b.Category) })
	case domain.SortDistance:
		if q.Near != nil {
			ref := *q.Near
			slices.SortStableFunc(out, func(a, b domain.Car) int {
				return cmp.Compare(Distance(ref, a.Location.Coordinates), Distance(ref, b.Location.Coordinates))
			})
		}
	}
	return out
}

// TotalPages is ceil(n/size), and never less than zero.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Page returns the 1-based page of items. Out-of-range pages are empty, not nil.
func Page[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))
	return slices.Clone(items[start:end])
}

const earthRadiusKm = 6371.0

// Distance is the great-circle distance in kilometres.
func Distance(a, b domain.Coordinates) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := rad(b.Lat - a.Lat)
	dLng := rad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(a.Lat))*math.Cos(rad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

func location(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	if _, ok := placeholders[s]; ok {
		return "", false
	}
	return s, true
}

func contains(field, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(field), lowerNeedle)
}

func anyTag(have, want []string) bool {
	for _, w := range want {
		if slices.Contains(have, w) {
			return true
		}
	}
	return false
}

func keep[T any](in []T, pred func(T) bool) []T {
	out := in[:0]
	for _, v := range in {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}
