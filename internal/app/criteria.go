package app

import (
	"net/url"
	"strings"

	"github.com/spf13/cast"

	"travel_booking/internal/domain"
)

// Query-string defaults of the search page.
const (
	DefaultGuests     = 2
	DefaultRooms      = 1
	DefaultPassengers = 1
	DefaultDriverAge  = 25
	DefaultTripType   = "one-way"
)

// ParseCriteria reads the search query-string contract. Every parameter is optional;
// malformed numbers fall back to their default.
func ParseCriteria(v url.Values) domain.SearchCriteria {
	c := domain.SearchCriteria{
		Destination: v.Get("destination"),
		CheckIn:     v.Get("checkIn"),
		CheckOut:    v.Get("checkOut"),
		Guests:      intOr(v.Get("guests"), DefaultGuests),
		Rooms:       intOr(v.Get("rooms"), DefaultRooms),
		From:        v.Get("from"),
		To:          v.Get("to"),
		Departure:   v.Get("departureDate"),
		Return:      v.Get("returnDate"),
		Passengers:  intOr(v.Get("passengers"), DefaultPassengers),
		TripType:    v.Get("tripType"),
		CabinClass:  domain.CabinClass(strings.ToLower(v.Get("class"))),
		Location:    v.Get("location"),
		PickupDate:  v.Get("pickupDate"),
		DropoffDate: v.Get("dropoffDate"),
		Age:         intOr(v.Get("age"), DefaultDriverAge),
	}
	if c.TripType != "round-trip" {
		c.TripType = DefaultTripType
	}
	switch c.CabinClass {
	case domain.Economy, domain.Business, domain.First:
	default:
		c.CabinClass = domain.Economy
	}
	if lat, lng := v.Get("lat"), v.Get("lng"); lat != "" && lng != "" {
		la, errA := cast.ToFloat64E(lat)
		ln, errB := cast.ToFloat64E(lng)
		if errA == nil && errB == nil {
			c.Near = &domain.Coordinates{Lat: la, Lng: ln}
		}
	}
	return c
}

func intOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := cast.ToIntE(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
