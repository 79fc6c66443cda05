// Package catalog holds the static inventory the query engine searches over.
package catalog

import (
	"slices"

	"travel_booking/internal/domain"
)

// Catalog is built once and never mutated. Every accessor hands out copies.
type Catalog struct {
	hotels  []domain.Hotel
	flights []domain.Flight
	cars    []domain.Car
}

func New() *Catalog {
	return &Catalog{hotels: seedHotels(), flights: seedFlights(), cars: seedCars()}
}

// From builds a catalog over caller-provided records. Tests use it to pin inventories.
func From(hotels []domain.Hotel, flights []domain.Flight, cars []domain.Car) *Catalog {
	c := &Catalog{}
	for _, h := range hotels {
		c.hotels = append(c.hotels, cloneHotel(h))
	}
	for _, f := range flights {
		c.flights = append(c.flights, cloneFlight(f))
	}
	for _, x := range cars {
		c.cars = append(c.cars, cloneCar(x))
	}
	return c
}

func (c *Catalog) Hotels() []domain.Hotel {
	out := make([]domain.Hotel, 0, len(c.hotels))
	for _, h := range c.hotels {
		out = append(out, cloneHotel(h))
	}
	return out
}

func (c *Catalog) Flights() []domain.Flight {
	out := make([]domain.Flight, 0, len(c.flights))
	for _, f := range c.flights {
		out = append(out, cloneFlight(f))
	}
	return out
}

func (c *Catalog) Cars() []domain.Car {
	out := make([]domain.Car, 0, len(c.cars))
	for _, x := range c.cars {
		out = append(out, cloneCar(x))
	}
	return out
}

func (c *Catalog) Hotel(id string) (domain.Hotel, error) {
	for _, h := range c.hotels {
		if h.ID == id {
			return cloneHotel(h), nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}

func (c *Catalog) Flight(id string) (domain.Flight, error) {
	for _, f := range c.flights {
		if f.ID == id {
			return cloneFlight(f), nil
		}
	}
	return domain.Flight{}, domain.ErrNotFound
}

func (c *Catalog) Car(id string) (domain.Car, error) {
	for _, x := range c.cars {
		if x.ID == id {
			return cloneCar(x), nil
		}
	}
	return domain.Car{}, domain.ErrNotFound
}

// Item looks up any catalog record by type and id.
func (c *Catalog) Item(t domain.CatalogType, id string) (domain.CatalogItem, error) {
	var (
		it  domain.CatalogItem
		err error
	)
	switch t {
	case domain.Hotels:
		it, err = c.Hotel(id)
	case domain.Flights:
		it, err = c.Flight(id)
	case domain.Cars:
		it, err = c.Car(id)
	default:
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func clonePrice(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneHotel(h domain.Hotel) domain.Hotel {
	h.OriginalPrice = clonePrice(h.OriginalPrice)
	h.Amenities = slices.Clone(h.Amenities)
	rooms := make([]domain.Room, len(h.Rooms))
	for i, r := range h.Rooms {
		r.Amenities = slices.Clone(r.Amenities)
		rooms[i] = r
	}
	h.Rooms = rooms
	return h
}

func cloneFlight(f domain.Flight) domain.Flight {
	f.OriginalPrice = clonePrice(f.OriginalPrice)
	f.Amenities = slices.Clone(f.Amenities)
	return f
}

func cloneCar(c domain.Car) domain.Car {
	c.OriginalPrice = clonePrice(c.OriginalPrice)
	c.Rental.Requirements.License = slices.Clone(c.Rental.Requirements.License)
	c.Insurance.Included = slices.Clone(c.Insurance.Included)
	c.Insurance.Optional = slices.Clone(c.Insurance.Optional)
	if c.Mileage.Limit != nil {
		l := *c.Mileage.Limit
		c.Mileage.Limit = &l
	}
	c.Mileage.Overage = clonePrice(c.Mileage.Overage)
	return c
}
