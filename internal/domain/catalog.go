package domain

import "time"

type CatalogType string

const (
	Hotels  CatalogType = "hotels"
	Flights CatalogType = "flights"
	Cars    CatalogType = "cars"
)

var CatalogTypes = []CatalogType{Hotels, Flights, Cars}

func ParseCatalogType(s string) (CatalogType, bool) {
	switch CatalogType(s) {
	case Hotels, Flights, Cars:
		return CatalogType(s), true
	}
	return "", false
}

// CatalogItem is what a search result set holds, regardless of catalog type.
type CatalogItem interface {
	ItemID() string
	Kind() CatalogType
	ItemPrice() float64
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type HotelLocation struct {
	Address     string      `json:"address"`
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
}

type Room struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	MaxGuests int      `json:"maxGuests"`
	Amenities []string `json:"amenities"`
	Available bool     `json:"available"`
}

type Hotel struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Description        string        `json:"description"`
	Rating             float64       `json:"rating"`
	ReviewCount        int           `json:"reviewCount"`
	Price              float64       `json:"price"`
	OriginalPrice      *float64      `json:"originalPrice,omitempty"`
	Location           HotelLocation `json:"location"`
	Amenities          []string      `json:"amenities"`
	Rooms              []Room        `json:"rooms"`
	CancellationPolicy string        `json:"cancellationPolicy"`
	Featured           bool          `json:"featured"`
}

func (h Hotel) ItemID() string     { return h.ID }
func (h Hotel) Kind() CatalogType  { return Hotels }
func (h Hotel) ItemPrice() float64 { return h.Price }

func (h Hotel) Room(id string) (Room, bool) {
	for _, r := range h.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

type CabinClass string

const (
	Economy  CabinClass = "economy"
	Business CabinClass = "business"
	First    CabinClass = "first"
)

type Airport struct {
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city"`
}

type Baggage struct {
	Carry   string `json:"carry"`
	Checked string `json:"checked"`
}

type Flight struct {
	ID                 string     `json:"id"`
	Airline            string     `json:"airline"`
	FlightNumber       string     `json:"flightNumber"`
	From               Airport    `json:"from"`
	To                 Airport    `json:"to"`
	Departure          time.Time  `json:"departure"`
	Arrival            time.Time  `json:"arrival"`
	Duration           int        `json:"duration"` // minutes
	Price              float64    `json:"price"`
	OriginalPrice      *float64   `json:"originalPrice,omitempty"`
	Stops              int        `json:"stops"`
	CabinClass         CabinClass `json:"cabinClass"`
	Baggage            Baggage    `json:"baggage"`
	Amenities          []string   `json:"amenities,omitempty"`
	CancellationPolicy string     `json:"cancellationPolicy"`
}

func (f Flight) ItemID() string     { return f.ID }
func (f Flight) Kind() CatalogType  { return Flights }
func (f Flight) ItemPrice() float64 { return f.Price }

type CarCategory string

const (
	CarEconomy     CarCategory = "economy"
	CarCompact     CarCategory = "compact"
	CarMidsize     CarCategory = "midsize"
	CarFullsize    CarCategory = "fullsize"
	CarLuxury      CarCategory = "luxury"
	CarSUV         CarCategory = "suv"
	CarConvertible CarCategory = "convertible"
)

type CarLocation struct {
	PickupAddress string      `json:"pickupAddress"`
	City          string      `json:"city"`
	Country       string      `json:"country"`
	Coordinates   Coordinates `json:"coordinates"`
}

type CarFeatures struct {
	Seats           int    `json:"seats"`
	Doors           int    `json:"doors"`
	Transmission    string `json:"transmission"` // automatic|manual
	FuelType        string `json:"fuelType"`     // gasoline|hybrid|electric
	AirConditioning bool   `json:"airConditioning"`
	GPS             bool   `json:"gps"`
}

type RentalRequirements struct {
	MinAge     int      `json:"minAge"`
	License    []string `json:"license"`
	CreditCard bool     `json:"creditCard"`
}

type Rental struct {
	Company            string             `json:"company"`
	Rating             float64            `json:"rating"`
	ReviewCount        int                `json:"reviewCount"`
	PickupInstructions string             `json:"pickupInstructions"`
	Requirements       RentalRequirements `json:"requirements"`
}

type InsuranceOption struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"` // per day
}

type Insurance struct {
	Included []string          `json:"included"`
	Optional []InsuranceOption `json:"optional"`
}

type Mileage struct {
	Unlimited bool     `json:"unlimited"`
	Limit     *int     `json:"limit,omitempty"`
	Overage   *float64 `json:"overage,omitempty"`
}

type Car struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Category           CarCategory `json:"category"`
	Brand              string      `json:"brand"`
	Model              string      `json:"model"`
	Year               int         `json:"year"`
	Price              float64     `json:"price"` // per day
	OriginalPrice      *float64    `json:"originalPrice,omitempty"`
	Location           CarLocation `json:"location"`
	Features           CarFeatures `json:"features"`
	Rental             Rental      `json:"rental"`
	Insurance          Insurance   `json:"insurance"`
	Mileage            Mileage     `json:"mileage"`
	CancellationPolicy string      `json:"cancellationPolicy"`
	Available          bool        `json:"available"`
}

func (c Car) ItemID() string     { return c.ID }
func (c Car) Kind() CatalogType  { return Cars }
func (c Car) ItemPrice() float64 { return c.Price }

// Tags is the label set the tag filter matches against: the category plus feature labels.
func (c Car) Tags() []string {
	tags := []string{string(c.Category)}
	if c.Features.AirConditioning {
		tags = append(tags, "Air Conditioning")
	}
	if c.Features.GPS {
		tags = append(tags, "GPS")
	}
	switch c.Features.Transmission {
	case "automatic":
		tags = append(tags, "Automatic")
	case "manual":
		tags = append(tags, "Manual")
	}
	switch c.Features.FuelType {
	case "hybrid":
		tags = append(tags, "Hybrid")
	case "electric":
		tags = append(tags, "Electric")
	}
	if c.Mileage.Unlimited {
		tags = append(tags, "Unlimited Mileage")
	}
	return tags
}

func (c Car) InsuranceOption(name string) (InsuranceOption, bool) {
	for _, o := range c.Insurance.Optional {
		if o.Name == name {
			return o, true
		}
	}
	return InsuranceOption{}, false
}
