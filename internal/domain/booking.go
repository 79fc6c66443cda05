package domain

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusPending   BookingStatus = "pending"
	StatusCancelled BookingStatus = "cancelled"
)

type BookingType string

const (
	BookHotel  BookingType = "hotel"
	BookFlight BookingType = "flight"
	BookCar    BookingType = "car"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type TravelerInfo struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Address   Address `json:"address"`
}

type Passenger struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	DateOfBirth    string `json:"dateOfBirth"`
	PassportNumber string `json:"passportNumber,omitempty"`
	Seat           string `json:"seat,omitempty"`
}

// PaymentInfo is what the checkout form collects. It never leaves the payment step unmasked.
type PaymentInfo struct {
	Method         string   `json:"method"` // card|paypal
	CardNumber     string   `json:"cardNumber,omitempty"`
	ExpiryDate     string   `json:"expiryDate,omitempty"`
	CVV            string   `json:"cvv,omitempty"`
	BillingAddress *Address `json:"billingAddress,omitempty"`
}

type MaskedPayment struct {
	Method     string   `json:"method"`
	CardNumber string   `json:"cardNumber,omitempty"` // ****-****-****-1234
	ExpiryDate string   `json:"expiryDate,omitempty"`
	Billing    *Address `json:"billingAddress,omitempty"`
}

// Mask keeps only the last four card digits.
func (p PaymentInfo) Mask() MaskedPayment {
	out := MaskedPayment{Method: p.Method, ExpiryDate: p.ExpiryDate, Billing: p.BillingAddress}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, p.CardNumber)
	if len(digits) >= 4 {
		out.CardNumber = "****-****-****-" + digits[len(digits)-4:]
	}
	return out
}

type HotelLeg struct {
	HotelID  string `json:"hotelId"`
	RoomID   string `json:"roomId"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Guests   int    `json:"guests"`
	Rooms    int    `json:"rooms"`
}

type FlightLeg struct {
	FlightID   string      `json:"flightId"`
	Passengers []Passenger `json:"passengers"`
	Count      int         `json:"passengerCount"`
}

type CarLeg struct {
	CarID           string   `json:"carId"`
	PickupDate      string   `json:"pickupDate"`
	DropoffDate     string   `json:"dropoffDate"`
	PickupLocation  string   `json:"pickupLocation"`
	DropoffLocation string   `json:"dropoffLocation"`
	DriverAge       int      `json:"driverAge"`
	Insurance       []string `json:"insurance"`
}

// BookingDraft is the single in-progress booking of a session.
type BookingDraft struct {
	Type       BookingType `json:"type"`
	Item       CatalogItem `json:"item,omitempty"`
	Hotel      *HotelLeg   `json:"hotel,omitempty"`
	Flight     *FlightLeg  `json:"flight,omitempty"`
	Car        *CarLeg     `json:"car,omitempty"`
	TotalPrice float64     `json:"totalPrice"`
	Taxes      float64     `json:"taxes"`
}

// DraftPatch is a partial update of the current draft; nil fields are kept.
type DraftPatch struct {
	Hotel      *HotelLeg  `json:"hotel,omitempty"`
	Flight     *FlightLeg `json:"flight,omitempty"`
	Car        *CarLeg    `json:"car,omitempty"`
	TotalPrice *float64   `json:"totalPrice,omitempty"`
	Taxes      *float64   `json:"taxes,omitempty"`
}

type Booking struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId,omitempty"`
	Type        BookingType   `json:"type"`
	Status      BookingStatus `json:"status"`
	BookingDate time.Time     `json:"bookingDate"`
	TotalPrice  float64       `json:"totalPrice"`
	Taxes       float64       `json:"taxes"`
	Traveler    TravelerInfo  `json:"travelerInfo"`
	Payment     MaskedPayment `json:"paymentInfo"`
	Hotel       *HotelLeg     `json:"hotel,omitempty"`
	Flight      *FlightLeg    `json:"flight,omitempty"`
	Car         *CarLeg       `json:"car,omitempty"`
}

// Cancel moves a booking to cancelled. Cancelled is terminal.
func (b *Booking) Cancel() bool {
	if b.Status == StatusCancelled {
		return false
	}
	b.Status = StatusCancelled
	return true
}
