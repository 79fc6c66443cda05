package catalog

import (
	"time"

	"travel_booking/internal/domain"
)

func f64(v float64) *float64 { return &v }
func iptr(v int) *int        { return &v }

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedHotels() []domain.Hotel {
	return []domain.Hotel{
		{
			ID: "1", Name: "Grand Luxury Hotel Paris",
			Description: "Parisian elegance in the heart of the city, steps away from the Louvre and Champs-Élysées.",
			Rating:      4.8, ReviewCount: 1247, Price: 289, OriginalPrice: f64(350),
			Location:  domain.HotelLocation{Address: "123 Rue de Rivoli", City: "Paris", Country: "France", Coordinates: domain.Coordinates{Lat: 48.8566, Lng: 2.3522}},
			Amenities: []string{"Free WiFi", "Pool", "Spa", "Restaurant", "Gym", "Room Service", "Concierge"},
			Rooms: []domain.Room{
				{ID: "r1", Name: "Deluxe Room", Price: 289, MaxGuests: 2, Amenities: []string{"King Bed", "City View", "Free WiFi", "Mini Bar"}, Available: true},
				{ID: "r2", Name: "Executive Suite", Price: 459, MaxGuests: 4, Amenities: []string{"Separate Living Room", "Eiffel Tower View", "Butler Service", "Premium WiFi"}, Available: true},
			},
			CancellationPolicy: "Free cancellation up to 24 hours before check-in", Featured: true,
		},
		{
			ID: "2", Name: "Tokyo Bay Resort",
			Description: "Modern waterfront hotel with bay views and traditional Japanese hospitality.",
			Rating:      4.6, ReviewCount: 892, Price: 245,
			Location:  domain.HotelLocation{Address: "1-1 Shibaura, Minato City", City: "Tokyo", Country: "Japan", Coordinates: domain.Coordinates{Lat: 35.6762, Lng: 139.6503}},
			Amenities: []string{"Free WiFi", "Restaurant", "Bar", "Business Center", "Laundry"},
			Rooms: []domain.Room{
				{ID: "r3", Name: "Bay View Room", Price: 245, MaxGuests: 2, Amenities: []string{"Queen Bed", "Bay View", "Free WiFi", "Tea Set"}, Available: true},
			},
			CancellationPolicy: "Free cancellation up to 48 hours before check-in",
		},
		{
			ID: "3", Name: "Manhattan Boutique Hotel",
			Description: "Stylish boutique hotel in Manhattan, walking distance to Times Square and Central Park.",
			Rating:      4.4, ReviewCount: 634, Price: 199, OriginalPrice: f64(249),
			Location:  domain.HotelLocation{Address: "789 5th Avenue", City: "New York", Country: "USA", Coordinates: domain.Coordinates{Lat: 40.7589, Lng: -73.9851}},
			Amenities: []string{"Free WiFi", "Fitness Center", "Restaurant", "Room Service"},
			Rooms: []domain.Room{
				{ID: "r4", Name: "City View Room", Price: 199, MaxGuests: 2, Amenities: []string{"Queen Bed", "City View", "Free WiFi", "Work Desk"}, Available: true},
			},
			CancellationPolicy: "Free cancellation up to 24 hours before check-in", Featured: true,
		},
		{
			ID: "4", Name: "Swiss Alpine Lodge",
			Description: "Mountain retreat in the Swiss Alps for skiing in winter and hiking in summer.",
			Rating:      4.7, ReviewCount: 523, Price: 320, OriginalPrice: f64(380),
			Location:  domain.HotelLocation{Address: "Dorfstrasse 12", City: "Zermatt", Country: "Switzerland", Coordinates: domain.Coordinates{Lat: 46.0207, Lng: 7.7491}},
			Amenities: []string{"Free WiFi", "Ski Storage", "Restaurant", "Spa", "Mountain Views", "Fireplace"},
			Rooms: []domain.Room{
				{ID: "r5", Name: "Alpine Suite", Price: 320, MaxGuests: 2, Amenities: []string{"King Bed", "Mountain View", "Balcony", "Mini Bar"}, Available: true},
			},
			CancellationPolicy: "Free cancellation up to 48 hours before check-in", Featured: true,
		},
		{
			ID: "5", Name: "Santorini Sunset Resort",
			Description: "Whitewashed resort on the cliffs of Santorini with infinity pools.",
			Rating:      4.9, ReviewCount: 789, Price: 450,
			Location:  domain.HotelLocation{Address: "Imerovigli", City: "Santorini", Country: "Greece", Coordinates: domain.Coordinates{Lat: 36.4218, Lng: 25.4312}},
			Amenities: []string{"Infinity Pool", "Sunset Views", "Free WiFi", "Spa", "Restaurant", "Concierge"},
			Rooms: []domain.Room{
				{ID: "r6", Name: "Caldera View Suite", Price: 450, MaxGuests: 2, Amenities: []string{"King Bed", "Caldera View", "Private Terrace", "Jacuzzi"}, Available: true},
			},
			CancellationPolicy: "Free cancellation up to 72 hours before check-in", Featured: true,
		},
		{
			ID: "6", Name: "Dubai Marina Tower Hotel",
			Description: "Skyscraper hotel in Dubai Marina with panoramic city and sea views.",
			Rating:      4.6, ReviewCount: 1456, Price: 350, OriginalPrice: f64(420),
			Location:  domain.HotelLocation{Address: "Dubai Marina Walk", City: "Dubai", Country: "UAE", Coordinates: domain.Coordinates{Lat: 25.0657, Lng: 55.1713}},
			Amenities: []string{"Rooftop Pool", "Free WiFi", "Gym", "Multiple Restaurants", "Valet Parking", "Beach Access"},
			Rooms: []domain.Room{
				{ID: "r7", Name: "Marina View Room", Price: 350, MaxGuests: 2, Amenities: []string{"King Bed", "Marina View", "Floor-to-ceiling Windows", "Work Desk"}, Available: true},
			},
			CancellationPolicy: "Free cancellation up to 24 hours before check-in",
		},
		{
			ID: "7", Name: "Costa Rica Eco Lodge",
			Description: "Sustainable rainforest retreat surrounded by tropical wildlife.",
			Rating:      4.5, ReviewCount: 342, Price: 180,
			Location:  domain.HotelLocation{Address: "Manuel Antonio National Park", City: "Manuel Antonio", Country: "Costa Rica", Coordinates: domain.Coordinates{Lat: 9.3908, Lng: -84.1417}},
			Amenities: []string{"Nature Tours", "Free WiFi", "Restaurant", "Wildlife Viewing", "Hiking Trails", "Eco-Friendly"},
			Rooms: []domain.Room{
				{ID: "r8", Name: "Rainforest Cabin", Price: 180, MaxGuests: 2, Amenities: []string{"Queen Bed", "Forest View", "Private Bathroom", "Mosquito Nets"}, Available: true},
			},
			CancellationPolicy: "Free cancellation up to 48 hours before check-in",
		},
		{
			ID: "8", Name: "Kyoto Traditional Ryokan",
			Description: "Japanese inn with tatami rooms, zen gardens and kaiseki dining.",
			Rating:      4.8, ReviewCount: 667, Price: 280,
			Location:  domain.HotelLocation{Address: "Gion District", City: "Kyoto", Country: "Japan", Coordinates: domain.Coordinates{Lat: 35.0116, Lng: 135.7681}},
			Amenities: []string{"Traditional Baths", "Zen Garden", "Kaiseki Dining", "Tea Ceremony", "Kimono Rental", "Free WiFi"},
			Rooms: []domain.Room{
				{ID: "r9", Name: "Tatami Suite", Price: 280, MaxGuests: 2, Amenities: []string{"Tatami Floors", "Futon Beds", "Garden View", "Private Bath"}, Available: true},
			},
			CancellationPolicy: "Free cancellation up to 24 hours before check-in", Featured: true,
		},
		{
			ID: "9", Name: "Sydney Harbor Hotel",
			Description: "Overlooking Sydney Harbor with views of the Opera House and Harbor Bridge.",
			Rating:      4.7, ReviewCount: 1123, Price: 380, OriginalPrice: f64(450),
			Location:  domain.HotelLocation{Address: "Circular Quay", City: "Sydney", Country: "Australia", Coordinates: domain.Coordinates{Lat: -33.8688, Lng: 151.2093}},
			Amenities: []string{"Harbor Views", "Rooftop Bar", "Free WiFi", "Gym", "Business Center", "Concierge"},
			Rooms: []domain.Room{
				{ID: "r10", Name: "Harbor View Suite", Price: 380, MaxGuests: 2, Amenities: []string{"King Bed", "Opera House View", "Floor-to-ceiling Windows", "Mini Bar"}, Available: true},
			},
			CancellationPolicy: "Free cancellation up to 24 hours before check-in", Featured: true,
		},
		{
			ID: "10", Name: "Marrakech Riad Palace",
			Description: "Moroccan riad in the historic medina with a rooftop terrace and hammam spa.",
			Rating:      4.4, ReviewCount: 445, Price: 160,
			Location:  domain.HotelLocation{Address: "Medina Quarter", City: "Marrakech", Country: "Morocco", Coordinates: domain.Coordinates{Lat: 31.6295, Lng: -7.9811}},
			Amenities: []string{"Rooftop Terrace", "Hammam Spa", "Traditional Decor", "Free WiFi", "Restaurant", "Airport Transfer"},
			Rooms: []domain.Room{
				{ID: "r11", Name: "Moroccan Suite", Price: 160, MaxGuests: 2, Amenities: []string{"Traditional Furnishing", "Moroccan Tiles", "Courtyard View", "Air Conditioning"}, Available: true},
				{ID: "r12", Name: "Riad Courtyard Room", Price: 140, MaxGuests: 2, Amenities: []string{"Double Bed", "Courtyard View"}, Available: false},
			},
			CancellationPolicy: "Free cancellation up to 48 hours before check-in",
		},
	}
}

var (
	jfk = domain.Airport{Code: "JFK", Name: "John F. Kennedy International Airport", City: "New York"}
	cdg = domain.Airport{Code: "CDG", Name: "Charles de Gaulle Airport", City: "Paris"}
	lax = domain.Airport{Code: "LAX", Name: "Los Angeles International Airport", City: "Los Angeles"}
	nrt = domain.Airport{Code: "NRT", Name: "Narita International Airport", City: "Tokyo"}
	lhr = domain.Airport{Code: "LHR", Name: "Heathrow Airport", City: "London"}
	dxb = domain.Airport{Code: "DXB", Name: "Dubai International Airport", City: "Dubai"}
	syd = domain.Airport{Code: "SYD", Name: "Sydney Kingsford Smith Airport", City: "Sydney"}
	zrh = domain.Airport{Code: "ZRH", Name: "Zurich Airport", City: "Zurich"}
)

var (
	standardBag = domain.Baggage{Carry: "1 x 8kg", Checked: "1 x 23kg"}
	premiumBag  = domain.Baggage{Carry: "2 x 8kg", Checked: "2 x 32kg"}
)

func seedFlights() []domain.Flight {
	return []domain.Flight{
		{ID: "f1", Airline: "Air France", FlightNumber: "AF 1234", From: jfk, To: cdg,
			Departure: at("2024-03-15T14:30:00"), Arrival: at("2024-03-16T03:45:00"), Duration: 435,
			Price: 599, OriginalPrice: f64(799), CabinClass: domain.Economy, Baggage: standardBag,
			Amenities: []string{"WiFi", "Entertainment", "Meals"}, CancellationPolicy: "Refundable with fee"},
		{ID: "f2", Airline: "Delta Airlines", FlightNumber: "DL 456", From: lax, To: nrt,
			Departure: at("2024-03-20T11:00:00"), Arrival: at("2024-03-21T16:30:00"), Duration: 690,
			Price: 845, CabinClass: domain.Economy, Baggage: domain.Baggage{Carry: "1 x 7kg", Checked: "2 x 23kg"},
			Amenities: []string{"Entertainment", "Meals", "Power"}, CancellationPolicy: "Non-refundable"},
		{ID: "f3", Airline: "British Airways", FlightNumber: "BA 789", From: lhr, To: dxb,
			Departure: at("2024-03-25T09:15:00"), Arrival: at("2024-03-25T19:20:00"), Duration: 425,
			Price: 479, CabinClass: domain.Economy, Baggage: standardBag,
			Amenities: []string{"WiFi", "Meals"}, CancellationPolicy: "Refundable with fee"},
		{ID: "f4", Airline: "Delta Airlines", FlightNumber: "DL 264", From: jfk, To: cdg,
			Departure: at("2024-03-15T18:10:00"), Arrival: at("2024-03-16T07:00:00"), Duration: 410,
			Price: 689, CabinClass: domain.Economy, Baggage: standardBag,
			Amenities: []string{"WiFi", "Entertainment", "Meals", "Power"}, CancellationPolicy: "Refundable with fee"},
		{ID: "f5", Airline: "Air France", FlightNumber: "AF 9", From: jfk, To: cdg,
			Departure: at("2024-03-15T22:00:00"), Arrival: at("2024-03-16T11:40:00"), Duration: 460,
			Price: 1890, CabinClass: domain.Business, Baggage: premiumBag,
			Amenities: []string{"WiFi", "Entertainment", "Meals", "Power", "Lie-flat Seat"}, CancellationPolicy: "Fully refundable"},
		{ID: "f6", Airline: "United Airlines", FlightNumber: "UA 57", From: jfk, To: cdg,
			Departure: at("2024-03-15T08:45:00"), Arrival: at("2024-03-16T00:05:00"), Duration: 620, Stops: 1,
			Price: 512, CabinClass: domain.Economy, Baggage: standardBag,
			Amenities: []string{"Entertainment"}, CancellationPolicy: "Non-refundable"},
		{ID: "f7", Airline: "Japan Airlines", FlightNumber: "JL 61", From: lax, To: nrt,
			Departure: at("2024-03-20T13:05:00"), Arrival: at("2024-03-21T17:25:00"), Duration: 680,
			Price: 1320, CabinClass: domain.Business, Baggage: premiumBag,
			Amenities: []string{"WiFi", "Entertainment", "Meals", "Power"}, CancellationPolicy: "Refundable with fee"},
		{ID: "f8", Airline: "Emirates", FlightNumber: "EK 2", From: dxb, To: lhr,
			Departure: at("2024-03-28T07:40:00"), Arrival: at("2024-03-28T12:05:00"), Duration: 445,
			Price: 3650, CabinClass: domain.First, Baggage: premiumBag,
			Amenities: []string{"WiFi", "Entertainment", "Meals", "Power", "Private Suite"}, CancellationPolicy: "Fully refundable"},
		{ID: "f9", Airline: "Qantas", FlightNumber: "QF 12", From: lax, To: syd,
			Departure: at("2024-04-02T22:30:00"), Arrival: at("2024-04-04T08:10:00"), Duration: 880,
			Price: 1149, CabinClass: domain.Economy, Baggage: standardBag,
			Amenities: []string{"Entertainment", "Meals", "Power"}, CancellationPolicy: "Refundable with fee"},
		{ID: "f10", Airline: "Swiss", FlightNumber: "LX 17", From: jfk, To: zrh,
			Departure: at("2024-03-18T17:30:00"), Arrival: at("2024-03-19T07:25:00"), Duration: 475,
			Price: 735, CabinClass: domain.Economy, Baggage: standardBag,
			Amenities: []string{"WiFi", "Meals"}, CancellationPolicy: "Refundable with fee"},
		{ID: "f11", Airline: "British Airways", FlightNumber: "BA 117", From: lhr, To: jfk,
			Departure: at("2024-03-22T08:20:00"), Arrival: at("2024-03-22T11:15:00"), Duration: 475,
			Price: 540, CabinClass: domain.Economy, Baggage: standardBag,
			Amenities: []string{"WiFi", "Entertainment", "Meals"}, CancellationPolicy: "Refundable with fee"},
		{ID: "f12", Airline: "Air France", FlightNumber: "AF 23", From: cdg, To: jfk,
			Departure: at("2024-03-24T10:30:00"), Arrival: at("2024-03-24T12:45:00"), Duration: 495,
			Price: 575, CabinClass: domain.Economy, Baggage: standardBag,
			Amenities: []string{"WiFi", "Entertainment", "Meals"}, CancellationPolicy: "Refundable with fee"},
	}
}

var (
	basicCover = []string{"Collision Damage Waiver", "Theft Protection"}
	extraCover = []domain.InsuranceOption{
		{Name: "Full Coverage", Description: "Zero excess on damage and theft", Price: 18},
		{Name: "Roadside Assistance", Description: "24/7 breakdown help", Price: 6},
	}
)

func seedCars() []domain.Car {
	return []domain.Car{
		{ID: "c1", Name: "Toyota Corolla or similar", Category: domain.CarCompact, Brand: "Toyota", Model: "Corolla", Year: 2023,
			Price: 35, OriginalPrice: f64(45),
			Location: domain.CarLocation{PickupAddress: "JFK Airport Terminal 4", City: "New York", Country: "USA", Coordinates: domain.Coordinates{Lat: 40.6413, Lng: -73.7781}},
			Features: domain.CarFeatures{Seats: 5, Doors: 4, Transmission: "automatic", FuelType: "hybrid", AirConditioning: true, GPS: false},
			Rental: domain.Rental{Company: "Hertz", Rating: 4.3, ReviewCount: 812, PickupInstructions: "Shuttle from arrivals level",
				Requirements: domain.RentalRequirements{MinAge: 21, License: []string{"Valid driver's license"}, CreditCard: true}},
			Insurance: domain.Insurance{Included: basicCover, Optional: extraCover}, Mileage: domain.Mileage{Unlimited: true},
			CancellationPolicy: "Free cancellation up to 48 hours before pick-up", Available: true},
		{ID: "c2", Name: "BMW 5 Series or similar", Category: domain.CarLuxury, Brand: "BMW", Model: "530i", Year: 2024,
			Price:    129,
			Location: domain.CarLocation{PickupAddress: "8 Rue de Rivoli", City: "Paris", Country: "France", Coordinates: domain.Coordinates{Lat: 48.8559, Lng: 2.3580}},
			Features: domain.CarFeatures{Seats: 5, Doors: 4, Transmission: "automatic", FuelType: "gasoline", AirConditioning: true, GPS: true},
			Rental: domain.Rental{Company: "Sixt", Rating: 4.6, ReviewCount: 402, PickupInstructions: "Desk on the ground floor",
				Requirements: domain.RentalRequirements{MinAge: 25, License: []string{"Valid driver's license", "International permit"}, CreditCard: true}},
			Insurance: domain.Insurance{Included: basicCover, Optional: extraCover}, Mileage: domain.Mileage{Unlimited: false, Limit: iptr(200), Overage: f64(0.35)},
			CancellationPolicy: "Free cancellation up to 24 hours before pick-up", Available: true},
		{ID: "c3", Name: "Fiat 500 or similar", Category: domain.CarEconomy, Brand: "Fiat", Model: "500", Year: 2022,
			Price:    28,
			Location: domain.CarLocation{PickupAddress: "Charles de Gaulle Terminal 2E", City: "Paris", Country: "France", Coordinates: domain.Coordinates{Lat: 49.0097, Lng: 2.5479}},
			Features: domain.CarFeatures{Seats: 4, Doors: 3, Transmission: "manual", FuelType: "gasoline", AirConditioning: true},
			Rental: domain.Rental{Company: "Europcar", Rating: 4.0, ReviewCount: 1290, PickupInstructions: "Follow car rental signs",
				Requirements: domain.RentalRequirements{MinAge: 18, License: []string{"Valid driver's license"}, CreditCard: false}},
			Insurance: domain.Insurance{Included: basicCover, Optional: extraCover}, Mileage: domain.Mileage{Unlimited: true},
			CancellationPolicy: "Free cancellation up to 48 hours before pick-up", Available: true},
		{ID: "c4", Name: "Ford Mustang Convertible", Category: domain.CarConvertible, Brand: "Ford", Model: "Mustang", Year: 2023,
			Price: 99, OriginalPrice: f64(119),
			Location: domain.CarLocation{PickupAddress: "LAX Rental Car Center", City: "Los Angeles", Country: "USA", Coordinates: domain.Coordinates{Lat: 33.9416, Lng: -118.4085}},
			Features: domain.CarFeatures{Seats: 4, Doors: 2, Transmission: "automatic", FuelType: "gasoline", AirConditioning: true, GPS: true},
			Rental: domain.Rental{Company: "Avis", Rating: 4.4, ReviewCount: 655, PickupInstructions: "Shuttle bus to rental center",
				Requirements: domain.RentalRequirements{MinAge: 25, License: []string{"Valid driver's license"}, CreditCard: true}},
			Insurance: domain.Insurance{Included: basicCover, Optional: extraCover}, Mileage: domain.Mileage{Unlimited: true},
			CancellationPolicy: "Free cancellation up to 24 hours before pick-up", Available: true},
		{ID: "c5", Name: "Tesla Model Y", Category: domain.CarSUV, Brand: "Tesla", Model: "Model Y", Year: 2024,
			Price:    110,
			Location: domain.CarLocation{PickupAddress: "Sheikh Zayed Road", City: "Dubai", Country: "UAE", Coordinates: domain.Coordinates{Lat: 25.2048, Lng: 55.2708}},
			Features: domain.CarFeatures{Seats: 5, Doors: 4, Transmission: "automatic", FuelType: "electric", AirConditioning: true, GPS: true},
			Rental: domain.Rental{Company: "Hertz", Rating: 4.7, ReviewCount: 210, PickupInstructions: "Valet meets you at the lobby",
				Requirements: domain.RentalRequirements{MinAge: 30, License: []string{"Valid driver's license", "International permit"}, CreditCard: true}},
			Insurance: domain.Insurance{Included: basicCover, Optional: extraCover}, Mileage: domain.Mileage{Unlimited: false, Limit: iptr(250), Overage: f64(0.25)},
			CancellationPolicy: "Free cancellation up to 72 hours before pick-up", Available: true},
		{ID: "c6", Name: "Toyota Camry or similar", Category: domain.CarMidsize, Brand: "Toyota", Model: "Camry", Year: 2023,
			Price:    52,
			Location: domain.CarLocation{PickupAddress: "Narita Airport Terminal 1", City: "Tokyo", Country: "Japan", Coordinates: domain.Coordinates{Lat: 35.7720, Lng: 140.3929}},
			Features: domain.CarFeatures{Seats: 5, Doors: 4, Transmission: "automatic", FuelType: "hybrid", AirConditioning: true, GPS: true},
			Rental: domain.Rental{Company: "Times Car", Rating: 4.5, ReviewCount: 377, PickupInstructions: "Counter in arrivals hall",
				Requirements: domain.RentalRequirements{MinAge: 21, License: []string{"Valid driver's license", "International permit"}, CreditCard: true}},
			Insurance: domain.Insurance{Included: basicCover, Optional: extraCover}, Mileage: domain.Mileage{Unlimited: true},
			CancellationPolicy: "Free cancellation up to 48 hours before pick-up", Available: true},
		{ID: "c7", Name: "Chevrolet Tahoe or similar", Category: domain.CarFullsize, Brand: "Chevrolet", Model: "Tahoe", Year: 2023,
			Price:    89,
			Location: domain.CarLocation{PickupAddress: "Manhattan West 31st St", City: "New York", Country: "USA", Coordinates: domain.Coordinates{Lat: 40.7505, Lng: -73.9934}},
			Features: domain.CarFeatures{Seats: 7, Doors: 4, Transmission: "automatic", FuelType: "gasoline", AirConditioning: true, GPS: true},
			Rental: domain.Rental{Company: "Enterprise", Rating: 4.2, ReviewCount: 530, PickupInstructions: "Garage entrance on 31st St",
				Requirements: domain.RentalRequirements{MinAge: 25, License: []string{"Valid driver's license"}, CreditCard: true}},
			Insurance: domain.Insurance{Included: basicCover, Optional: extraCover}, Mileage: domain.Mileage{Unlimited: true},
			CancellationPolicy: "Free cancellation up to 24 hours before pick-up", Available: false},
		{ID: "c8", Name: "VW Golf or similar", Category: domain.CarCompact, Brand: "Volkswagen", Model: "Golf", Year: 2022,
			Price:    41,
			Location: domain.CarLocation{PickupAddress: "Zurich Hauptbahnhof", City: "Zurich", Country: "Switzerland", Coordinates: domain.Coordinates{Lat: 47.3782, Lng: 8.5402}},
			Features: domain.CarFeatures{Seats: 5, Doors: 5, Transmission: "manual", FuelType: "gasoline", AirConditioning: true},
			Rental: domain.Rental{Company: "Europcar", Rating: 4.1, ReviewCount: 288, PickupInstructions: "Level -1 of the station garage",
				Requirements: domain.RentalRequirements{MinAge: 21, License: []string{"Valid driver's license"}, CreditCard: true}},
			Insurance: domain.Insurance{Included: basicCover, Optional: extraCover}, Mileage: domain.Mileage{Unlimited: true},
			CancellationPolicy: "Free cancellation up to 48 hours before pick-up", Available: true},
	}
}
