package domain

type SortKey string

const (
	SortPrice     SortKey = "price"
	SortRating    SortKey = "rating"
	SortDistance  SortKey = "distance"
	SortDuration  SortKey = "duration"
	SortDeparture SortKey = "departure"
	SortCategory  SortKey = "category"
)

// PriceRange is inclusive on both ends. Min <= Max is the caller's job.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (p PriceRange) Contains(v float64) bool { return v >= p.Min && v <= p.Max }

type SearchFilters struct {
	PriceRange *PriceRange `json:"priceRange,omitempty"`
	MinRating  *float64    `json:"rating,omitempty"`
	Tags       []string    `json:"amenities"`
	Stops      *int        `json:"stops,omitempty"`
	CabinClass CabinClass  `json:"cabinClass,omitempty"`
}

// FiltersPatch carries a partial update; nil fields keep the previous value.
type FiltersPatch struct {
	PriceRange *PriceRange `json:"priceRange,omitempty"`
	MinRating  *float64    `json:"rating,omitempty"`
	Tags       *[]string   `json:"amenities,omitempty"`
	Stops      *int        `json:"stops,omitempty"`
	CabinClass *CabinClass `json:"cabinClass,omitempty"`
}

// Merge is a shallow merge: every field present in p replaces the one in f.
func (f SearchFilters) Merge(p FiltersPatch) SearchFilters {
	out := f.Clone()
	if p.PriceRange != nil {
		pr := *p.PriceRange
		out.PriceRange = &pr
	}
	if p.MinRating != nil {
		r := *p.MinRating
		out.MinRating = &r
	}
	if p.Tags != nil {
		out.Tags = append([]string{}, (*p.Tags)...)
	}
	if p.Stops != nil {
		s := *p.Stops
		out.Stops = &s
	}
	if p.CabinClass != nil {
		out.CabinClass = *p.CabinClass
	}
	return out
}

func (f SearchFilters) Clone() SearchFilters {
	out := SearchFilters{CabinClass: f.CabinClass, Tags: append([]string{}, f.Tags...)}
	if f.PriceRange != nil {
		pr := *f.PriceRange
		out.PriceRange = &pr
	}
	if f.MinRating != nil {
		r := *f.MinRating
		out.MinRating = &r
	}
	if f.Stops != nil {
		s := *f.Stops
		out.Stops = &s
	}
	return out
}

// DefaultFilters mirrors the initial filter state of each search tab.
func DefaultFilters(t CatalogType) SearchFilters {
	max := 1000.0
	switch t {
	case Flights:
		max = 2000
	case Cars:
		max = 300
	}
	return SearchFilters{PriceRange: &PriceRange{Min: 0, Max: max}, Tags: []string{}}
}

// SearchCriteria are the route parameters of a search, as read from the query string.
// CabinClass is informational; narrowing by class goes through SearchFilters.
type SearchCriteria struct {
	Destination string       `json:"destination,omitempty"`
	CheckIn     string       `json:"checkIn,omitempty"`
	CheckOut    string       `json:"checkOut,omitempty"`
	Guests      int          `json:"guests,omitempty"`
	Rooms       int          `json:"rooms,omitempty"`
	From        string       `json:"from,omitempty"`
	To          string       `json:"to,omitempty"`
	Departure   string       `json:"departureDate,omitempty"`
	Return      string       `json:"returnDate,omitempty"`
	Passengers  int          `json:"passengers,omitempty"`
	TripType    string       `json:"tripType,omitempty"`
	CabinClass  CabinClass   `json:"class,omitempty"`
	Location    string       `json:"location,omitempty"`
	PickupDate  string       `json:"pickupDate,omitempty"`
	DropoffDate string       `json:"dropoffDate,omitempty"`
	Age         int          `json:"age,omitempty"`
	Near        *Coordinates `json:"near,omitempty"`
}

type SearchResultSet struct {
	Type       CatalogType    `json:"type"`
	Criteria   SearchCriteria `json:"criteria"`
	Items      []CatalogItem  `json:"results"`
	Filters    SearchFilters  `json:"filters"`
	Sort       SortKey        `json:"sortBy"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	Loading    bool           `json:"loading"`
	Error      string         `json:"error,omitempty"`
	Seq        uint64         `json:"seq"`
}
