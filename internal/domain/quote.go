package domain

import "time"

// Quote statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Processing statuses kept for the back office.
const (
	ProcessingDone    = "traité"
	ProcessingPending = "non-traité"
)

// Leg is one destination segment of a stay: its hotel, the date pair and
// the derived night count. Dates are dd/mm/yyyy strings, empty when unset.
type Leg struct {
	Hotel    string
	CheckIn  string
	CheckOut string
	Nights   string // derived, never hand-edited once dates exist
}

// Legs holds the three fixed destination segments.
type Legs struct {
	Makkah Leg
	Medina Leg
	Jeddah Leg
}

// For returns the leg for a city (zero Leg for an unknown city).
func (l Legs) For(c City) Leg {
	switch c {
	case CityMakkah:
		return l.Makkah
	case CityMedina:
		return l.Medina
	case CityJeddah:
		return l.Jeddah
	}
	return Leg{}
}

// With returns a copy of l with the given city's leg replaced.
func (l Legs) With(c City, leg Leg) Legs {
	switch c {
	case CityMakkah:
		l.Makkah = leg
	case CityMedina:
		l.Medina = leg
	case CityJeddah:
		l.Jeddah = leg
	}
	return l
}

// Quote is the working record being priced. Monetary and count fields are
// decimal strings (the legacy wire convention); derived fields are written
// back by the pricing engine only.
type Quote struct {
	ID        int64
	Reference string

	ClientName    string
	ClientPhone   string
	CreatedBy     string
	PassportImage string

	Destination string
	Period      string // active season name, "" means base rates only

	Legs Legs

	Transport          string // flight company label
	TransportIntercity string
	Meals              []string // selected meal labels

	NumberOfAdults   string
	NumberOfChildren string

	FlightPrice         string
	FlightPriceChild    string
	TransportPrice      string
	TransportPriceChild string
	VisaPrice           string
	VisaPriceChild      string

	Quantities RoomPrices // room counts per type
	ExtraCosts string
	Margin     string
	Advance    string

	// Derived by the engine.
	Prices     RoomPrices // per-type subtotals
	HotelTotal string
	Expenses   string
	Total      string
	Remaining  string

	Status     string
	Processing string
	Notes      string
	CreatedAt  time.Time
}

// ZeroRoomPrices returns a full map with every type set to "0".
func ZeroRoomPrices() RoomPrices {
	m := make(RoomPrices, len(RoomTypes))
	for _, rt := range RoomTypes {
		m[rt] = "0"
	}
	return m
}

// CloneRoomPrices copies a price map, filling missing types with "0".
func CloneRoomPrices(in RoomPrices) RoomPrices {
	out := make(RoomPrices, len(RoomTypes))
	for _, rt := range RoomTypes {
		v, ok := in[rt]
		if !ok || v == "" {
			v = "0"
		}
		out[rt] = v
	}
	return out
}

// NewQuote returns an empty draft: all numeric fields "0"-equivalent so the
// engine always produces fully defined totals.
func NewQuote() Quote {
	return Quote{
		NumberOfAdults:      "1",
		NumberOfChildren:    "0",
		FlightPrice:         "0",
		FlightPriceChild:    "0",
		TransportPrice:      "0",
		TransportPriceChild: "0",
		VisaPrice:           "0",
		VisaPriceChild:      "0",
		Quantities:          ZeroRoomPrices(),
		Prices:              ZeroRoomPrices(),
		ExtraCosts:          "0",
		Margin:              "0",
		Advance:             "0",
		HotelTotal:          "0",
		Expenses:            "0",
		Total:               "0",
		Remaining:           "0",
		Status:              StatusPending,
		Processing:          ProcessingPending,
	}
}
