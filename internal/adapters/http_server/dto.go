package httpserver

import (
	"time"

	"umrah_quotes/internal/domain"
)

// Wire shapes. Every amount and count stays a decimal string so clients
// round-trip exactly what the engine wrote.

type legDTO struct {
	Hotel    string `json:"hotel"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Nights   string `json:"nights"`
}

type legsDTO struct {
	Makkah legDTO `json:"makkah"`
	Medina legDTO `json:"medina"`
	Jeddah legDTO `json:"jeddah"`
}

type quoteDTO struct {
	ID        int64  `json:"id,omitempty"`
	Reference string `json:"reference,omitempty"`

	ClientName    string `json:"clientName"`
	ClientPhone   string `json:"clientPhone,omitempty"`
	CreatedBy     string `json:"createdBy,omitempty"`
	PassportImage string `json:"passportImage,omitempty"`

	Destination string `json:"destination,omitempty"`
	Period      string `json:"period,omitempty"`

	Legs legsDTO `json:"legs"`

	Transport          string   `json:"transport,omitempty"`
	TransportIntercity string   `json:"transportIntercity,omitempty"`
	Meals              []string `json:"meals,omitempty"`

	NumberOfAdults   string `json:"numberOfAdults"`
	NumberOfChildren string `json:"numberOfChildren"`

	FlightPrice         string `json:"flightPrice"`
	FlightPriceChild    string `json:"flightPriceChild"`
	TransportPrice      string `json:"transportPrice"`
	TransportPriceChild string `json:"transportPriceChild"`
	VisaPrice           string `json:"visaPrice"`
	VisaPriceChild      string `json:"visaPriceChild"`

	Quantities map[string]string `json:"quantities"`
	ExtraCosts string            `json:"extraCosts"`
	Margin     string            `json:"margin"`
	Advance    string            `json:"advanceAmount"`

	Prices     map[string]string `json:"prices"`
	HotelTotal string            `json:"hotelTotal"`
	Expenses   string            `json:"expenses"`
	Total      string            `json:"total"`
	Remaining  string            `json:"remainingAmount"`

	Status     string     `json:"status,omitempty"`
	Processing string     `json:"statustraitement,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

type priceResultDTO struct {
	Quote         quoteDTO `json:"quote"`
	Changed       bool     `json:"changed"`
	MarginPercent float64  `json:"marginPercent"`
}

type hotelDTO struct {
	ID             int64              `json:"id,omitempty"`
	Name           string             `json:"name"`
	City           string             `json:"city"`
	Distance       *string            `json:"distance,omitempty"`
	Stars          *int               `json:"stars,omitempty"`
	BasePrices     map[string]string `json:"prices"`
	SeasonalPrices []seasonalRateDTO `json:"seasonalPrices"`
}

type seasonalRateDTO struct {
	PeriodName string            `json:"periodName"`
	Prices     map[string]string `json:"prices"`
}

type settingDTO struct {
	ID       int64  `json:"id,omitempty"`
	Category string `json:"category"`
	Label    string `json:"label"`
	Price    string `json:"price"`
	Active   bool   `json:"isActive"`
}

type settingsDTO struct {
	Destinations []settingDTO `json:"destination"`
	Periods      []settingDTO `json:"period"`
	Transports   []settingDTO `json:"transport_main"`
	Intercity    []settingDTO `json:"transport_intercity"`
	Meals        []settingDTO `json:"meal"`
}

// dateEditDTO mutates one leg's date pair. Exactly one of checkIn or
// checkOut must be set.
type dateEditDTO struct {
	City     string `json:"city"`
	CheckIn  string `json:"checkIn,omitempty"`
	CheckOut string `json:"checkOut,omitempty"`
}

// ---- converters ----

func roomMapOut(in domain.RoomPrices) map[string]string {
	out := make(map[string]string, len(domain.RoomTypes))
	for _, rt := range domain.RoomTypes {
		v := in[rt]
		if v == "" {
			v = "0"
		}
		out[string(rt)] = v
	}
	return out
}

func roomMapIn(in map[string]string) domain.RoomPrices {
	out := make(domain.RoomPrices, len(in))
	for k, v := range in {
		out[domain.RoomType(k)] = v
	}
	return domain.CloneRoomPrices(out)
}

func legOut(l domain.Leg) legDTO {
	return legDTO{Hotel: l.Hotel, CheckIn: l.CheckIn, CheckOut: l.CheckOut, Nights: l.Nights}
}

func legIn(l legDTO) domain.Leg {
	return domain.Leg{Hotel: l.Hotel, CheckIn: l.CheckIn, CheckOut: l.CheckOut, Nights: l.Nights}
}

func toQuoteDTO(q domain.Quote) quoteDTO {
	d := quoteDTO{
		ID:        q.ID,
		Reference: q.Reference,

		ClientName:    q.ClientName,
		ClientPhone:   q.ClientPhone,
		CreatedBy:     q.CreatedBy,
		PassportImage: q.PassportImage,

		Destination: q.Destination,
		Period:      q.Period,

		Legs: legsDTO{
			Makkah: legOut(q.Legs.Makkah),
			Medina: legOut(q.Legs.Medina),
			Jeddah: legOut(q.Legs.Jeddah),
		},

		Transport:          q.Transport,
		TransportIntercity: q.TransportIntercity,
		Meals:              q.Meals,

		NumberOfAdults:   q.NumberOfAdults,
		NumberOfChildren: q.NumberOfChildren,

		FlightPrice:         q.FlightPrice,
		FlightPriceChild:    q.FlightPriceChild,
		TransportPrice:      q.TransportPrice,
		TransportPriceChild: q.TransportPriceChild,
		VisaPrice:           q.VisaPrice,
		VisaPriceChild:      q.VisaPriceChild,

		Quantities: roomMapOut(q.Quantities),
		ExtraCosts: q.ExtraCosts,
		Margin:     q.Margin,
		Advance:    q.Advance,

		Prices:     roomMapOut(q.Prices),
		HotelTotal: q.HotelTotal,
		Expenses:   q.Expenses,
		Total:      q.Total,
		Remaining:  q.Remaining,

		Status:     q.Status,
		Processing: q.Processing,
		Notes:      q.Notes,
	}
	if !q.CreatedAt.IsZero() {
		t := q.CreatedAt
		d.CreatedAt = &t
	}
	return d
}

// fromQuoteDTO builds a draft over NewQuote so absent numeric fields stay
// "0"-equivalent instead of empty.
func fromQuoteDTO(d quoteDTO) domain.Quote {
	q := domain.NewQuote()
	q.ID = d.ID
	q.Reference = d.Reference

	q.ClientName = d.ClientName
	q.ClientPhone = d.ClientPhone
	q.CreatedBy = d.CreatedBy
	q.PassportImage = d.PassportImage

	q.Destination = d.Destination
	q.Period = d.Period

	q.Legs = domain.Legs{
		Makkah: legIn(d.Legs.Makkah),
		Medina: legIn(d.Legs.Medina),
		Jeddah: legIn(d.Legs.Jeddah),
	}

	q.Transport = d.Transport
	q.TransportIntercity = d.TransportIntercity
	q.Meals = d.Meals

	setIf := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setIf(&q.NumberOfAdults, d.NumberOfAdults)
	setIf(&q.NumberOfChildren, d.NumberOfChildren)
	setIf(&q.FlightPrice, d.FlightPrice)
	setIf(&q.FlightPriceChild, d.FlightPriceChild)
	setIf(&q.TransportPrice, d.TransportPrice)
	setIf(&q.TransportPriceChild, d.TransportPriceChild)
	setIf(&q.VisaPrice, d.VisaPrice)
	setIf(&q.VisaPriceChild, d.VisaPriceChild)
	setIf(&q.ExtraCosts, d.ExtraCosts)
	setIf(&q.Margin, d.Margin)
	setIf(&q.Advance, d.Advance)

	if d.Quantities != nil {
		q.Quantities = roomMapIn(d.Quantities)
	}

	setIf(&q.Status, d.Status)
	setIf(&q.Processing, d.Processing)
	q.Notes = d.Notes
	if d.CreatedAt != nil {
		q.CreatedAt = *d.CreatedAt
	}
	return q
}

func toHotelDTO(h domain.Hotel) hotelDTO {
	d := hotelDTO{
		ID:             h.ID,
		Name:           h.Name,
		City:           string(h.City),
		Distance:       h.Distance,
		Stars:          h.Stars,
		BasePrices:     roomMapOut(h.BasePrices),
		SeasonalPrices: make([]seasonalRateDTO, 0, len(h.SeasonalPrices)),
	}
	for _, sr := range h.SeasonalPrices {
		d.SeasonalPrices = append(d.SeasonalPrices, seasonalRateDTO{
			PeriodName: sr.PeriodName,
			Prices:     roomMapOut(sr.Prices),
		})
	}
	return d
}

func fromHotelDTO(d hotelDTO) domain.Hotel {
	h := domain.Hotel{
		ID:         d.ID,
		Name:       d.Name,
		City:       domain.City(d.City),
		Distance:   d.Distance,
		Stars:      d.Stars,
		BasePrices: roomMapIn(d.BasePrices),
	}
	for _, sr := range d.SeasonalPrices {
		h.SeasonalPrices = append(h.SeasonalPrices, domain.SeasonalRate{
			PeriodName: sr.PeriodName,
			Prices:     roomMapIn(sr.Prices),
		})
	}
	return h
}

func toSettingDTO(s domain.Setting) settingDTO {
	return settingDTO{ID: s.ID, Category: s.Category, Label: s.Label, Price: s.Price, Active: s.Active}
}

func fromSettingDTO(d settingDTO) domain.Setting {
	st := domain.Setting{ID: d.ID, Category: d.Category, Label: d.Label, Price: d.Price, Active: d.Active}
	if st.Price == "" {
		st.Price = "0"
	}
	return st
}

func toSettingsDTO(g domain.SettingsByCategory) settingsDTO {
	conv := func(in []domain.Setting) []settingDTO {
		out := make([]settingDTO, 0, len(in))
		for _, s := range in {
			out = append(out, toSettingDTO(s))
		}
		return out
	}
	return settingsDTO{
		Destinations: conv(g.Destinations),
		Periods:      conv(g.Periods),
		Transports:   conv(g.Transports),
		Intercity:    conv(g.Intercity),
		Meals:        conv(g.Meals),
	}
}
