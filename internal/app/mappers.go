package app

import (
	"strconv"
	"strings"
	"time"

	"umrah_quotes/internal/domain"
)

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the first non-empty string among the given paths.
func lookupStr(m map[string]any, paths ...string) string {
	for _, p := range paths {
		if s, ok := lookupAny(m, p).(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// lookupAmount normalizes a legacy money/count field to a decimal string.
// The Mongo store mixes strings and numbers; anything unusable reads "0".
func lookupAmount(m map[string]any, paths ...string) string {
	for _, p := range paths {
		switch v := lookupAny(m, p).(type) {
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if _, err := strconv.Atoi(s); err == nil {
				return s
			}
			if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
				return strconv.Itoa(int(f))
			}
		case float64:
			return strconv.Itoa(int(v))
		case int:
			return strconv.Itoa(v)
		}
	}
	return "0"
}

// lookupAmountOr is lookupAmount with an explicit default for fields the
// legacy schema hydrates when absent (adult headcount defaults to '1').
// Values present in the payload, even unusable ones, still read via
// lookupAmount.
func lookupAmountOr(m map[string]any, def string, paths ...string) string {
	for _, p := range paths {
		if lookupAny(m, p) != nil {
			return lookupAmount(m, p)
		}
	}
	return def
}

func lookupStrings(m map[string]any, path string) []string {
	raw, ok := lookupAny(m, path).([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, it := range raw {
		if s, ok := it.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func lookupRoomPrices(m map[string]any, path string) domain.RoomPrices {
	out := domain.ZeroRoomPrices()
	obj, ok := lookupAny(m, path).(map[string]any)
	if !ok {
		return out
	}
	for _, rt := range domain.RoomTypes {
		out[rt] = lookupAmount(obj, string(rt))
	}
	return out
}

func lookupTime(m map[string]any, path string) time.Time {
	s, ok := lookupAny(m, path).(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

/********** hotel mapper **********/

func MapHotel(p map[string]any) domain.Hotel {
	h := domain.Hotel{
		Name:       lookupStr(p, "name"),
		City:       domain.City(lookupStr(p, "city")),
		BasePrices: lookupRoomPrices(p, "prices"),
	}
	if s := lookupStr(p, "distance"); s != "" {
		h.Distance = &s
	}
	if s := lookupAmount(p, "stars"); s != "0" {
		if n, err := strconv.Atoi(s); err == nil {
			h.Stars = &n
		}
	}
	if raw, ok := lookupAny(p, "seasonalPrices").([]any); ok {
		for _, it := range raw {
			entry, ok := it.(map[string]any)
			if !ok {
				continue
			}
			name := lookupStr(entry, "periodName")
			if name == "" {
				continue
			}
			h.SeasonalPrices = append(h.SeasonalPrices, domain.SeasonalRate{
				PeriodName: name,
				Prices:     lookupRoomPrices(entry, "prices"),
			})
		}
	}
	return h
}

/********** setting mapper **********/

func MapSetting(p map[string]any) domain.Setting {
	active := true
	if b, ok := lookupAny(p, "isActive").(bool); ok {
		active = b
	}
	return domain.Setting{
		Category: lookupStr(p, "category"),
		Label:    lookupStr(p, "label"),
		Price:    lookupAmount(p, "price"),
		Active:   active,
	}
}

/********** quote mapper **********/

// MapQuote hydrates a legacy quote record. Adult headcount falls back to
// the old single numberOfPeople field; the importer reprices every record
// afterwards, so stale legacy totals never survive the migration.
func MapQuote(p map[string]any) domain.Quote {
	q := domain.NewQuote()

	q.Reference = lookupStr(p, "reference")
	q.ClientName = lookupStr(p, "clientName")
	q.ClientPhone = lookupStr(p, "clientPhone")
	q.CreatedBy = lookupStr(p, "createdBy")
	q.PassportImage = lookupStr(p, "passportImage")
	q.Destination = lookupStr(p, "destination")
	q.Period = lookupStr(p, "period")
	q.Transport = lookupStr(p, "transport")
	q.TransportIntercity = lookupStr(p, "transportMakkahMedina")
	q.Meals = lookupStrings(p, "meals")
	q.Notes = lookupStr(p, "notes")

	q.Legs.Makkah = domain.Leg{
		Hotel:    lookupStr(p, "hotelMakkah"),
		CheckIn:  lookupStr(p, "dates.makkahCheckIn"),
		CheckOut: lookupStr(p, "dates.makkahCheckOut"),
		Nights:   lookupAmount(p, "nightsMakkah"),
	}
	q.Legs.Medina = domain.Leg{
		Hotel:    lookupStr(p, "hotelMedina"),
		CheckIn:  lookupStr(p, "dates.medinaCheckIn"),
		CheckOut: lookupStr(p, "dates.medinaCheckOut"),
		Nights:   lookupAmount(p, "nightsMedina"),
	}
	q.Legs.Jeddah = domain.Leg{
		Hotel:    lookupStr(p, "hotelJeddah"),
		CheckIn:  lookupStr(p, "dates.jeddahCheckIn"),
		CheckOut: lookupStr(p, "dates.jeddahCheckOut"),
		Nights:   lookupAmount(p, "nightsJeddah"),
	}

	q.NumberOfAdults = lookupAmountOr(p, "1", "numberOfAdults", "numberOfPeople")
	q.NumberOfChildren = lookupAmount(p, "numberOfChildren")
	q.FlightPrice = lookupAmount(p, "flightPrice")
	q.FlightPriceChild = lookupAmount(p, "flightPriceChild")
	q.TransportPrice = lookupAmount(p, "transportPrice")
	q.TransportPriceChild = lookupAmount(p, "transportPriceChild")
	q.VisaPrice = lookupAmount(p, "visaPrice")
	q.VisaPriceChild = lookupAmount(p, "visaPriceChild")

	q.Quantities = lookupRoomPrices(p, "quantities")
	q.Prices = lookupRoomPrices(p, "prices")
	q.ExtraCosts = lookupAmount(p, "extraCosts")
	q.Margin = lookupAmount(p, "margin")
	q.Advance = lookupAmount(p, "advanceAmount")
	q.HotelTotal = lookupAmount(p, "hotelTotal")
	q.Expenses = lookupAmount(p, "expenses")
	q.Total = lookupAmount(p, "totalAmount")
	q.Remaining = lookupAmount(p, "remainingAmount")

	if s := lookupStr(p, "status"); s != "" {
		q.Status = s
	}
	if s := lookupStr(p, "statustraitement"); s != "" {
		q.Processing = s
	}
	q.CreatedAt = lookupTime(p, "createdAt")
	return q
}
