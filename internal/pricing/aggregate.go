package pricing

import "umrah_quotes/internal/domain"

// HotelBreakdown is the hotel-cost side of a recompute: per-type line
// totals (rate × nights summed over legs, times room count) and the
// grand total. Unavailable flags room types no selected hotel prices;
// it is informational for the edit surface and contributes 0 anyway.
type HotelBreakdown struct {
	Total       int
	Lines       map[domain.RoomType]int
	Unavailable map[domain.RoomType]bool
}

// AggregateHotels sums hotel cost across the three legs and six room
// types, resolving each leg's rate through the hotel index.
func AggregateHotels(q domain.Quote, idx HotelIndex) HotelBreakdown {
	type legStay struct {
		hotel  *domain.Hotel
		nights int
	}
	stays := make([]legStay, 0, len(domain.Cities))
	anySelected := false
	for _, c := range domain.Cities {
		leg := q.Legs.For(c)
		h := idx.Lookup(leg.Hotel)
		if h != nil {
			anySelected = true
		}
		stays = append(stays, legStay{hotel: h, nights: ParseAmount(leg.Nights)})
	}

	out := HotelBreakdown{
		Lines:       make(map[domain.RoomType]int, len(domain.RoomTypes)),
		Unavailable: make(map[domain.RoomType]bool, len(domain.RoomTypes)),
	}
	for _, rt := range domain.RoomTypes {
		perStay := 0
		rated := false
		for _, st := range stays {
			r := Rate(st.hotel, rt, q.Period)
			if r != 0 {
				rated = true
			}
			perStay += r * st.nights
		}
		line := perStay * ParseAmount(q.Quantities[rt])
		out.Lines[rt] = line
		out.Total += line
		out.Unavailable[rt] = anySelected && !rated
	}
	return out
}
