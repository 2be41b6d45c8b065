package pricing

import "umrah_quotes/internal/domain"

// HotelIndex resolves a quote's hotel references (by name) to catalog
// entries. Unknown or empty references resolve to nil.
type HotelIndex map[string]*domain.Hotel

func IndexHotels(hotels []domain.Hotel) HotelIndex {
	idx := make(HotelIndex, len(hotels))
	for i := range hotels {
		idx[hotels[i].Name] = &hotels[i]
	}
	return idx
}

func (idx HotelIndex) Lookup(name string) *domain.Hotel {
	if name == "" {
		return nil
	}
	return idx[name]
}

// Rate returns the effective per-night price for a room type under the
// active period. A seasonal entry matching the period wins over the base
// price, except that a seasonal value of 0 means "not set for this type"
// and falls through to base. Nil hotel resolves to 0.
func Rate(h *domain.Hotel, rt domain.RoomType, period string) int {
	if h == nil {
		return 0
	}
	for _, sp := range h.SeasonalPrices {
		if sp.PeriodName != period {
			continue
		}
		if v := ParseAmount(sp.Prices[rt]); v != 0 {
			return v
		}
	}
	return ParseAmount(h.BasePrices[rt])
}
