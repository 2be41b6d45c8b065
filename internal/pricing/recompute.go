package pricing

import (
	"strconv"

	"umrah_quotes/internal/domain"
)

// Recompute derives every computed field of a draft from its raw
// selections and the current catalogs: nights where date pairs are
// complete, per-type subtotals, hotel total, expenses, total and
// remaining balance. The input is never mutated; the returned draft is a
// fresh copy with rebuilt maps.
//
// A write-back guard compares each derived value against the stored one
// and only reports changed=true when something actually moved, so the
// function is idempotent and safe to call on every edit.
func Recompute(q domain.Quote, hotels []domain.Hotel, meals []domain.Setting) (domain.Quote, bool) {
	q.Quantities = domain.CloneRoomPrices(q.Quantities)

	q, changed := refreshNights(q)

	hb := AggregateHotels(q, IndexHotels(hotels))
	ab := Ancillary(q, meals)
	tt := ComputeTotals(
		hb.Total,
		ab.Fixed,
		ParseAmount(q.ExtraCosts),
		ParseAmount(q.Margin),
		ParseAmount(q.Advance),
	)

	prices := domain.CloneRoomPrices(q.Prices)
	for _, rt := range domain.RoomTypes {
		s := strconv.Itoa(hb.Lines[rt])
		if prices[rt] != s {
			prices[rt] = s
			changed = true
		}
	}
	q.Prices = prices

	set := func(dst *string, v int) {
		s := strconv.Itoa(v)
		if *dst != s {
			*dst = s
			changed = true
		}
	}
	set(&q.HotelTotal, hb.Total)
	set(&q.Expenses, tt.Expenses)
	set(&q.Total, tt.Total)
	set(&q.Remaining, tt.Remaining)

	return q, changed
}
