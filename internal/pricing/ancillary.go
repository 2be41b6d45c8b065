package pricing

import "umrah_quotes/internal/domain"

// AncillaryBreakdown is the fixed-cost side of a recompute.
type AncillaryBreakdown struct {
	Flight    int
	Transport int
	Visa      int
	Meals     int
	Fixed     int
}

// Ancillary computes flight, ground-transport and visa costs split by
// adult and child headcount, plus meals. Meals are not age-differentiated:
// the summed unit price of each selected label (unknown labels read as 0)
// is charged per pax.
func Ancillary(q domain.Quote, meals []domain.Setting) AncillaryBreakdown {
	adults := ParseAmount(q.NumberOfAdults)
	children := ParseAmount(q.NumberOfChildren)

	var b AncillaryBreakdown
	b.Flight = ParseAmount(q.FlightPrice)*adults + ParseAmount(q.FlightPriceChild)*children
	b.Transport = ParseAmount(q.TransportPrice)*adults + ParseAmount(q.TransportPriceChild)*children
	b.Visa = ParseAmount(q.VisaPrice)*adults + ParseAmount(q.VisaPriceChild)*children

	perHead := 0
	for _, label := range q.Meals {
		for _, m := range meals {
			if m.Label == label {
				perHead += ParseAmount(m.Price)
				break
			}
		}
	}
	b.Meals = perHead * (adults + children)

	b.Fixed = b.Flight + b.Transport + b.Visa + b.Meals
	return b
}
