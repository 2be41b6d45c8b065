package pricing_test

import (
	"reflect"
	"testing"

	"umrah_quotes/internal/domain"
	"umrah_quotes/internal/pricing"
)

// Scenario: one adult, one child, Makkah-only leg at 1000/night double for
// 3 nights, one double room, flight 5000/3000, 2000 advance.
func scenarioQuote() domain.Quote {
	q := domain.NewQuote()
	q.NumberOfAdults = "1"
	q.NumberOfChildren = "1"
	q.Legs.Makkah = domain.Leg{Hotel: "Dar Al Salam", CheckIn: "01/01/2025", CheckOut: "04/01/2025"}
	q.Quantities[domain.RoomDouble] = "1"
	q.FlightPrice = "5000"
	q.FlightPriceChild = "3000"
	q.Advance = "2000"
	return q
}

func scenarioHotels() []domain.Hotel {
	return []domain.Hotel{{
		Name: "Dar Al Salam", City: domain.CityMakkah,
		BasePrices: domain.RoomPrices{domain.RoomDouble: "1000"},
	}}
}

func TestRecompute_EndToEnd(t *testing.T) {
	got, changed := pricing.Recompute(scenarioQuote(), scenarioHotels(), nil)
	if !changed {
		t.Fatal("expected first recompute to report a change")
	}
	if got.Legs.Makkah.Nights != "3" {
		t.Fatalf("nights = %q, want 3", got.Legs.Makkah.Nights)
	}
	if got.HotelTotal != "3000" {
		t.Fatalf("hotelTotal = %q, want 3000", got.HotelTotal)
	}
	if got.Prices[domain.RoomDouble] != "3000" {
		t.Fatalf("double subtotal = %q, want 3000", got.Prices[domain.RoomDouble])
	}
	if got.Expenses != "11000" {
		t.Fatalf("expenses = %q, want 11000", got.Expenses)
	}
	if got.Total != "11000" {
		t.Fatalf("total = %q, want 11000", got.Total)
	}
	if got.Remaining != "9000" {
		t.Fatalf("remaining = %q, want 9000", got.Remaining)
	}
}

func TestRecompute_Idempotent(t *testing.T) {
	hotels, meals := scenarioHotels(), mealCatalog()

	once, _ := pricing.Recompute(scenarioQuote(), hotels, meals)
	twice, changed := pricing.Recompute(once, hotels, meals)

	if changed {
		t.Fatal("second recompute reported a change")
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("recompute not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestRecompute_Invariants(t *testing.T) {
	q := scenarioQuote()
	q.Period = "Ramadan"
	q.Meals = []string{"Demi-pension"}
	q.ExtraCosts = "700"
	q.Margin = "2500"
	q.Legs.Medina = domain.Leg{Hotel: "Taiba Front", Nights: "2"}

	got, _ := pricing.Recompute(q, catalog(), mealCatalog())

	hotel := pricing.ParseAmount(got.HotelTotal)
	expenses := pricing.ParseAmount(got.Expenses)
	total := pricing.ParseAmount(got.Total)
	remaining := pricing.ParseAmount(got.Remaining)

	fixed := pricing.Ancillary(got, mealCatalog()).Fixed
	if expenses != hotel+fixed+700 {
		t.Fatalf("expenses invariant broken: %d != %d+%d+700", expenses, hotel, fixed)
	}
	if total != expenses+2500 {
		t.Fatalf("total invariant broken: %d != %d+2500", total, expenses)
	}
	if remaining != total-pricing.ParseAmount(got.Advance) {
		t.Fatalf("remaining invariant broken")
	}

	lineSum := 0
	for _, rt := range domain.RoomTypes {
		lineSum += pricing.ParseAmount(got.Prices[rt])
	}
	if lineSum != hotel {
		t.Fatalf("per-type subtotals sum %d != hotelTotal %d", lineSum, hotel)
	}
}

func TestRecompute_EmptyDraftIsFullyDefined(t *testing.T) {
	got, changed := pricing.Recompute(domain.Quote{}, nil, nil)
	if !changed {
		t.Fatal("bare struct should change: empty strings become explicit zeros")
	}
	for _, v := range []string{got.HotelTotal, got.Expenses, got.Total, got.Remaining} {
		if v != "0" {
			t.Fatalf("derived field %q, want 0", v)
		}
	}
	for _, rt := range domain.RoomTypes {
		if got.Prices[rt] != "0" {
			t.Fatalf("price[%s] = %q, want 0", rt, got.Prices[rt])
		}
	}
}

func TestRecompute_DoesNotMutateInput(t *testing.T) {
	in := scenarioQuote()
	before := in.Prices[domain.RoomDouble]

	out, _ := pricing.Recompute(in, scenarioHotels(), nil)
	if in.Prices[domain.RoomDouble] != before {
		t.Fatal("input draft mutated")
	}
	if out.Prices[domain.RoomDouble] == before {
		t.Fatal("output draft not rebuilt")
	}
}
