package pricing_test

import (
	"testing"

	"umrah_quotes/internal/domain"
	"umrah_quotes/internal/pricing"
)

func mealCatalog() []domain.Setting {
	return []domain.Setting{
		{Category: domain.SettingMeal, Label: "Petit-déjeuner", Price: "500"},
		{Category: domain.SettingMeal, Label: "Demi-pension", Price: "1200"},
	}
}

func TestAncillary_AdultChildSplit(t *testing.T) {
	q := domain.NewQuote()
	q.NumberOfAdults = "2"
	q.NumberOfChildren = "1"
	q.FlightPrice = "5000"
	q.FlightPriceChild = "3000"
	q.TransportPrice = "800"
	q.TransportPriceChild = "400"
	q.VisaPrice = "1000"
	q.VisaPriceChild = "1000"

	b := pricing.Ancillary(q, nil)
	if b.Flight != 13000 {
		t.Fatalf("flight = %d, want 13000", b.Flight)
	}
	if b.Transport != 2000 {
		t.Fatalf("transport = %d, want 2000", b.Transport)
	}
	if b.Visa != 3000 {
		t.Fatalf("visa = %d, want 3000", b.Visa)
	}
	if b.Fixed != 18000 {
		t.Fatalf("fixed = %d, want 18000", b.Fixed)
	}
}

func TestAncillary_MealsPerPax(t *testing.T) {
	q := domain.NewQuote()
	q.NumberOfAdults = "2"
	q.NumberOfChildren = "2"
	q.Meals = []string{"Petit-déjeuner", "Demi-pension", "Inconnu"}

	b := pricing.Ancillary(q, mealCatalog())
	// (500 + 1200 + 0) × 4 pax, no child discount on meals
	if b.Meals != 6800 {
		t.Fatalf("meals = %d, want 6800", b.Meals)
	}
	if b.Fixed != 6800 {
		t.Fatalf("fixed = %d, want 6800", b.Fixed)
	}
}

func TestAncillary_EmptyDraftIsZero(t *testing.T) {
	b := pricing.Ancillary(domain.Quote{}, mealCatalog())
	if b.Fixed != 0 || b.Flight != 0 || b.Meals != 0 {
		t.Fatalf("breakdown not zero: %+v", b)
	}
}
