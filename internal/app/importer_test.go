package app_test

import (
	"context"
	"testing"

	"umrah_quotes/internal/app"
	"umrah_quotes/internal/domain"
)

type fakeLegacy struct {
	hotels   []map[string]any
	settings map[string]any
	quotes   []map[string]any
}

func (f *fakeLegacy) Login(ctx context.Context, username, password string) (string, error) {
	return "tok-123", nil
}
func (f *fakeLegacy) ListHotels(ctx context.Context) ([]map[string]any, error) {
	return f.hotels, nil
}
func (f *fakeLegacy) ListSettings(ctx context.Context, token string) (map[string]any, error) {
	return f.settings, nil
}
func (f *fakeLegacy) ListQuotes(ctx context.Context, token string) ([]map[string]any, error) {
	return f.quotes, nil
}

func TestImportCatalogs(t *testing.T) {
	lc := &fakeLegacy{
		hotels: []map[string]any{
			{"name": "Dar Al Salam", "city": "Makkah", "prices": map[string]any{"double": "1000"}},
			{"city": "Medina"}, // nameless, skipped
		},
		settings: map[string]any{
			"meal": []any{
				map[string]any{"label": "Demi-pension", "price": "1200", "isActive": true},
			},
			"period": []any{
				map[string]any{"label": "Ramadan"},
			},
		},
	}
	catalog := &fakeCatalogRepo{}
	cache := &fakeCache{store: map[string]any{"hotels:all": []domain.Hotel{}}}
	imp := app.NewImportService(lc, newFakeQuoteRepo(), catalog, cache)

	nHotels, nSettings, err := imp.ImportCatalogs(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if nHotels != 1 || nSettings != 2 {
		t.Fatalf("counts: %d hotels, %d settings", nHotels, nSettings)
	}
	if catalog.settings[0].Category == "" {
		t.Fatalf("setting category not filled from group key: %+v", catalog.settings)
	}

	found := false
	for _, k := range cache.dels {
		if k == "hotels:all" {
			found = true
		}
	}
	if !found {
		t.Fatalf("catalog cache not evicted (dels: %v)", cache.dels)
	}
}

func TestImportQuote_RepricesStaleLegacyTotals(t *testing.T) {
	repo := newFakeQuoteRepo()
	catalog := pricingCatalog()
	imp := app.NewImportService(&fakeLegacy{}, repo, catalog, &fakeCache{})

	hotels, meals, err := imp.PricingCatalog(context.Background())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	payload := map[string]any{
		"clientName":    "Benali",
		"hotelMakkah":   "Dar Al Salam",
		"dates":         map[string]any{"makkahCheckIn": "01/01/2025", "makkahCheckOut": "04/01/2025"},
		"quantities":    map[string]any{"double": "1"},
		"flightPrice":   "5000",
		"advanceAmount": "2000",
		"totalAmount":   "999999", // stale legacy total, must not survive
	}
	id, changed, err := imp.ImportQuote(context.Background(), payload, hotels, meals)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !changed {
		t.Fatal("stale totals should register as changed")
	}
	stored := repo.byID[id]
	if stored.Total != "8000" || stored.Remaining != "6000" {
		t.Fatalf("stored totals: %+v", stored)
	}
	if stored.Reference == "" {
		t.Fatal("no reference generated")
	}
	if stored.CreatedAt.IsZero() {
		t.Fatal("no createdAt set")
	}
}
