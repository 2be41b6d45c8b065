package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"umrah_quotes/internal/domain"
	"umrah_quotes/internal/pricing"
)

// ImportService migrates records out of the old agency backend. Every
// imported quote is repriced before it is stored, so stale legacy totals
// never survive the migration.
type ImportService struct {
	legacy  domain.LegacyClient
	quotes  domain.QuoteRepository
	catalog domain.CatalogRepository
	cache   domain.Cache
}

func NewImportService(lc domain.LegacyClient, qr domain.QuoteRepository, cr domain.CatalogRepository, c domain.Cache) *ImportService {
	return &ImportService{legacy: lc, quotes: qr, catalog: cr, cache: c}
}

// ImportCatalogs pulls hotels and settings and upserts them. Catalogs must
// land before quotes: repricing resolves hotels by name.
func (s *ImportService) ImportCatalogs(ctx context.Context, token string) (nHotels, nSettings int, err error) {
	hotelPayloads, err := s.legacy.ListHotels(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list hotels: %w", err)
	}
	for _, p := range hotelPayloads {
		h := MapHotel(p)
		if h.Name == "" {
			log.Warn().Msg("skipping hotel with no name")
			continue
		}
		if _, err := s.catalog.UpsertHotel(ctx, h); err != nil {
			return nHotels, 0, fmt.Errorf("upsert hotel %q: %w", h.Name, err)
		}
		nHotels++
	}

	grouped, err := s.legacy.ListSettings(ctx, token)
	if err != nil {
		return nHotels, 0, fmt.Errorf("list settings: %w", err)
	}
	for category, v := range grouped {
		entries, ok := v.([]any)
		if !ok {
			continue
		}
		for _, e := range entries {
			payload, ok := e.(map[string]any)
			if !ok {
				continue
			}
			st := MapSetting(payload)
			if st.Category == "" {
				st.Category = category
			}
			if st.Label == "" {
				continue
			}
			if _, err := s.catalog.UpsertSetting(ctx, st); err != nil {
				return nHotels, nSettings, fmt.Errorf("upsert setting %q: %w", st.Label, err)
			}
			nSettings++
		}
	}

	_ = s.cache.Del(ctx, keyHotels)
	_ = s.cache.Del(ctx, keySettings)
	return nHotels, nSettings, nil
}

// FetchQuotes pulls the raw legacy quote payloads.
func (s *ImportService) FetchQuotes(ctx context.Context, token string) ([]map[string]any, error) {
	return s.legacy.ListQuotes(ctx, token)
}

// PricingCatalog loads the catalogs the engine needs, once per run.
func (s *ImportService) PricingCatalog(ctx context.Context) ([]domain.Hotel, []domain.Setting, error) {
	return loadPricingCatalog(ctx, s.catalog)
}

// ImportQuote maps one legacy payload, reprices it against the migrated
// catalog and inserts it. Returns the new id and whether repricing moved
// any derived field.
func (s *ImportService) ImportQuote(ctx context.Context, payload map[string]any, hotels []domain.Hotel, meals []domain.Setting) (int64, bool, error) {
	q := MapQuote(payload)
	q, changed := pricing.Recompute(q, hotels, meals)
	if q.Reference == "" {
		q.Reference = newReference(time.Now())
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	id, err := s.quotes.InsertQuote(ctx, q)
	if err != nil {
		return 0, false, err
	}
	return id, changed, nil
}

// InvalidateQuotes evicts the list caches after a batch lands.
func (s *ImportService) InvalidateQuotes(ctx context.Context) {
	for _, lim := range []int{50, 100, 200} {
		_ = s.cache.Del(ctx, fmt.Sprintf("quotes:%d:%d", lim, 0))
	}
}
