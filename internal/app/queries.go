package app

import (
	"context"
	"fmt"
	"time"

	"umrah_quotes/internal/domain"
)

type QueryService struct {
	quotes   domain.QuoteRepository
	catalog  domain.CatalogRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(qr domain.QuoteRepository, cr domain.CatalogRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{quotes: qr, catalog: cr, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetQuote(ctx context.Context, id int64) (domain.Quote, error) {
	key := fmt.Sprintf("quote:%d", id)
	var q domain.Quote
	if ok, _ := s.cache.Get(ctx, key, &q); ok {
		return q, nil
	}
	q, err := s.quotes.GetQuote(ctx, id)
	if err != nil {
		return domain.Quote{}, err
	}
	_ = s.cache.Set(ctx, key, q, int(s.cacheTTL.Seconds()))
	return q, nil
}

func (s *QueryService) ListQuotes(ctx context.Context, pg domain.PageQuery) ([]domain.Quote, error) {
	key := fmt.Sprintf("quotes:%d:%d", pg.Limit, pg.Offset)
	var out []domain.Quote
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	qs, err := s.quotes.ListQuotes(ctx, pg)
	if err != nil {
		return nil, err
	}
	// copy slice to avoid aliasing the repo's backing array
	cp := make([]domain.Quote, len(qs))
	copy(cp, qs)
	_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	return cp, nil
}

func (s *QueryService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	key := fmt.Sprintf("hotel:%d", id)
	var h domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &h); ok {
		return h, nil
	}
	h, err := s.catalog.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	return h, nil
}

func (s *QueryService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	var out []domain.Hotel
	if ok, _ := s.cache.Get(ctx, keyHotels, &out); ok {
		return out, nil
	}
	hs, err := s.catalog.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, keyHotels, hs, int(s.cacheTTL.Seconds()))
	return hs, nil
}

// GetSettings returns the catalog options grouped the way the edit
// surface consumes them.
func (s *QueryService) GetSettings(ctx context.Context) (domain.SettingsByCategory, error) {
	var out domain.SettingsByCategory
	if ok, _ := s.cache.Get(ctx, keySettings, &out); ok {
		return out, nil
	}
	all, err := s.catalog.ListSettings(ctx)
	if err != nil {
		return domain.SettingsByCategory{}, err
	}
	out = GroupSettings(all)
	_ = s.cache.Set(ctx, keySettings, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func GroupSettings(all []domain.Setting) domain.SettingsByCategory {
	var g domain.SettingsByCategory
	for _, st := range all {
		switch st.Category {
		case domain.SettingDestination:
			g.Destinations = append(g.Destinations, st)
		case domain.SettingPeriod:
			g.Periods = append(g.Periods, st)
		case domain.SettingTransportMain:
			g.Transports = append(g.Transports, st)
		case domain.SettingTransportIntercity:
			g.Intercity = append(g.Intercity, st)
		case domain.SettingMeal:
			g.Meals = append(g.Meals, st)
		}
	}
	return g
}
