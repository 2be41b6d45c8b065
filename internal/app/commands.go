package app

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog/log"

	"umrah_quotes/internal/domain"
	"umrah_quotes/internal/pricing"
)

const (
	keyHotels   = "hotels:all"
	keySettings = "settings:grouped"
)

// QuoteService owns the write path: every quote that reaches the
// repository has been through the pricing engine first, so stored totals
// always satisfy the invariants.
type QuoteService struct {
	quotes  domain.QuoteRepository
	catalog domain.CatalogRepository
	cache   domain.Cache
}

func NewQuoteService(qr domain.QuoteRepository, cr domain.CatalogRepository, c domain.Cache) *QuoteService {
	return &QuoteService{quotes: qr, catalog: cr, cache: c}
}

// PriceResult is the outcome of running the engine over a draft.
type PriceResult struct {
	Draft         domain.Quote
	Changed       bool
	MarginPercent float64
}

// Price runs the engine over a draft without persisting anything.
func (s *QuoteService) Price(ctx context.Context, q domain.Quote) (PriceResult, error) {
	hotels, meals, err := s.loadCatalogs(ctx)
	if err != nil {
		return PriceResult{}, err
	}
	priced, changed := pricing.Recompute(q, hotels, meals)
	// expenses already folds hotel+fixed+extra, so feed it back whole
	tt := pricing.ComputeTotals(
		pricing.ParseAmount(priced.Expenses), 0, 0,
		pricing.ParseAmount(priced.Margin),
		pricing.ParseAmount(priced.Advance),
	)
	return PriceResult{Draft: priced, Changed: changed, MarginPercent: tt.MarginPercent}, nil
}

func (s *QuoteService) CreateQuote(ctx context.Context, q domain.Quote) (domain.Quote, error) {
	hotels, meals, err := s.loadCatalogs(ctx)
	if err != nil {
		return domain.Quote{}, err
	}
	q, _ = pricing.Recompute(q, hotels, meals)
	if q.Reference == "" {
		q.Reference = newReference(time.Now())
	}
	if q.Status == "" {
		q.Status = domain.StatusPending
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	id, err := s.quotes.InsertQuote(ctx, q)
	if err != nil {
		return domain.Quote{}, err
	}
	q.ID = id
	s.invalidateQuoteLists(ctx)
	log.Info().Int64("id", id).Str("reference", q.Reference).Str("total", q.Total).Msg("quote created")
	return q, nil
}

func (s *QuoteService) UpdateQuote(ctx context.Context, q domain.Quote) (domain.Quote, error) {
	hotels, meals, err := s.loadCatalogs(ctx)
	if err != nil {
		return domain.Quote{}, err
	}
	q, _ = pricing.Recompute(q, hotels, meals)
	// full-replacement updates may omit server-owned fields; keep the
	// stored values rather than erasing them
	if q.Reference == "" || q.CreatedAt.IsZero() {
		if cur, err := s.quotes.GetQuote(ctx, q.ID); err == nil {
			if q.Reference == "" {
				q.Reference = cur.Reference
			}
			if q.CreatedAt.IsZero() {
				q.CreatedAt = cur.CreatedAt
			}
		}
	}
	if err := s.quotes.UpdateQuote(ctx, q); err != nil {
		return domain.Quote{}, err
	}
	s.invalidateQuote(ctx, q.ID)
	return q, nil
}

// EditCheckIn applies the check-in mutation policy to a stored quote,
// reprices it and persists the result.
func (s *QuoteService) EditCheckIn(ctx context.Context, id int64, city domain.City, date string) (domain.Quote, error) {
	q, err := s.quotes.GetQuote(ctx, id)
	if err != nil {
		return domain.Quote{}, err
	}
	return s.UpdateQuote(ctx, pricing.EditCheckIn(q, city, date))
}

// EditCheckOut does the same for check-out; a rejected edit returns
// domain.ErrCheckOutNotAfterCheckIn and writes nothing.
func (s *QuoteService) EditCheckOut(ctx context.Context, id int64, city domain.City, date string) (domain.Quote, error) {
	q, err := s.quotes.GetQuote(ctx, id)
	if err != nil {
		return domain.Quote{}, err
	}
	edited, err := pricing.EditCheckOut(q, city, date)
	if err != nil {
		return domain.Quote{}, err
	}
	return s.UpdateQuote(ctx, edited)
}

func (s *QuoteService) DeleteQuote(ctx context.Context, id int64) error {
	if err := s.quotes.DeleteQuote(ctx, id); err != nil {
		return err
	}
	s.invalidateQuote(ctx, id)
	return nil
}

// SaveHotel upserts a catalog hotel and evicts catalog caches; rates may
// have changed, so list caches of priced quotes are stale only until
// their next recompute, which happens on the next write.
func (s *QuoteService) SaveHotel(ctx context.Context, h domain.Hotel) (int64, error) {
	id, err := s.catalog.UpsertHotel(ctx, h)
	if err != nil {
		return 0, err
	}
	s.invalidateCatalog(ctx, id)
	return id, nil
}

func (s *QuoteService) DeleteHotel(ctx context.Context, id int64) error {
	if err := s.catalog.DeleteHotel(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx, id)
	return nil
}

func (s *QuoteService) SaveSetting(ctx context.Context, st domain.Setting) (int64, error) {
	id, err := s.catalog.UpsertSetting(ctx, st)
	if err != nil {
		return 0, err
	}
	_ = s.cache.Del(ctx, keySettings)
	return id, nil
}

func (s *QuoteService) DeleteSetting(ctx context.Context, id int64) error {
	if err := s.catalog.DeleteSetting(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Del(ctx, keySettings)
	return nil
}

func (s *QuoteService) loadCatalogs(ctx context.Context) ([]domain.Hotel, []domain.Setting, error) {
	return loadPricingCatalog(ctx, s.catalog)
}

// loadPricingCatalog fetches everything the engine consumes: the hotel
// index source and the meal options.
func loadPricingCatalog(ctx context.Context, catalog domain.CatalogRepository) ([]domain.Hotel, []domain.Setting, error) {
	hotels, err := catalog.ListHotels(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load hotels: %w", err)
	}
	settings, err := catalog.ListSettings(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}
	meals := make([]domain.Setting, 0, 8)
	for _, st := range settings {
		if st.Category == domain.SettingMeal {
			meals = append(meals, st)
		}
	}
	return hotels, meals, nil
}

func (s *QuoteService) invalidateQuote(ctx context.Context, id int64) {
	_ = s.cache.Del(ctx, fmt.Sprintf("quote:%d", id))
	s.invalidateQuoteLists(ctx)
}

// invalidate the most common list cache variants
func (s *QuoteService) invalidateQuoteLists(ctx context.Context) {
	for _, lim := range []int{50, 100, 200} {
		_ = s.cache.Del(ctx, fmt.Sprintf("quotes:%d:%d", lim, 0))
	}
}

func (s *QuoteService) invalidateCatalog(ctx context.Context, hotelID int64) {
	_ = s.cache.Del(ctx, keyHotels)
	_ = s.cache.Del(ctx, fmt.Sprintf("hotel:%d", hotelID))
}

// newReference builds the QT-YYYYMMDD-NNNN references the agency prints
// on documents. Uniqueness is enforced by the store.
func newReference(now time.Time) string {
	n, err := crand.Int(crand.Reader, big.NewInt(10000))
	suffix := int64(0)
	if err == nil {
		suffix = n.Int64()
	}
	return fmt.Sprintf("QT-%s-%04d", now.Format("20060102"), suffix)
}
