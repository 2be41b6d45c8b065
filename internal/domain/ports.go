package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrCheckOutNotAfterCheckIn signals a rejected date edit; the stored
	// draft must be left unchanged by the caller.
	ErrCheckOutNotAfterCheckIn = errors.New("check-out must be after check-in")
)

// CatalogRepository persists the hotel and settings catalogs.
type CatalogRepository interface {
	// Write paths
	UpsertHotel(ctx context.Context, h Hotel) (int64, error)
	UpsertSetting(ctx context.Context, s Setting) (int64, error)
	DeleteHotel(ctx context.Context, id int64) error
	DeleteSetting(ctx context.Context, id int64) error

	// Read paths
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	ListHotels(ctx context.Context) ([]Hotel, error)
	ListSettings(ctx context.Context) ([]Setting, error)
}

// QuoteRepository persists quote records.
type QuoteRepository interface {
	InsertQuote(ctx context.Context, q Quote) (int64, error)
	UpdateQuote(ctx context.Context, q Quote) error
	DeleteQuote(ctx context.Context, id int64) error
	GetQuote(ctx context.Context, id int64) (Quote, error)
	ListQuotes(ctx context.Context, pg PageQuery) ([]Quote, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// LegacyClient reads records out of the old agency backend.
type LegacyClient interface {
	Login(ctx context.Context, username, password string) (string, error)
	ListHotels(ctx context.Context) ([]map[string]any, error)
	ListSettings(ctx context.Context, token string) (map[string]any, error)
	ListQuotes(ctx context.Context, token string) ([]map[string]any, error)
}

type PageQuery struct {
	Limit  int
	Offset int
}
