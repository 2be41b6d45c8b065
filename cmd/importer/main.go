package main

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"umrah_quotes/internal/adapters/legacy"
	"umrah_quotes/internal/adapters/observability"
	redisad "umrah_quotes/internal/adapters/redis"
	"umrah_quotes/internal/app"
	"umrah_quotes/internal/shared"
	mysqlrepo "umrah_quotes/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.LegacyBase).
		Int("workers", cfg.Workers).
		Msg("importer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := legacy.New(cfg.LegacyBase, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize legacy client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	imp := app.NewImportService(client, repo, repo, cache)

	token, err := client.Login(ctx, cfg.LegacyUser, cfg.LegacyPass)
	if err != nil {
		log.Fatal().Err(err).Msg("legacy login failed")
	}

	// catalogs first: quote repricing resolves hotels by name
	nHotels, nSettings, err := imp.ImportCatalogs(ctx, token)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog import failed")
	}
	log.Info().Int("hotels", nHotels).Int("settings", nSettings).Msg("catalogs imported")

	payloads, err := imp.FetchQuotes(ctx, token)
	if err != nil {
		log.Fatal().Err(err).Msg("fetch quotes failed")
	}
	hotels, meals, err := imp.PricingCatalog(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load pricing catalog failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup
	var imported, repriced int64

	for _, p := range payloads {
		p := p

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(payload map[string]any) {
			defer wg.Done()
			defer sem.Release(int64(1))

			id, changed, err := imp.ImportQuote(ctx, payload, hotels, meals)
			if err != nil {
				log.Warn().Err(err).Msg("quote import failed")
				return
			}
			observability.ObserveRecompute(changed)
			atomic.AddInt64(&imported, 1)
			if changed {
				atomic.AddInt64(&repriced, 1)
			}
			log.Info().Int64("id", id).Bool("repriced", changed).Msg("quote imported")
		}(p)
	}

	wg.Wait()
	imp.InvalidateQuotes(ctx)
	log.Info().
		Int64("imported", imported).
		Int64("repriced", repriced).
		Int("fetched", len(payloads)).
		Msg("import completed")
}
