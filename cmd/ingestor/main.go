package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"aic_catalog/internal/adapters/feed"
	"aic_catalog/internal/adapters/observability"
	redisad "aic_catalog/internal/adapters/redis"
	"aic_catalog/internal/app"
	"aic_catalog/internal/shared"
	mysqlrepo "aic_catalog/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.FeedBase).
		Int("workers", cfg.Workers).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := feed.New(cfg.FeedBase, cfg.FeedKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize feed client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Parse problems go to both Prometheus/log and the parse_problems table.
	diag := observability.MultiDiagnostics{
		observability.NewParseProblemSink(log.Logger),
		mysqlrepo.NewDiagnostics(repo),
	}
	parser := app.NewParser(diag, log.Logger, cfg.PrintDataErrors)

	ing := app.NewIngestionService(client, repo, cache, parser, log.Logger, cfg.SnapshotTTL, cfg.Workers)
	if err := ing.IngestCatalog(ctx); err != nil {
		log.Fatal().Err(err).Msg("ingest failed")
	}
	log.Info().Msg("ingestion completed")
}
