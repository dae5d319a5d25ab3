package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"booking_listings/internal/adapters/booking"
	server "booking_listings/internal/adapters/http_server"
	"booking_listings/internal/adapters/observability"
	redisad "booking_listings/internal/adapters/redis"
	"booking_listings/internal/app"
	"booking_listings/internal/domain"
	"booking_listings/internal/shared"
	mysqlrepo "booking_listings/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()
	ctx := context.Background()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// optional cache
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		defer rc.Close()
		cache = rc
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("search cache enabled")
	}

	// optional archive
	var repo domain.ListingRepository
	if cfg.MySQLDSN != "" {
		dsn, err := mysqlrepo.NormalizeDSN(cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid MYSQL_DSN")
		}
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		defer db.Close()
		r := mysqlrepo.New(db)
		if err := r.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("listings schema failed")
		}
		repo = r
		log.Info().Msg("listing archive enabled")
	}

	// deps
	client, err := booking.New(cfg.GraphQLURL, booking.Session(cfg.Session), cfg.HTTPTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize booking client")
	}
	svc := app.NewSearchService(booking.BuildRequest, client, app.NewProjector(cfg.Sentinel), cache, repo, cfg.CacheTTL)

	// http
	srv := server.New(cfg.HTTPTimeout + 15*time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
