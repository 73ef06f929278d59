package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "github.com/lily-0015/hotel-reservation-system/internal/adapters/http_server"
	"github.com/lily-0015/hotel-reservation-system/internal/adapters/observability"
	redisad "github.com/lily-0015/hotel-reservation-system/internal/adapters/redis"
	"github.com/lily-0015/hotel-reservation-system/internal/app"
	"github.com/lily-0015/hotel-reservation-system/internal/domain"
	"github.com/lily-0015/hotel-reservation-system/internal/shared"
	"github.com/lily-0015/hotel-reservation-system/internal/storage/boltdb"
	mysqlstore "github.com/lily-0015/hotel-reservation-system/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	backend := openBackend(cfg)
	defer func() { _ = backend.Close() }()

	stores, err := app.NewStores(backend)
	if err != nil {
		log.Fatal().Err(err).Msg("opening collections failed")
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svcs := app.NewServices(stores, cache, cfg.CacheTTL, cfg.HotelName)

	srv := server.New(cfg.RateRPS)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svcs}, []byte(cfg.JWTSecret))

	log.Info().Str("addr", cfg.HTTPAddr).Str("driver", cfg.StorageDriver).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

func openBackend(cfg shared.Config) domain.Backend {
	switch cfg.StorageDriver {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		st := mysqlstore.New(db)
		if err := st.Migrate(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("mysql migration failed")
		}
		log.Info().Msg("mysql connection ok")
		return st
	case "bolt", "":
		db, err := boltdb.Open(cfg.BoltPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.BoltPath).Msg("bolt open failed")
		}
		return db
	default:
		log.Fatal().Str("driver", cfg.StorageDriver).Msg("unknown STORAGE_DRIVER")
		return nil
	}
}
