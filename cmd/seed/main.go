// Command seed loads a development fixture: it initializes the hotel for
// the given owner and bulk-creates rooms straight through the app layer,
// bypassing HTTP. Meant for local demos and load tests.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/lily-0015/hotel-reservation-system/internal/adapters/observability"
	"github.com/lily-0015/hotel-reservation-system/internal/app"
	"github.com/lily-0015/hotel-reservation-system/internal/domain"
	"github.com/lily-0015/hotel-reservation-system/internal/shared"
	"github.com/lily-0015/hotel-reservation-system/internal/storage/boltdb"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	owner := domain.Caller(envOr("SEED_OWNER", "owner"))
	count := atoiOr("SEED_ROOMS", 20)
	price := envOr("SEED_PRICE", "100.00")
	workers := atoiOr("SEED_WORKERS", 4)

	db, err := boltdb.Open(cfg.BoltPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.BoltPath).Msg("bolt open failed")
	}
	defer func() { _ = db.Close() }()

	stores, err := app.NewStores(db)
	if err != nil {
		log.Fatal().Err(err).Msg("opening collections failed")
	}
	svcs := app.NewServices(stores, nil, 0, cfg.HotelName)

	if _, err := svcs.Registry.Init(ctx, owner, cfg.HotelName); err != nil {
		// already-initialized is fine for a reentrant seed
		log.Warn().Err(err).Msg("hotel init skipped")
	}

	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for i := 1; i <= count; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			defer sem.Release(1)

			number := fmt.Sprintf("%03d", n)
			id, err := svcs.Rooms.Add(ctx, owner, app.RoomPayload{RoomNumber: number, Price: price})
			if err != nil {
				log.Warn().Str("room", number).Err(err).Msg("seed room failed")
				return
			}
			log.Info().Str("room", number).Str("id", id).Msg("seed room ok")
		}(i)
	}

	wg.Wait()
	log.Info().Int("rooms", count).Msg("seeding completed")
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoiOr(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
