// Package app implements the hotel-management operations: the hotel
// registry, the room catalog, the reservation ledger, and the payment
// ledger. Services share one mutex so state-mutating operations run one
// at a time to completion, whatever the hosting server's concurrency.
package app

import (
	"sync"
	"time"

	"github.com/lily-0015/hotel-reservation-system/internal/domain"
	"github.com/lily-0015/hotel-reservation-system/internal/storage"
)

// Stores groups the typed collections every service reads and writes.
type Stores struct {
	Hotels       *storage.Collection[domain.Hotel]
	Rooms        *storage.Collection[domain.Room]
	Reservations *storage.Collection[domain.Reservation]
	Payments     *storage.Collection[domain.Payment]
}

// NewStores opens the four collections on a backend.
func NewStores(b domain.Backend) (Stores, error) {
	hotels, err := b.Collection(domain.ColHotel)
	if err != nil {
		return Stores{}, err
	}
	rooms, err := b.Collection(domain.ColRooms)
	if err != nil {
		return Stores{}, err
	}
	reservations, err := b.Collection(domain.ColReservations)
	if err != nil {
		return Stores{}, err
	}
	payments, err := b.Collection(domain.ColPayments)
	if err != nil {
		return Stores{}, err
	}
	return Stores{
		Hotels:       storage.NewCollection[domain.Hotel](hotels),
		Rooms:        storage.NewCollection[domain.Room](rooms),
		Reservations: storage.NewCollection[domain.Reservation](reservations),
		Payments:     storage.NewCollection[domain.Payment](payments),
	}, nil
}

type Services struct {
	Registry     *Registry
	Rooms        *RoomCatalog
	Reservations *ReservationLedger
	Payments     *PaymentLedger
}

// NewServices wires the four components over shared storage. cache may be
// nil to disable the availability read cache.
func NewServices(st Stores, cache domain.Cache, cacheTTL time.Duration, defaultHotelName string) *Services {
	mu := &sync.Mutex{}
	now := func() time.Time { return time.Now().UTC() }

	registry := &Registry{mu: mu, hotels: st.Hotels, now: now}
	rooms := &RoomCatalog{
		mu:          mu,
		rooms:       st.Rooms,
		registry:    registry,
		cache:       cache,
		cacheTTL:    cacheTTL,
		defaultName: defaultHotelName,
		now:         now,
	}
	reservations := &ReservationLedger{
		mu:           mu,
		reservations: st.Reservations,
		rooms:        rooms,
		now:          now,
	}
	payments := &PaymentLedger{
		mu:           mu,
		payments:     st.Payments,
		reservations: st.Reservations,
		rooms:        rooms,
		now:          now,
	}
	return &Services{
		Registry:     registry,
		Rooms:        rooms,
		Reservations: reservations,
		Payments:     payments,
	}
}
