package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lily-0015/hotel-reservation-system/internal/domain"
	"github.com/lily-0015/hotel-reservation-system/internal/storage"
)

type ReservationPayload struct {
	RoomID       string
	CheckInDate  time.Time
	CheckOutDate time.Time
}

// Confirmation is what a guest gets back from a successful booking.
type Confirmation struct {
	ID         string
	RoomNumber string
}

// ReservationLedger records guest bookings. Reservations are immutable
// once created and never deleted; there is no cancellation.
type ReservationLedger struct {
	mu           *sync.Mutex
	reservations *storage.Collection[domain.Reservation]
	rooms        *RoomCatalog
	now          func() time.Time
}

// Make books the referenced room for the caller. The room must exist and
// be available, and the stay must end after it begins; the original
// tolerated dangling room ids and double bookings, both rejected here.
func (l *ReservationLedger) Make(ctx context.Context, caller domain.Caller, p ReservationPayload) (Confirmation, error) {
	if !p.CheckOutDate.After(p.CheckInDate) {
		return Confirmation{}, domain.ErrInvalidDateRange
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	room, ok, err := l.rooms.get(ctx, p.RoomID)
	if err != nil {
		return Confirmation{}, fmt.Errorf("reservations: %w", err)
	}
	if !ok {
		return Confirmation{}, domain.ErrNotFound
	}
	if room.IsBooked {
		return Confirmation{}, domain.ErrRoomUnavailable
	}

	res := domain.Reservation{
		ID:           uuid.NewString(),
		RoomID:       room.ID,
		Guest:        caller,
		CheckInDate:  p.CheckInDate,
		CheckOutDate: p.CheckOutDate,
		CreatedDate:  l.now(),
	}
	if err := l.reservations.Put(ctx, res.ID, res); err != nil {
		return Confirmation{}, fmt.Errorf("reservations: %w", err)
	}
	if err := l.rooms.setBooked(ctx, room.ID, true); err != nil {
		return Confirmation{}, fmt.Errorf("reservations: %w", err)
	}
	return Confirmation{ID: res.ID, RoomNumber: room.RoomNumber}, nil
}
