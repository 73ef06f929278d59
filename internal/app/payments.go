package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lily-0015/hotel-reservation-system/internal/domain"
	"github.com/lily-0015/hotel-reservation-system/internal/storage"
)

// Receipt carries the checkout confirmation. Amount is the exact decimal
// the guest paid; the stored Payment keeps the original amount text.
type Receipt struct {
	Msg    string
	Amount decimal.Decimal
}

// PaymentLedger records completed payments and releases rooms.
type PaymentLedger struct {
	mu           *sync.Mutex
	payments     *storage.Collection[domain.Payment]
	reservations *storage.Collection[domain.Reservation]
	rooms        *RoomCatalog
	now          func() time.Time
}

// CheckOutAndPay settles a reservation: only its guest may pay, each
// reservation is paid at most once, and the referenced room (if it still
// exists) becomes available again. The amount is not checked against the
// room price; it is recorded verbatim.
func (l *PaymentLedger) CheckOutAndPay(ctx context.Context, caller domain.Caller, reservationID, amount string) (Receipt, error) {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: amount must be decimal text", domain.ErrInvalidPayload)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	res, ok, err := l.reservations.Get(ctx, reservationID)
	if err != nil {
		return Receipt{}, fmt.Errorf("payments: %w", err)
	}
	if !ok {
		return Receipt{}, domain.ErrNotFound
	}
	if res.Guest != caller {
		return Receipt{}, domain.ErrNotAuthorized
	}
	paid, err := l.alreadyPaid(ctx, reservationID)
	if err != nil {
		return Receipt{}, fmt.Errorf("payments: %w", err)
	}
	if paid {
		return Receipt{}, domain.ErrAlreadyPaid
	}

	// The owner may have deleted the room mid-stay; the payment still goes
	// through, there is just nothing left to release.
	if err := l.rooms.setBooked(ctx, res.RoomID, false); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return Receipt{}, fmt.Errorf("payments: %w", err)
	}

	pay := domain.Payment{
		ID:            uuid.NewString(),
		ReservationID: reservationID,
		Amount:        amount,
		CreatedDate:   l.now(),
	}
	if err := l.payments.Put(ctx, pay.ID, pay); err != nil {
		return Receipt{}, fmt.Errorf("payments: %w", err)
	}

	return Receipt{
		Msg:    fmt.Sprintf("Thank you for your stay. Payment of $%s processed successfully", amount),
		Amount: amt,
	}, nil
}

func (l *PaymentLedger) alreadyPaid(ctx context.Context, reservationID string) (bool, error) {
	payments, err := l.payments.List(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range payments {
		if p.ReservationID == reservationID {
			return true, nil
		}
	}
	return false, nil
}
