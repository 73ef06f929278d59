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

// Registry owns the single hotel row and the ownership check gating
// administrative mutation.
type Registry struct {
	mu     *sync.Mutex
	hotels *storage.Collection[domain.Hotel]
	now    func() time.Time
}

// Init creates the hotel owned by caller. At most one hotel ever exists;
// a second call fails with ErrAlreadyInitialized.
func (r *Registry) Init(ctx context.Context, caller domain.Caller, name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.init(ctx, caller, name)
}

// init is Init without the lock, for callers already holding it.
func (r *Registry) init(ctx context.Context, caller domain.Caller, name string) (string, error) {
	empty, err := r.hotels.Empty(ctx)
	if err != nil {
		return "", fmt.Errorf("registry: %w", err)
	}
	if !empty {
		return "", domain.ErrAlreadyInitialized
	}
	h := domain.Hotel{
		ID:          uuid.NewString(),
		Name:        name,
		Owner:       caller,
		CreatedDate: r.now(),
	}
	if err := r.hotels.Put(ctx, h.ID, h); err != nil {
		return "", fmt.Errorf("registry: %w", err)
	}
	return h.ID, nil
}

// IsOwner reports whether caller is the registered owner. The original
// system compared in the opposite direction and used that as its
// authorization gate; this implements the intended semantics. False when
// no hotel has been initialized.
func (r *Registry) IsOwner(ctx context.Context, caller domain.Caller) (bool, error) {
	hotels, err := r.hotels.List(ctx)
	if err != nil {
		return false, fmt.Errorf("registry: %w", err)
	}
	if len(hotels) == 0 {
		return false, nil
	}
	return hotels[0].Owner == caller, nil
}

func (r *Registry) initialized(ctx context.Context) (bool, error) {
	empty, err := r.hotels.Empty(ctx)
	return !empty, err
}
