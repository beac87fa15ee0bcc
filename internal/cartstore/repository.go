package cartstore

import (
	"context"
	"errors"

	"github.com/Ackkerman111/sixseven-store/internal/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// CartRepository is the durable backing store for carts. The store mutates
// whole cart documents; merge rules live in Store, not here.
type CartRepository interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}
