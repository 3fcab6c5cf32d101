package ports

import (
	"context"

	"github.com/bookstore/storefront/internal/core/domain"
)

// OrderService places and lists orders for an authenticated identity.
type OrderService interface {
	PlaceOrder(ctx context.Context, identity domain.Identity, volumeID string, address domain.Address) (*domain.Order, error)
	OrdersFor(ctx context.Context, identity domain.Identity) ([]domain.Order, error)
}
