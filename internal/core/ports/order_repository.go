package ports

import (
	"context"

	"github.com/bookstore/storefront/internal/core/domain"
)

// OrderRepository is the append-only order ledger. There is no update or
// delete.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	// ListByUser returns the user's orders in insertion order.
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}
