package ports

import (
	"context"

	"github.com/bookstore/storefront/internal/core/domain"
)

// BookDetail combines the provider's view of a volume with the matching
// local dataset row. Either side may be nil.
type BookDetail struct {
	Remote *domain.CatalogItem
	Local  *domain.CatalogItem
}

// OrderView is an order together with its book metadata, when available.
type OrderView struct {
	Order domain.Order        `json:"order"`
	Book  *domain.CatalogItem `json:"book,omitempty"`
}

// StorefrontService assembles the read-side pages of the store.
type StorefrontService interface {
	Home(ctx context.Context) []domain.CatalogItem
	Book(ctx context.Context, volumeID, isbn string) (*BookDetail, error)
	BookInfo(ctx context.Context, volumeID string) (*domain.CatalogItem, error)
	Search(ctx context.Context, query string, filters domain.SearchFilters) []domain.CatalogItem
	OrderHistory(ctx context.Context, identity domain.Identity) ([]OrderView, error)
}
