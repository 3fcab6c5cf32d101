package ports

import (
	"context"

	"github.com/bookstore/storefront/internal/core/domain"
)

// CatalogGateway is the client of the external book-metadata provider.
// Provider failures are reported as missing data: FetchByID and LookupByISBN
// return domain.ErrCatalogNotFound, Search returns an empty slice.
type CatalogGateway interface {
	FetchByID(ctx context.Context, volumeID string) (*domain.CatalogItem, error)
	LookupByISBN(ctx context.Context, isbn string) (*domain.CatalogItem, error)
	Search(ctx context.Context, query string, filters domain.SearchFilters) ([]domain.CatalogItem, error)
}

// LocalCatalog is the static dataset bundled with the storefront.
type LocalCatalog interface {
	Sample(n int) []domain.CatalogItem
	ByISBN(isbn string) (*domain.CatalogItem, bool)
}
