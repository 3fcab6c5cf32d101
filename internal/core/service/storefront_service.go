package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bookstore/storefront/internal/core/domain"
	"github.com/bookstore/storefront/internal/core/ports"
)

const (
	defaultSampleSize  = 4
	enrichmentParallel = 4
	defaultSearchQuery = "Fiction"
)

// StorefrontService builds the catalog pages. Provider lookups only ever
// enrich a page; their failure never fails the page.
type StorefrontService struct {
	catalog    ports.CatalogGateway
	local      ports.LocalCatalog
	orders     ports.OrderService
	sampleSize int
	logger     zerolog.Logger
}

func NewStorefrontService(
	catalog ports.CatalogGateway,
	local ports.LocalCatalog,
	orders ports.OrderService,
	sampleSize int,
	logger zerolog.Logger,
) *StorefrontService {
	if sampleSize <= 0 {
		sampleSize = defaultSampleSize
	}
	return &StorefrontService{
		catalog:    catalog,
		local:      local,
		orders:     orders,
		sampleSize: sampleSize,
		logger:     logger,
	}
}

// Home returns a random sample of local books, each enriched with the
// provider's cover and volume id when the provider knows the ISBN.
func (s *StorefrontService) Home(ctx context.Context) []domain.CatalogItem {
	books := s.local.Sample(s.sampleSize)

	var g errgroup.Group
	g.SetLimit(enrichmentParallel)
	for i := range books {
		if books[i].ISBN == "" {
			continue
		}
		g.Go(func() error {
			hit, err := s.catalog.LookupByISBN(ctx, books[i].ISBN)
			if err != nil {
				s.logger.Debug().Err(err).Str("isbn", books[i].ISBN).Msg("cover enrichment skipped")
				return nil
			}
			books[i].ID = hit.ID
			if hit.Thumbnail != "" {
				books[i].Thumbnail = hit.Thumbnail
			}
			return nil
		})
	}
	_ = g.Wait()

	return books
}

// Book returns the provider's volume and the local dataset row for isbn.
// It fails only when neither source knows the book.
func (s *StorefrontService) Book(ctx context.Context, volumeID, isbn string) (*ports.BookDetail, error) {
	detail := &ports.BookDetail{}

	if volumeID != "" {
		remote, err := s.catalog.FetchByID(ctx, volumeID)
		if err == nil {
			detail.Remote = remote
		}
	}
	if isbn != "" {
		if local, ok := s.local.ByISBN(isbn); ok {
			detail.Local = local
		}
	}

	if detail.Remote == nil && detail.Local == nil {
		return nil, fmt.Errorf("book %q/%q: %w", volumeID, isbn, domain.ErrCatalogNotFound)
	}
	return detail, nil
}

// BookInfo returns the provider's view of a volume.
func (s *StorefrontService) BookInfo(ctx context.Context, volumeID string) (*domain.CatalogItem, error) {
	if strings.TrimSpace(volumeID) == "" {
		return nil, domain.ErrCatalogNotFound
	}
	return s.catalog.FetchByID(ctx, volumeID)
}

// Search proxies to the provider. An empty query falls back to a generic
// one so the page is never blank.
func (s *StorefrontService) Search(ctx context.Context, query string, filters domain.SearchFilters) []domain.CatalogItem {
	query = strings.TrimSpace(query)
	if query == "" {
		query = defaultSearchQuery
	}
	items, err := s.catalog.Search(ctx, query, filters)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("catalog search failed")
		return []domain.CatalogItem{}
	}
	return items
}

// OrderHistory lists the identity's orders with book metadata. Each order is
// enriched independently; a missing book leaves Book nil.
func (s *StorefrontService) OrderHistory(ctx context.Context, identity domain.Identity) ([]ports.OrderView, error) {
	orders, err := s.orders.OrdersFor(ctx, identity)
	if err != nil {
		return nil, err
	}

	views := make([]ports.OrderView, len(orders))
	var g errgroup.Group
	g.SetLimit(enrichmentParallel)
	for i, o := range orders {
		views[i].Order = o
		g.Go(func() error {
			book, err := s.catalog.FetchByID(ctx, o.VolumeID)
			if err != nil {
				if !errors.Is(err, domain.ErrCatalogNotFound) {
					s.logger.Warn().Err(err).Str("order_id", o.ID).Msg("order enrichment failed")
				}
				return nil
			}
			views[i].Book = book
			return nil
		})
	}
	_ = g.Wait()

	return views, nil
}
