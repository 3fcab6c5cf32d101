package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bookstore/storefront/internal/core/domain"
	"github.com/bookstore/storefront/internal/core/ports"
)

// OrderService is the order ledger. Orders are written once and never
// changed.
type OrderService struct {
	repo   ports.OrderRepository
	logger zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, logger: logger}
}

// PlaceOrder records an order for the authenticated identity.
func (s *OrderService) PlaceOrder(ctx context.Context, identity domain.Identity, volumeID string, address domain.Address) (*domain.Order, error) {
	if identity == nil || !identity.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}

	volumeID = strings.TrimSpace(volumeID)
	if volumeID == "" {
		return nil, fmt.Errorf("%w: volume id is required", domain.ErrInvalidInput)
	}
	if missing := address.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}

	order := &domain.Order{
		ID:        uuid.NewString(),
		UserID:    identity.UserID(),
		VolumeID:  volumeID,
		Address:   address,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("user_id", order.UserID).Msg("failed to place order")
		return nil, fmt.Errorf("place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("user_id", order.UserID).
		Str("volume_id", order.VolumeID).
		Msg("order placed")

	return order, nil
}

// OrdersFor lists the identity's own orders in insertion order.
func (s *OrderService) OrdersFor(ctx context.Context, identity domain.Identity) ([]domain.Order, error) {
	if identity == nil || !identity.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}
	orders, err := s.repo.ListByUser(ctx, identity.UserID())
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
