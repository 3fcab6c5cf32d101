package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bookstore/storefront/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	orders    []domain.Order
	createErr error
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.orders = append(r.orders, *o)
	return nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func validAddress() domain.Address {
	return domain.Address{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Address:   "12 St James's Square",
		Address2:  "Flat 3",
		Country:   "United Kingdom",
		Zip:       "SW1Y 4JH",
		State:     "London",
	}
}

// ---------------------------------------------------------------------------
// PlaceOrder
// ---------------------------------------------------------------------------

func TestOrderService_PlaceOrder_Success(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, zerolog.Nop())
	user := &domain.User{ID: "u-1"}

	order, err := svc.PlaceOrder(context.Background(), user, " vol-42 ", validAddress())
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if len(repo.orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(repo.orders))
	}
	if order.ID == "" || order.UserID != "u-1" || order.VolumeID != "vol-42" {
		t.Fatalf("unexpected order: %+v", order)
	}
	if repo.orders[0].Address != validAddress() {
		t.Fatalf("address altered: %+v", repo.orders[0].Address)
	}
}

func TestOrderService_PlaceOrder_Unauthenticated(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, zerolog.Nop())

	for _, id := range []domain.Identity{nil, domain.Anonymous{}, &domain.User{}} {
		if _, err := svc.PlaceOrder(context.Background(), id, "vol-1", validAddress()); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated for %#v, got %v", id, err)
		}
	}
	if len(repo.orders) != 0 {
		t.Fatalf("expected no orders, got %d", len(repo.orders))
	}
}

func TestOrderService_PlaceOrder_InvalidInput(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, zerolog.Nop())
	user := &domain.User{ID: "u-1"}

	if _, err := svc.PlaceOrder(context.Background(), user, "  ", validAddress()); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty volume, got %v", err)
	}

	addr := validAddress()
	addr.Zip = ""
	if _, err := svc.PlaceOrder(context.Background(), user, "vol-1", addr); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing zip, got %v", err)
	}

	if len(repo.orders) != 0 {
		t.Fatalf("expected no orders, got %d", len(repo.orders))
	}
}

func TestOrderService_PlaceOrder_OptionalAddress2(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, zerolog.Nop())

	addr := validAddress()
	addr.Address2 = ""
	if _, err := svc.PlaceOrder(context.Background(), &domain.User{ID: "u-1"}, "vol-1", addr); err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
}

func TestOrderService_PlaceOrder_RepoError(t *testing.T) {
	repo := &stubOrderRepo{createErr: errors.New("db down")}
	svc := NewOrderService(repo, zerolog.Nop())

	if _, err := svc.PlaceOrder(context.Background(), &domain.User{ID: "u-1"}, "vol-1", validAddress()); err == nil {
		t.Fatalf("expected error")
	}
}

// ---------------------------------------------------------------------------
// OrdersFor
// ---------------------------------------------------------------------------

func TestOrderService_OrdersFor_OnlyOwnOrders(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, zerolog.Nop())
	alice := &domain.User{ID: "alice"}
	bob := &domain.User{ID: "bob"}

	for _, vol := range []string{"a-1", "a-2"} {
		if _, err := svc.PlaceOrder(context.Background(), alice, vol, validAddress()); err != nil {
			t.Fatalf("place: %v", err)
		}
	}
	if _, err := svc.PlaceOrder(context.Background(), bob, "b-1", validAddress()); err != nil {
		t.Fatalf("place: %v", err)
	}

	orders, err := svc.OrdersFor(context.Background(), alice)
	if err != nil {
		t.Fatalf("OrdersFor: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	for i, want := range []string{"a-1", "a-2"} {
		if orders[i].UserID != "alice" || orders[i].VolumeID != want {
			t.Fatalf("unexpected order %d: %+v", i, orders[i])
		}
	}
}

func TestOrderService_OrdersFor_Unauthenticated(t *testing.T) {
	svc := NewOrderService(&stubOrderRepo{}, zerolog.Nop())

	if _, err := svc.OrdersFor(context.Background(), domain.Anonymous{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
