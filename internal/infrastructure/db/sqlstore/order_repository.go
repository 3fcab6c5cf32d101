package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bookstore/storefront/internal/core/domain"
)

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type orderRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	VolumeID  string    `db:"volume_id"`
	Address   string    `db:"address"`
	CreatedAt time.Time `db:"created_at"`
}

// Create stores the order with its address serialised as a JSON snapshot.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	snapshot, err := o.Address.Snapshot()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := r.db.Rebind("INSERT INTO orders (id, user_id, volume_id, address, created_at) VALUES (?, ?, ?, ?, ?)")
	if _, err := r.db.ExecContext(ctx, query, o.ID, o.UserID, o.VolumeID, snapshot, o.CreatedAt.UTC()); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// ListByUser returns the user's orders oldest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []orderRow
	query := r.db.Rebind("SELECT id, user_id, volume_id, address, created_at FROM orders WHERE user_id = ? ORDER BY created_at, id")
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		addr, err := domain.ParseAddressSnapshot(row.Address)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", row.ID, err)
		}
		orders = append(orders, domain.Order{
			ID:        row.ID,
			UserID:    row.UserID,
			VolumeID:  row.VolumeID,
			Address:   addr,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return orders, nil
}
