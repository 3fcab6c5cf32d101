package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookstore/storefront/internal/core/domain"
)

const ordersCollection = "orders"

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

// The address is kept as the same JSON snapshot the SQL store writes so both
// backends hold identical order records.
type mongoOrder struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	VolumeID  string    `bson:"volume_id"`
	Address   string    `bson:"address"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	snapshot, err := o.Address.Snapshot()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOrder{
		ID:        o.ID,
		UserID:    o.UserID,
		VolumeID:  o.VolumeID,
		Address:   snapshot,
		CreatedAt: o.CreatedAt.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// ListByUser returns the user's orders oldest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	var docs []mongoOrder
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		addr, err := domain.ParseAddressSnapshot(d.Address)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", d.ID, err)
		}
		orders = append(orders, domain.Order{
			ID:        d.ID,
			UserID:    d.UserID,
			VolumeID:  d.VolumeID,
			Address:   addr,
			CreatedAt: d.CreatedAt.UTC(),
		})
	}
	return orders, nil
}
