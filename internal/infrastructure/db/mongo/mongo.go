// Package mongo is the MongoDB backend for users and orders, selected when
// DB_URI carries a mongodb:// or mongodb+srv:// scheme.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultDatabase = "bookstore"
	appName         = "storefront"
)

// Config selects the deployment. A database named in the URI path wins over
// Database.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func (cfg Config) databaseName() (string, error) {
	cs, err := connstring.ParseAndValidate(cfg.URI)
	if err != nil {
		return "", fmt.Errorf("mongo uri: %w", err)
	}
	switch {
	case cs.Database != "":
		return cs.Database, nil
	case cfg.Database != "":
		return cfg.Database, nil
	default:
		return defaultDatabase, nil
	}
}

// Store owns the client and hands out the user and order repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects, pings and creates the indexes the repositories rely on.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	name, err := cfg.databaseName()
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(name)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &Store{client: client, db: db}, nil
}

func (s *Store) Users() *UserRepository   { return NewUserRepository(s.db) }
func (s *Store) Orders() *OrderRepository { return NewOrderRepository(s.db) }

// Ping is the readiness check.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique email index on users and the per-user
// lookup index on orders.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	_, err = db.Collection(ordersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("orders index: %w", err)
	}
	return nil
}
