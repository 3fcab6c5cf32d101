package ports

import (
	"context"

	"github.com/bookstore/storefront/internal/core/domain"
)

// UserRepository persists registered users. Email uniqueness is enforced by
// the storage engine; Create maps a violation to domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
