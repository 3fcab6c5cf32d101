package ports

import (
	"context"
	"time"

	"github.com/bookstore/storefront/internal/core/domain"
)

// AuthService is the credential store.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Verify(ctx context.Context, email, password string) (*domain.User, error)
}

// Session is a signed session token bound to a user id.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// SessionService issues, resolves and revokes session tokens.
type SessionService interface {
	Issue(ctx context.Context, user *domain.User) (*Session, error)
	// Resolve returns the live user record for a token, or
	// domain.ErrUnauthenticated.
	Resolve(ctx context.Context, token string) (*domain.User, error)
	Revoke(ctx context.Context, token string) error
}

// RevocationStore remembers logged-out session ids until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
