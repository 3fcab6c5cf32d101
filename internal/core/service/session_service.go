package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bookstore/storefront/internal/core/domain"
	"github.com/bookstore/storefront/internal/core/ports"
)

// SessionService binds a browser session to a user id with a signed token.
// Every resolution reloads the user so a session never serves a stale record.
type SessionService struct {
	users       ports.UserRepository
	revocations ports.RevocationStore
	secret      []byte
	ttl         time.Duration
	logger      zerolog.Logger
}

func NewSessionService(
	users ports.UserRepository,
	revocations ports.RevocationStore,
	secret string,
	ttl time.Duration,
	logger zerolog.Logger,
) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{
		users:       users,
		revocations: revocations,
		secret:      []byte(secret),
		ttl:         ttl,
		logger:      logger,
	}
}

// Issue signs a new session token for user.
func (s *SessionService) Issue(_ context.Context, user *domain.User) (*ports.Session, error) {
	if !user.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}

	now := time.Now().UTC()
	expires := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	return &ports.Session{Token: token, ExpiresAt: expires}, nil
}

func (s *SessionService) parse(token string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthenticated
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return claims, nil
}

// Resolve validates token and loads its user. A failed revocation lookup is
// reported as an error rather than domain.ErrUnauthenticated so the caller
// keeps the cookie while still refusing the session.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	claims, err := s.parse(token, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve session: revocation lookup: %w", err)
	}
	if revoked {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return user, nil
}

// Revoke invalidates token until its natural expiry. Invalid or already
// expired tokens need no revocation.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.parse(token, jwt.WithExpirationRequired())
	if err != nil {
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	if err := s.revocations.Revoke(ctx, claims.ID, remaining); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.logger.Info().Str("user_id", claims.Subject).Msg("session revoked")
	return nil
}
