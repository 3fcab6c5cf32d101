package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookstore/storefront/internal/core/domain"
)

type stubUserRepo struct {
	users     map[string]*domain.User // keyed by email
	createErr error
	findErr   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[user.Email] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newTestAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, bcrypt.MinCost, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), "Alice", " Alice@Example.com ", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if repo.users["alice@example.com"].PasswordHash == "pass123" {
		t.Fatalf("plaintext password reached the repository")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	cases := []struct{ name, email, password string }{
		{"", "a@example.com", "pass"},
		{"Bob", "  ", "pass"},
		{"Bob", "bob@example.com", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc.name, tc.email, tc.password); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", tc, err)
		}
	}
}

func TestAuthService_Register_PasswordByteLimit(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	// 40 characters, 80 bytes.
	long := strings.Repeat("é", 40)
	if _, err := svc.Register(context.Background(), "Zoé", "zoe@example.com", long); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("expected nothing stored, got %d users", len(repo.users))
	}

	// 36 characters, exactly 72 bytes.
	exact := strings.Repeat("é", 36)
	user, err := svc.Register(context.Background(), "Zoé", "zoe@example.com", exact)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Verify(context.Background(), "zoe@example.com", exact); err != nil {
		t.Fatalf("Verify %s: %v", user.ID, err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "Bob", "bob@example.com", "pass"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "Bobby", "BOB@example.com", "pass2"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one stored user, got %d", len(repo.users))
	}
	if repo.users["bob@example.com"].Name != "Bob" {
		t.Fatalf("duplicate registration overwrote the original user")
	}
}

func TestAuthService_Register_RepoError(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = errors.New("disk full")
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), "Carl", "carl@example.com", "pass")
	if err == nil || errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
}

func TestAuthService_Verify_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	registered, err := svc.Register(context.Background(), "Carol", "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Verify(context.Background(), "CAROL@example.com", "s3cret")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Verify_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), "Dave", "dave@example.com", "goodpass")
	for _, pw := range []string{"badpass", "goodpass ", "GOODPASS", "x"} {
		if _, err := svc.Verify(context.Background(), "dave@example.com", pw); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for %q, got %v", pw, err)
		}
	}
}

func TestAuthService_Verify_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Verify(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Verify_EmptyInput(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Verify(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Verify_LegacyHash(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["old@example.com"] = &domain.User{
		ID:           "legacy-1",
		Email:        "old@example.com",
		Name:         "Old Timer",
		PasswordHash: legacyHash,
	}
	svc := newTestAuthService(repo)

	if _, err := svc.Verify(context.Background(), "old@example.com", "open-sesame"); err != nil {
		t.Fatalf("legacy verify failed: %v", err)
	}
	if _, err := svc.Verify(context.Background(), "old@example.com", "open-sesame!"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
