package domain

import "time"

// Identity is the caller bound to a request. It is resolved fresh from the
// user store on every request.
type Identity interface {
	UserID() string
	IsAuthenticated() bool
}

// User models a registered customer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserID satisfies Identity.
func (u *User) UserID() string {
	if u == nil {
		return ""
	}
	return u.ID
}

// IsAuthenticated satisfies Identity. A user record is authenticated only when
// it was loaded from the store (it has an id).
func (u *User) IsAuthenticated() bool {
	return u != nil && u.ID != ""
}

// Anonymous is the identity of a visitor without a valid session.
type Anonymous struct{}

func (Anonymous) UserID() string        { return "" }
func (Anonymous) IsAuthenticated() bool { return false }
