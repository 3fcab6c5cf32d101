package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bookstore/storefront/internal/api/middleware"
	"github.com/bookstore/storefront/internal/core/domain"
)

// currentIdentity returns whoever the Session middleware resolved, possibly
// domain.Anonymous. Services make the authorization decision.
func currentIdentity(c echo.Context) domain.Identity {
	return middleware.IdentityFrom(c)
}

// currentUser returns the signed-in user, or nil for anonymous visitors.
func currentUser(c echo.Context) *domain.User {
	if u, ok := currentIdentity(c).(*domain.User); ok && u.IsAuthenticated() {
		return u
	}
	return nil
}
