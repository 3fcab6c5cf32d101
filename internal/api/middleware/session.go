package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookstore/storefront/internal/core/domain"
	"github.com/bookstore/storefront/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

const identityKey = "identity"

// Session resolves the session token on every request and attaches the
// resulting identity to the context. Requests without a valid session carry
// domain.Anonymous; this middleware never rejects a request. A cookie that no
// longer resolves is cleared.
func Session(sessions ports.SessionService, secureCookie bool, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var identity domain.Identity = domain.Anonymous{}

			if token := TokenFrom(c); token != "" {
				user, err := sessions.Resolve(c.Request().Context(), token)
				switch {
				case err == nil:
					identity = user
				case errors.Is(err, domain.ErrUnauthenticated):
					ClearSessionCookie(c, secureCookie)
				default:
					logger.Warn().Err(err).Msg("session resolution failed")
				}
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// TokenFrom returns the session token from the cookie or, for API clients,
// the Authorization bearer header.
func TokenFrom(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	scheme, token, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
	if ok && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

// IdentityFrom returns the identity attached by Session, or domain.Anonymous.
func IdentityFrom(c echo.Context) domain.Identity {
	if id, ok := c.Get(identityKey).(domain.Identity); ok && id != nil {
		return id
	}
	return domain.Anonymous{}
}

// SetIdentity replaces the request identity, e.g. right after login.
func SetIdentity(c echo.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
}

// SetSessionCookie writes the session cookie for s.
func SetSessionCookie(c echo.Context, s *ports.Session, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie in the browser.
func ClearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
