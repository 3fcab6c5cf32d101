package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// RequireAuth sends anonymous visitors to the login page, remembering where
// they were headed.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IdentityFrom(c).IsAuthenticated() {
				return c.Redirect(http.StatusSeeOther, LoginURL(c.Request().RequestURI))
			}
			return next(c)
		}
	}
}

// LoginURL builds the login page URL that returns to next after sign-in.
func LoginURL(next string) string {
	if next == "" || next == "/" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}
