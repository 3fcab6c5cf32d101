package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// Render writes data with the named HTML view, or as JSON when the client
// asks for JSON or no renderer is configured.
func Render(c echo.Context, code int, view string, data any) error {
	if c.Echo().Renderer == nil || wantsJSON(c) {
		return c.JSON(code, data)
	}
	return c.Render(code, view, data)
}

// wantsJSON looks only at the first listed media type; browsers list
// text/html first.
func wantsJSON(c echo.Context) bool {
	first, _, _ := strings.Cut(c.Request().Header.Get(echo.HeaderAccept), ",")
	first, _, _ = strings.Cut(first, ";")
	return strings.TrimSpace(first) == echo.MIMEApplicationJSON
}
