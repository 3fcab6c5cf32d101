package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/bookstore/storefront/docs"
	"github.com/bookstore/storefront/internal/api/handler"
	"github.com/bookstore/storefront/internal/api/middleware"
	"github.com/bookstore/storefront/internal/core/ports"
	infrahttp "github.com/bookstore/storefront/internal/infrastructure/http"
	"github.com/bookstore/storefront/internal/infrastructure/http/handlers"
)

const defaultAuthRateLimit = 5

// Dependencies is everything the HTTP layer needs from the rest of the
// process.
type Dependencies struct {
	Auth       ports.AuthService
	Sessions   ports.SessionService
	Orders     ports.OrderService
	Storefront ports.StorefrontService

	// Probes are run by /health/ready, keyed by dependency name.
	Probes map[string]handlers.Check
	// Renderer renders HTML pages; when nil every response is JSON.
	Renderer echo.Renderer

	// Registerer and Gatherer back the HTTP metrics and /metrics. A private
	// registry is used when nil.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	SecureCookies bool
	// AuthRateLimit is the per-IP request rate on login and registration
	// submissions.
	AuthRateLimit float64

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	if deps.Renderer != nil {
		e.Renderer = deps.Renderer
	}

	if deps.Registerer == nil || deps.Gatherer == nil {
		reg := prometheus.NewRegistry()
		deps.Registerer, deps.Gatherer = reg, reg
	}
	if deps.AuthRateLimit <= 0 {
		deps.AuthRateLimit = defaultAuthRateLimit
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "bookstore",
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational endpoints (no session) ---
	infrahttp.RegisterProbes(e, deps.Probes)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Storefront ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Sessions, deps.SecureCookies, deps.Logger)
	catalogHandler := handler.NewCatalogHandler(deps.Storefront)
	checkoutHandler := handler.NewCheckoutHandler(deps.Orders, deps.Storefront, deps.Logger)

	site := e.Group("", middleware.Session(deps.Sessions, deps.SecureCookies, deps.Logger))
	authLimiter := echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(rate.Limit(deps.AuthRateLimit)))

	site.GET("/", catalogHandler.Home)
	site.GET("/book", catalogHandler.Book)
	site.GET("/book_info", catalogHandler.BookInfo)
	site.GET("/search", catalogHandler.Search)
	site.POST("/search", catalogHandler.Search)

	site.GET("/register", authHandler.RegisterForm)
	site.POST("/register", authHandler.Register, authLimiter)
	site.GET("/login", authHandler.LoginForm)
	site.POST("/login", authHandler.Login, authLimiter)
	site.GET("/logout", authHandler.Logout)
	site.POST("/logout", authHandler.Logout)

	// --- Signed-in only ---
	// Route-level so that unknown paths still 404 instead of redirecting.
	requireAuth := middleware.RequireAuth()
	site.GET("/checkout", checkoutHandler.Form, requireAuth)
	site.POST("/checkout", checkoutHandler.Submit, requireAuth)
	site.GET("/orders", catalogHandler.Orders, requireAuth)

	return e
}
