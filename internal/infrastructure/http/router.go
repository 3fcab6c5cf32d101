package http

import (
	"github.com/labstack/echo/v4"

	"github.com/bookstore/storefront/internal/infrastructure/http/handlers"
)

// RegisterProbes mounts the liveness and readiness probes on e. Probes sit
// outside the session middleware and the rate limiter.
func RegisterProbes(e *echo.Echo, checks map[string]handlers.Check) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
}
