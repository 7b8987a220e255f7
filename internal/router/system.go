package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stellarhost/portal/internal/handler"
	"github.com/stellarhost/portal/internal/server"
)

// registerSystemRoutes wires endpoints that are not business logic:
// the service banner, health checks, docs UI, and static assets.
func registerSystemRoutes(e *echo.Echo, s *server.Server, h *handler.Handlers) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": s.Config.Observability.ServiceName,
			"env":     s.Config.Primary.Env,
		})
	})

	// Health status endpoint, used by load balancers and monitors.
	e.GET("/health", h.Health.CheckHealth)

	// Serve ./static at /static/* for openapi.json and docs assets.
	e.Static("/static", "static")

	// Docs UI.
	e.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
