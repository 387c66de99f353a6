package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/refund-service/internal/api/http/handlers"
	"github.com/spec-kit/refund-service/internal/auth"
	"github.com/spec-kit/refund-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Sessions       *handlers.SessionsHandler
	Users          *handlers.UsersHandler
	Refunds        *handlers.RefundsHandler
	Uploads        *handlers.UploadsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Public routes are registered on app;
// everything behind the auth middleware lives in the protected group.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}

	app.Post("/users", cfg.Users.Create)
	app.Post("/sessions", cfg.Sessions.Create)

	employee := auth.RequireRole(domain.RoleEmployee)
	manager := auth.RequireRole(domain.RoleManager)
	anyRole := auth.RequireRole(domain.RoleEmployee, domain.RoleManager)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Delete("/sessions", anyRole, cfg.Sessions.Delete)

	protected.Post("/refunds", employee, cfg.Refunds.Create)
	protected.Get("/refunds", manager, cfg.Refunds.Index)
	protected.Get("/refunds/:id", anyRole, cfg.Refunds.Show)

	protected.Post("/uploads", employee, cfg.Uploads.Create)
}
