package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/ticket-board/internal/api/http/handlers"
	"github.com/spec-kit/ticket-board/internal/auth"
	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Staff          *handlers.StaffHandler
	Tickets        *handlers.TicketsHandler
	Metrics        *observability.Metrics
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, auth.RequireAnyRole(), cfg.Users.Logout)

	app.Post("/support/agents", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleSupport), cfg.Staff.RegisterAgent)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	tickets.Post("", auth.RequireRole(domain.RoleUser), cfg.Tickets.Open)
	tickets.Get("", cfg.Tickets.List)
	tickets.Post("/:id/close", cfg.Tickets.Close)
	tickets.Post("/:id/comments", cfg.Tickets.Comment)
}
