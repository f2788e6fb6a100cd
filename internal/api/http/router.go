package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nsight-itsm/assistant/internal/api/http/handlers"
	"github.com/nsight-itsm/assistant/internal/auth"
	"github.com/nsight-itsm/assistant/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleUser, domain.RoleAdmin))
	tickets.Post("/check-resolution", cfg.Tickets.CheckResolution)
	tickets.Post("/", cfg.Tickets.Submit)
	tickets.Get("/", cfg.Tickets.ListMine)
	tickets.Get("/similar", cfg.Tickets.Similar)
	tickets.Get("/:id", cfg.Tickets.Detail)
	tickets.Get("/:id/attachments", cfg.Tickets.Attachments)

	admin := app.Group("/admin/tickets", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/", cfg.Admin.ListAll)
	admin.Get("/search", cfg.Admin.Search)
	admin.Get("/stats", cfg.Admin.Stats)
	admin.Get("/resolved", cfg.Admin.Resolved)
	admin.Get("/latest", cfg.Admin.Latest)
	admin.Patch("/:id/status", cfg.Admin.UpdateStatus)
	admin.Post("/:id/suggestion", cfg.Admin.Suggestion)
	admin.Post("/:id/summary", cfg.Admin.Summary)
}
