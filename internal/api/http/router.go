package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/time-service/internal/api/http/handlers"
	"github.com/spec-kit/time-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Entries    *handlers.EntriesHandler
	Overview   *handlers.OverviewHandler
	Admin      *handlers.AdminHandler
	Identity   *auth.IdentityMiddleware
	AdminUsers []string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	pages := app.Group("", cfg.Identity.Handle)

	pages.Get(handlers.EntriesPath, cfg.Entries.List)
	pages.Post(handlers.EntriesPath+"/opret", cfg.Entries.Create)
	pages.Post(handlers.EntriesPath+"/rediger", cfg.Entries.Edit)
	pages.Post(handlers.EntriesPath+"/slet", cfg.Entries.Delete)
	pages.Get("/statistik", cfg.Entries.Statistics)

	pages.Get("/oversigt", cfg.Overview.Page)
	pages.Get("/oversigt/export", cfg.Overview.Export)

	admin := pages.Group(handlers.AdminPath, auth.RequireAdmin(cfg.AdminUsers))
	admin.Get("", cfg.Admin.Page)
	admin.Post("/add", cfg.Admin.Add)
	admin.Post("/edit", cfg.Admin.Edit)
	admin.Post("/deactivate/:id", cfg.Admin.Deactivate)
	admin.Post("/activate/:id", cfg.Admin.Activate)

	app.Use(NotFound)
}
