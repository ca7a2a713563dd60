package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/employee-directory/internal/api/http/handlers"
	"github.com/spec-kit/employee-directory/internal/observability"
	"github.com/spec-kit/employee-directory/internal/session"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Employees *handlers.EmployeesHandler
	Form      *handlers.FormHandler
	Pages     *handlers.PagesHandler
	Sessions  *session.Middleware
	Metrics   *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Probes and metrics run without a
// session; every other path gets one, and unknown paths go back to the list.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	ui := app.Group("", cfg.Sessions.Handle)
	ui.Get("/", cfg.Employees.Index)
	ui.Get("/home", cfg.Pages.Home)
	ui.Get("/settings", cfg.Pages.Settings)
	ui.Post("/language", cfg.Pages.ChangeLanguage)

	ui.Post("/view-mode", cfg.Employees.SetViewMode)
	ui.Post("/view-mode/toggle", cfg.Employees.ToggleViewMode)
	ui.Post("/nav/list", cfg.Employees.ShowList)
	ui.Post("/nav/new", cfg.Employees.ShowAddNew)

	ui.Get("/employees/:id/edit", cfg.Employees.Edit)
	ui.Get("/employees/:id/delete", cfg.Employees.ConfirmDelete)
	ui.Post("/employees/:id/delete", cfg.Employees.Delete)

	ui.Post("/selection/toggle-all", cfg.Employees.ToggleAllSelected)
	ui.Post("/selection/:id/toggle", cfg.Employees.ToggleSelected)
	ui.Get("/export.xlsx", cfg.Employees.Export)

	ui.Post("/form/field", cfg.Form.Field)
	ui.Post("/form/reset", cfg.Form.Reset)
	ui.Post("/form/cancel", cfg.Form.Cancel)
	ui.Post("/form", cfg.Form.Submit)

	app.Use(func(c *fiber.Ctx) error {
		return c.Redirect("/", fiber.StatusSeeOther)
	})
}
