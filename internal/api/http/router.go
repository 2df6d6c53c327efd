package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	BasePath       string
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Departments    *handlers.DepartmentsHandler
	Employees      *handlers.EmployeesHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	api := app.Group(cfg.BasePath)
	api.Post("/login", cfg.Auth.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/logout", cfg.Auth.Logout)
	protected.Get("/user", cfg.Auth.User)
	protected.Get("/dashboard/stats", cfg.Dashboard.Stats)

	departments := protected.Group("/departments")
	departments.Get("/", cfg.Departments.List)
	departments.Post("/", cfg.Departments.Create)
	departments.Get("/:id", cfg.Departments.Get)
	departments.Put("/:id", cfg.Departments.Update)
	departments.Patch("/:id", cfg.Departments.Update)
	departments.Delete("/:id", cfg.Departments.Delete)

	employees := protected.Group("/employees")
	employees.Get("/", cfg.Employees.List)
	employees.Post("/", cfg.Employees.Create)
	employees.Get("/:id", cfg.Employees.Get)
	employees.Put("/:id", cfg.Employees.Update)
	employees.Patch("/:id", cfg.Employees.Update)
	employees.Delete("/:id", cfg.Employees.Delete)
}
