package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/service"
)

// ServerDeps is everything the HTTP surface needs.
type ServerDeps struct {
	AppName        string
	Version        string
	BasePath       string
	RequestTimeout time.Duration
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	Probes         []handlers.Probe

	Auth           *service.AuthService
	Departments    *service.DepartmentService
	Employees      *service.EmployeeService
	Dashboard      *service.DashboardService
	AuthMiddleware *auth.AuthMiddleware
}

// NewServer builds the fiber application with middlewares and routes.
func NewServer(deps ServerDeps) *fiber.App {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               deps.AppName,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(logger),
	})
	RegisterMiddlewares(app, logger, deps.Metrics, deps.RequestTimeout)

	RegisterRoutes(app, RouteConfig{
		BasePath:       deps.BasePath,
		Health:         handlers.NewHealthHandler(deps.AppName, deps.Version, deps.Metrics, deps.Probes...),
		Auth:           handlers.NewAuthHandler(deps.Auth),
		Departments:    handlers.NewDepartmentsHandler(deps.Departments),
		Employees:      handlers.NewEmployeesHandler(deps.Employees),
		Dashboard:      handlers.NewDashboardHandler(deps.Dashboard),
		AuthMiddleware: deps.AuthMiddleware,
	})
	return app
}
