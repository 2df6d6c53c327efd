// Package app assembles the service from configuration: store, token
// revocation, services and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/employee-service/internal/api/http"
	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/persistence"
	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/service"
	"github.com/spec-kit/employee-service/internal/worker"
)

// Container holds the wired dependencies of one process.
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics

	Postgres *persistence.Postgres
	SQLite   *persistence.SQLite
	Redis    *persistence.Redis

	Repos      repository.Set
	Revocation repository.RevocationStore
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher

	Auth        *service.AuthService
	Departments *service.DepartmentService
	Employees   *service.EmployeeService
	Dashboard   *service.DashboardService
	Audit       *service.AuditService
}

// Open connects the configured store and builds every service. Postgres
// migrations run when POSTGRES_RUN_MIGRATIONS is set; the SQLite schema is
// always brought up to date.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: logger, Metrics: observability.NewMetrics()}

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.Postgres = pg
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				c.Close()
				return nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		c.Repos = repository.NewPostgresSet(pg.PoolHandle())
	case config.StoreDriverSQLite:
		lite, err := persistence.NewSQLite(cfg.Store.SQLiteDSN, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		c.SQLite = lite
		if err := repository.AutoMigrate(lite.DB); err != nil {
			c.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		c.Repos = repository.NewGormSet(lite.DB)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	rdb, err := persistence.NewRedis(ctx, cfg.Redis, logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	c.Redis = rdb
	if c.Redis != nil {
		c.Revocation = repository.NewRedisRevocationStore(c.Redis.Client)
	} else {
		c.Revocation = repository.NewMemoryRevocationStore()
	}

	c.Tokens = auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	c.Dispatcher = events.NewInMemoryDispatcher()

	c.Auth = service.NewAuthService(service.AuthDependencies{
		UserRepo:   c.Repos.Users,
		Revocation: c.Revocation,
		Tokens:     c.Tokens,
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     logger,
	})
	c.Departments = service.NewDepartmentService(c.Repos.Departments, c.Dispatcher, logger)
	c.Employees = service.NewEmployeeService(c.Repos.Employees, c.Repos.Departments, c.Dispatcher, logger)
	c.Dashboard = service.NewDashboardService(c.Repos.Snapshots)
	c.Audit = service.NewAuditService(c.Dispatcher, logger)
	worker.StartAuditWorker(c.Audit, logger)

	return c, nil
}

// Migrate applies the schema of the configured store.
func (c *Container) Migrate(ctx context.Context) error {
	if c.Postgres != nil {
		return persistence.RunMigrations(ctx, c.Postgres.PoolHandle(), c.Logger)
	}
	if c.SQLite != nil {
		return repository.AutoMigrate(c.SQLite.DB)
	}
	return errors.New("no store configured")
}

// Probes lists the dependencies checked by the readiness endpoint.
func (c *Container) Probes() []handlers.Probe {
	var probes []handlers.Probe
	if c.Postgres != nil {
		probes = append(probes, handlers.Probe{Name: "postgres", Target: c.Postgres})
	}
	if c.SQLite != nil {
		probes = append(probes, handlers.Probe{Name: "sqlite", Target: c.SQLite})
	}
	if c.Redis != nil {
		probes = append(probes, handlers.Probe{Name: "redis", Target: c.Redis})
	}
	return probes
}

// HTTPServer builds the fiber application.
func (c *Container) HTTPServer() *fiber.App {
	return httptransport.NewServer(httptransport.ServerDeps{
		AppName:        c.Config.App.Name,
		Version:        c.Config.App.Version,
		BasePath:       c.Config.App.BasePath,
		RequestTimeout: c.Config.App.RequestTimeout(),
		Logger:         c.Logger,
		Metrics:        c.Metrics,
		Probes:         c.Probes(),
		Auth:           c.Auth,
		Departments:    c.Departments,
		Employees:      c.Employees,
		Dashboard:      c.Dashboard,
		AuthMiddleware: auth.NewAuthMiddleware(c.Tokens, c.Repos.Users, c.Revocation),
	})
}

// Close releases store and cache connections.
func (c *Container) Close() {
	c.Redis.Close()
	c.SQLite.Close()
	c.Postgres.Close()
}
