package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/employee-service/internal/observability"
)

// Pinger is a dependency that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Probe names a dependency checked by the readiness endpoint.
type Probe struct {
	Name   string
	Target Pinger
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	probes      []Probe
	metrics     *observability.Metrics
	timeout     time.Duration
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, metrics *observability.Metrics, probes ...Probe) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		probes:      probes,
		metrics:     metrics,
		timeout:     2 * time.Second,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready pings every dependency concurrently.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	var (
		mu        sync.Mutex
		depStatus = fiber.Map{}
		ready     = true
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range h.probes {
		p := p
		g.Go(func() error {
			status := "ok"
			if err := p.Target.Ping(gctx); err != nil {
				status = err.Error()
			}
			mu.Lock()
			defer mu.Unlock()
			depStatus[p.Name] = status
			if status != "ok" {
				ready = false
			}
			return nil
		})
	}
	_ = g.Wait()

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}

// Metrics reports the in-memory request and error counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Snapshot())
}
