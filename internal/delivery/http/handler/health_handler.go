package handler

import (
	"context"
	"time"

	"jobdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Handle)
}

func (h *HealthHandler) Handle(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = "down"
			healthy = false
		} else {
			checks["database"] = "up"
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = "down"
		} else {
			checks["cache"] = "up"
		}
	}

	// A cold cache degrades to direct reads; only the database is load
	// bearing for readiness.
	if !healthy {
		return response.Fail(c, fiber.StatusServiceUnavailable, "unhealthy")
	}
	return response.Success(c, fiber.StatusOK, "healthy", checks)
}
