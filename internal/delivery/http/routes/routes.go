package routes

import (
	"log"

	"jobdesk/internal/config"
	"jobdesk/internal/database"
	"jobdesk/internal/delivery/http/handler"
	v1 "jobdesk/internal/delivery/http/routes/v1"
	"jobdesk/internal/infrastructure/cache"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg    config.Config
	db     database.DB
	cache  *cache.Redis
	logger *log.Logger
}

func NewRegistry(cfg config.Config, db database.DB, redis *cache.Redis, logger *log.Logger) *Registry {
	return &Registry{cfg: cfg, db: db, cache: redis, logger: logger}
}

func (r *Registry) Register(app *fiber.App) error {
	if app == nil {
		return nil
	}

	health := handler.NewHealthHandler(r.db, r.cache)
	health.RegisterRoutes(app)

	api := app.Group("/api")
	return v1.Register(api.Group("/v1"), r.cfg, r.db, r.cache, r.logger)
}
