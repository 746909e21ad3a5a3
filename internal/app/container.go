package app

import (
	"context"
	"log"
	"time"

	"jobdesk/internal/config"
	"jobdesk/internal/database"
	"jobdesk/internal/database/migration"
	dbpostgres "jobdesk/internal/database/postgres"
	"jobdesk/internal/infrastructure/cache"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(logger),
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
