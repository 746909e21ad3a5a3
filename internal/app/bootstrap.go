package app

import (
	"fmt"
	"strings"

	"jobdesk/internal/config"
	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func New(c *Container) (*App, error) {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)

	registry := routes.NewRegistry(c.Config, c.DB, c.Cache, c.Logger)
	if err := registry.Register(f); err != nil {
		return nil, err
	}

	return &App{Fiber: f}, nil
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg, nil)
	if err != nil {
		return nil, nil, err
	}

	app, err := New(container)
	if err != nil {
		_ = container.Close()
		return nil, nil, err
	}

	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
