package main

import (
	"context"
	"log"
	"time"

	"jobdesk/internal/app"
	"jobdesk/internal/config"
	"jobdesk/internal/database/seeder"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg, log.Default())
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	r := seeder.Runner{Seeders: seeder.Defaults()}
	if err := r.Run(ctx, c.DB); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	log.Println("seeding complete")
}
