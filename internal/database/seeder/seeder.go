package seeder

import (
	"context"

	"jobdesk/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
