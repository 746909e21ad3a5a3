package database

import (
	"context"
	"database/sql"
)

// DB is the narrow surface repositories depend on. All candidate-list
// mutations are single statements, so no transactional API is exposed.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	// SQLDB exposes the database/sql bridge used by the migration runner
	// and prepared-statement repositories.
	SQLDB() *sql.DB
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
