package seeder

import (
	"context"
	"os"
	"strings"

	"jobdesk/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminUserSeeder provisions the admin account. Admins cannot
// self-register, so this is the only way one comes to exist.
type AdminUserSeeder struct{}

func (AdminUserSeeder) Name() string { return "admin_user" }

func (AdminUserSeeder) Run(ctx context.Context, db database.DB) error {
	if err := ensureTableColumns(ctx, db, "users",
		"id", "name", "email", "password_hash", "role", "created_at", "updated_at",
	); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL")))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var existing int
	if err := db.QueryRow(ctx, `SELECT COUNT(1) FROM users WHERE email = $1`, email).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role) VALUES ($1, $2, $3, $4, 'admin')`,
		uuid.New(), "Administrator", email, string(hash),
	)
	return err
}
