package postgres

import (
	"context"
	"database/sql"
	"errors"

	"jobdesk/internal/database"
	"jobdesk/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository struct {
	db database.DB

	stmtCreate     *sql.Stmt
	stmtGetByID    *sql.Stmt
	stmtGetByEmail *sql.Stmt
}

func NewUserRepository(db database.DB) (*UserRepository, error) {
	r := &UserRepository{db: db}

	var err error
	r.stmtCreate, err = db.SQLDB().PrepareContext(
		context.Background(),
		`INSERT INTO users (id, name, email, password_hash, role) VALUES ($1, $2, $3, $4, $5)`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByID, err = db.SQLDB().PrepareContext(
		context.Background(),
		`SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE id = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByEmail, err = db.SQLDB().PrepareContext(
		context.Background(),
		`SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE email = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	return r, nil
}

func (r *UserRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtCreate)
	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByEmail)

	return firstErr
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.stmtCreate.ExecContext(ctx, u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return user.ErrEmailExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.stmtGetByID.QueryRowContext(ctx, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.stmtGetByEmail.QueryRowContext(ctx, email)
	return scanUser(row)
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var u user.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}
