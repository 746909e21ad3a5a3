package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobdesk/internal/database"
	"jobdesk/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	SortNew         = "new"
	SortMostExpired = "most-expired"
)

// JobFilter holds the optional search predicates. Present fields become
// case-insensitive substring matches, ANDed together.
type JobFilter struct {
	Title    string
	Position string
	Field    string
	Sort     string
}

// JobPatch carries the mutable job fields. Nil pointers leave the column
// untouched; status and posted_by are not reachable through this type.
type JobPatch struct {
	Title            *string
	Field            *string
	Position         *string
	Salary           *string
	WorkLocation     *string
	Description      *string
	DeadlineDate     *time.Time
	NumberApplicants *int
}

func (p JobPatch) Empty() bool {
	return p.Title == nil && p.Field == nil && p.Position == nil &&
		p.Salary == nil && p.WorkLocation == nil && p.Description == nil &&
		p.DeadlineDate == nil && p.NumberApplicants == nil
}

type JobRepository interface {
	Create(ctx context.Context, j job.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	UpdateFields(ctx context.Context, id uuid.UUID, patch JobPatch) (job.Job, error)

	Count(ctx context.Context, f JobFilter) (int, error)
	List(ctx context.Context, f JobFilter, skip, limit int) ([]job.Job, error)

	CountPostedBy(ctx context.Context, userID uuid.UUID) (int, error)
	ListPostedBy(ctx context.Context, userID uuid.UUID, skip, limit int) ([]job.Job, error)

	CountAppliedBy(ctx context.Context, userID uuid.UUID) (int, error)
	ListAppliedBy(ctx context.Context, userID uuid.UUID, skip, limit int) ([]job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, title, field, position, salary, work_location, description,
	deadline_date, number_applicants, status, posted_by, created_at, updated_at`

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	return withWriteRetry(ctx, func() error {
		_, err := r.db.Exec(ctx,
			`INSERT INTO jobs (id, title, field, position, salary, work_location, description,
				deadline_date, number_applicants, status, posted_by)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			j.ID, j.Title, j.Field, j.Position, j.Salary, j.WorkLocation, j.Description,
			nullableTime(j.DeadlineDate), j.NumberApplicants, string(j.Status), j.PostedBy,
		)
		return err
	})
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *PostgresJobRepository) UpdateFields(ctx context.Context, id uuid.UUID, patch JobPatch) (job.Job, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	sets := make([]string, 0, 9)
	args := make([]any, 0, 9)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Field != nil {
		add("field", *patch.Field)
	}
	if patch.Position != nil {
		add("position", *patch.Position)
	}
	if patch.Salary != nil {
		add("salary", *patch.Salary)
	}
	if patch.WorkLocation != nil {
		add("work_location", *patch.WorkLocation)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.DeadlineDate != nil {
		add("deadline_date", *patch.DeadlineDate)
	}
	if patch.NumberApplicants != nil {
		add("number_applicants", *patch.NumberApplicants)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE jobs SET %s WHERE id = $%d RETURNING `+jobColumns,
		strings.Join(sets, ", "), len(args),
	)

	var updated job.Job
	err := withWriteRetry(ctx, func() error {
		var scanErr error
		updated, scanErr = scanJob(r.db.QueryRow(ctx, query, args...))
		return scanErr
	})
	return updated, err
}

func (r *PostgresJobRepository) Count(ctx context.Context, f JobFilter) (int, error) {
	where, args := buildJobFilter(f, nil)
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+where, args...)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresJobRepository) List(ctx context.Context, f JobFilter, skip, limit int) ([]job.Job, error) {
	where, args := buildJobFilter(f, nil)
	query := `SELECT ` + jobColumns + ` FROM jobs` + where + orderClause(f.Sort)
	query, args = appendPage(query, args, skip, limit)
	return r.queryJobs(ctx, query, args...)
}

func (r *PostgresJobRepository) CountPostedBy(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE posted_by = $1`, userID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresJobRepository) ListPostedBy(ctx context.Context, userID uuid.UUID, skip, limit int) ([]job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE posted_by = $1 ORDER BY seq ASC`
	args := []any{userID}
	query, args = appendPage(query, args, skip, limit)
	return r.queryJobs(ctx, query, args...)
}

func (r *PostgresJobRepository) CountAppliedBy(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs j
		 WHERE EXISTS (SELECT 1 FROM applications a WHERE a.job_id = j.id AND a.user_id = $1)`,
		userID,
	)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresJobRepository) ListAppliedBy(ctx context.Context, userID uuid.UUID, skip, limit int) ([]job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j
		 WHERE EXISTS (SELECT 1 FROM applications a WHERE a.job_id = j.id AND a.user_id = $1)
		 ORDER BY j.seq ASC`
	args := []any{userID}
	query, args = appendPage(query, args, skip, limit)
	return r.queryJobs(ctx, query, args...)
}

func (r *PostgresJobRepository) queryJobs(ctx context.Context, query string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJobFromRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func buildJobFilter(f JobFilter, args []any) (string, []any) {
	conds := make([]string, 0, 3)
	like := func(col, v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		args = append(args, "%"+v+"%")
		conds = append(conds, fmt.Sprintf("%s ILIKE $%d", col, len(args)))
	}

	like("title", f.Title)
	like("position", f.Position)
	like("field", f.Field)

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause maps the sort mode to SQL. seq is the insertion-order tie
// breaker in every mode.
func orderClause(sort string) string {
	switch sort {
	case SortNew:
		return " ORDER BY created_at DESC, seq ASC"
	case SortMostExpired:
		return " ORDER BY deadline_date DESC NULLS LAST, seq ASC"
	default:
		return " ORDER BY seq ASC"
	}
}

func appendPage(query string, args []any, skip, limit int) (string, []any) {
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if skip > 0 {
		args = append(args, skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (job.Job, error) {
	j, err := scanJobFromRows(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func scanJobFromRows(row scanner) (job.Job, error) {
	var j job.Job
	var status string
	var deadline sql.NullTime
	if err := row.Scan(
		&j.ID, &j.Title, &j.Field, &j.Position, &j.Salary, &j.WorkLocation,
		&j.Description, &deadline, &j.NumberApplicants, &status, &j.PostedBy,
		&j.CreatedAt, &j.UpdatedAt,
	); err != nil {
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	if deadline.Valid {
		j.DeadlineDate = deadline.Time
	}
	return j, nil
}
