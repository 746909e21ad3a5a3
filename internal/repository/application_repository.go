package repository

import (
	"context"
	"database/sql"
	"errors"

	"jobdesk/internal/database"
	"jobdesk/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationJobUserConstraint = "applications_job_user_unique"

// ApplicationRepository exposes the candidate list as atomic row
// operations. There is no fetch-whole-list/mutate/save path, so concurrent
// applies and status updates on the same job never race each other.
type ApplicationRepository interface {
	Append(ctx context.Context, a job.Application) error
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]job.Application, error)
	GetStatus(ctx context.Context, jobID, appID uuid.UUID) (job.ApplicationStatus, error)
	UpdateStatus(ctx context.Context, jobID, appID uuid.UUID, st job.ApplicationStatus) error
	UpdateStatusFrom(ctx context.Context, jobID, appID uuid.UUID, from, to job.ApplicationStatus) error
	ExistsByJobAndUser(ctx context.Context, jobID, userID uuid.UUID) (bool, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// Append inserts one application row. A duplicate (job, user) pair maps to
// job.ErrAlreadyApplied; a dangling job reference maps to job.ErrNotFound.
func (r *PostgresApplicationRepository) Append(ctx context.Context, a job.Application) error {
	cv := a.CV
	if len(cv) == 0 {
		cv = []byte(`{}`)
	}
	err := withWriteRetry(ctx, func() error {
		_, execErr := r.db.Exec(ctx,
			`INSERT INTO applications (id, job_id, user_id, name, cv, status)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			a.ID, a.JobID, a.User, a.Name, []byte(cv), string(a.Status),
		)
		return execErr
	})
	if err != nil {
		if isUniqueViolation(err, applicationJobUserConstraint) {
			return job.ErrAlreadyApplied
		}
		if isForeignKeyViolation(err) {
			return job.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]job.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, job_id, user_id, name, cv, status, created_at, updated_at
		 FROM applications
		 WHERE job_id = $1
		 ORDER BY seq ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Application, 0)
	for rows.Next() {
		var a job.Application
		var status string
		var cv []byte
		if err := rows.Scan(&a.ID, &a.JobID, &a.User, &a.Name, &cv, &status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.CV = cv
		a.Status = job.ApplicationStatus(status)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) GetStatus(ctx context.Context, jobID, appID uuid.UUID) (job.ApplicationStatus, error) {
	var status string
	row := r.db.QueryRow(ctx,
		`SELECT status FROM applications WHERE id = $1 AND job_id = $2`,
		appID, jobID,
	)
	if err := row.Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return "", job.ErrApplicationNotFound
		}
		return "", err
	}
	return job.ApplicationStatus(status), nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, jobID, appID uuid.UUID, st job.ApplicationStatus) error {
	return r.updateStatus(ctx, jobID, appID, nil, st)
}

// UpdateStatusFrom is the compare-and-set variant used by the strict
// pipeline: the row only changes if it still carries the expected status.
func (r *PostgresApplicationRepository) UpdateStatusFrom(ctx context.Context, jobID, appID uuid.UUID, from, to job.ApplicationStatus) error {
	return r.updateStatus(ctx, jobID, appID, &from, to)
}

func (r *PostgresApplicationRepository) updateStatus(ctx context.Context, jobID, appID uuid.UUID, from *job.ApplicationStatus, to job.ApplicationStatus) error {
	query := `UPDATE applications SET status = $1, updated_at = now() WHERE id = $2 AND job_id = $3`
	args := []any{string(to), appID, jobID}
	if from != nil {
		query += ` AND status = $4`
		args = append(args, string(*from))
	}

	var affected int64
	err := withWriteRetry(ctx, func() error {
		var execErr error
		affected, execErr = r.db.Exec(ctx, query, args...)
		return execErr
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the application is gone or (CAS path) its status moved
		// underneath us. Distinguish for the caller.
		if _, stErr := r.GetStatus(ctx, jobID, appID); stErr != nil {
			return stErr
		}
		return job.ErrInvalidTransition
	}
	return nil
}

func (r *PostgresApplicationRepository) ExistsByJobAndUser(ctx context.Context, jobID, userID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`,
		jobID, userID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
