package seeder

import (
	"context"
	"time"

	"jobdesk/internal/database"

	"github.com/google/uuid"
)

// DemoJobsSeeder inserts a handful of open postings for local development.
// It is idempotent: an existing posting with the same title is left alone.
type DemoJobsSeeder struct{}

func (DemoJobsSeeder) Name() string { return "demo_jobs" }

func (DemoJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := ensureTableColumns(ctx, db, "jobs",
		"id", "title", "field", "position", "salary", "work_location",
		"description", "deadline_date", "number_applicants", "status",
		"posted_by", "created_at", "updated_at",
	); err != nil {
		return err
	}

	poster, ok, err := findEmployerID(ctx, db)
	if err != nil {
		return err
	}
	if !ok {
		poster = uuid.New()
		_, err = db.Exec(ctx,
			`INSERT INTO users (id, name, email, password_hash, role) VALUES ($1, $2, $3, '', 'employer')`,
			poster, "Demo Employer", "employer@jobdesk.local",
		)
		if err != nil {
			return err
		}
	}

	deadline := time.Now().UTC().AddDate(0, 1, 0)

	items := []struct {
		Title        string
		Field        string
		Position     string
		Salary       string
		WorkLocation string
		Description  string
	}{
		{
			Title:        "Backend Engineer (Go)",
			Field:        "Engineering",
			Position:     "Backend Engineer",
			Salary:       "8-12M IDR",
			WorkLocation: "Jakarta, ID",
			Description:  "Build and maintain Go services, REST APIs, and PostgreSQL-backed systems.",
		},
		{
			Title:        "Fullstack Engineer (React + Go)",
			Field:        "Engineering",
			Position:     "Fullstack Engineer",
			Salary:       "9-14M IDR",
			WorkLocation: "Bandung, ID",
			Description:  "Develop web apps with React/TypeScript and backend services in Go.",
		},
		{
			Title:        "Data Engineer",
			Field:        "Data",
			Position:     "Data Engineer",
			Salary:       "10-15M IDR",
			WorkLocation: "Surabaya, ID",
			Description:  "Build data pipelines, manage warehouses, and optimize PostgreSQL for analytics.",
		},
		{
			Title:        "QA Automation Engineer",
			Field:        "Quality",
			Position:     "QA Engineer",
			Salary:       "7-10M IDR",
			WorkLocation: "Remote",
			Description:  "Write automated tests for APIs and web apps, integrate tests into CI pipelines.",
		},
	}

	for _, it := range items {
		var existing int
		if err := db.QueryRow(ctx, `SELECT COUNT(1) FROM jobs WHERE title = $1`, it.Title).Scan(&existing); err != nil {
			return err
		}
		if existing > 0 {
			continue
		}

		_, err := db.Exec(ctx,
			`INSERT INTO jobs (id, title, field, position, salary, work_location, description, deadline_date, number_applicants, status, posted_by)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 'opened', $9)`,
			uuid.New(), it.Title, it.Field, it.Position, it.Salary, it.WorkLocation, it.Description, deadline, poster,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func findEmployerID(ctx context.Context, db database.DB) (uuid.UUID, bool, error) {
	rows, err := db.Query(ctx, `SELECT id FROM users WHERE role = 'employer' ORDER BY created_at LIMIT 1`)
	if err != nil {
		return uuid.Nil, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return uuid.Nil, false, rows.Err()
	}
	var id uuid.UUID
	if err := rows.Scan(&id); err != nil {
		return uuid.Nil, false, err
	}
	return id, true, nil
}
