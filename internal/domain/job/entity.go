package job

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied")
	ErrInvalidStatus       = errors.New("invalid application status")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

// Status is the lifecycle tag of the posting itself, distinct from the
// per-application status pipeline.
type Status string

const (
	StatusOpened Status = "opened"
	StatusClosed Status = "closed"
)

type Job struct {
	ID               uuid.UUID
	Title            string
	Field            string
	Position         string
	Salary           string
	WorkLocation     string
	Description      string
	DeadlineDate     time.Time
	NumberApplicants int
	Status           Status
	PostedBy         uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Application is one candidate's submission to a job. The CV payload is
// opaque to this package beyond the identity fields.
type Application struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	User      uuid.UUID
	Name      string
	CV        json.RawMessage
	Status    ApplicationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
