package usecase

import (
	"context"
	"encoding/json"

	"jobdesk/internal/domain/job"
	"jobdesk/internal/repository"

	"github.com/google/uuid"
)

type ApplicationUsecase interface {
	Apply(ctx context.Context, jobID uuid.UUID, caller Principal, cv json.RawMessage) error
	ListCandidates(ctx context.Context, jobID uuid.UUID, caller Principal) ([]job.Application, error)
	SetStatus(ctx context.Context, jobID, appID uuid.UUID, status string, caller Principal) error
}

type Applications struct {
	jobs repository.JobRepository
	apps repository.ApplicationRepository

	// strictPipeline restricts status changes to the forward pipeline
	// awaiting -> reviewing -> accepted/rejected.
	strictPipeline bool
}

func NewApplicationUsecase(jobs repository.JobRepository, apps repository.ApplicationRepository, strictPipeline bool) *Applications {
	return &Applications{jobs: jobs, apps: apps, strictPipeline: strictPipeline}
}

// Apply records one candidate's submission. Applying twice with the same
// user is rejected; the unique constraint backs this up under concurrency.
func (u *Applications) Apply(ctx context.Context, jobID uuid.UUID, caller Principal, cv json.RawMessage) error {
	if caller.ID == uuid.Nil {
		return ErrInvalidInput
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	applied, err := u.apps.ExistsByJobAndUser(ctx, j.ID, caller.ID)
	if err != nil {
		return ErrInternal
	}
	if applied {
		return job.ErrAlreadyApplied
	}

	return u.apps.Append(ctx, job.Application{
		ID:     uuid.New(),
		JobID:  j.ID,
		User:   caller.ID,
		Name:   caller.Name,
		CV:     cv,
		Status: job.ApplicationAwaiting,
	})
}

// ListCandidates returns a job's applications, restricted to the job owner.
func (u *Applications) ListCandidates(ctx context.Context, jobID uuid.UUID, caller Principal) ([]job.Application, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !caller.canManage(j.PostedBy) {
		return nil, ErrForbidden
	}

	return u.apps.ListByJob(ctx, j.ID)
}

// SetStatus moves one application to a new status, restricted to the job
// owner. Under the strict pipeline the move is a compare-and-set on the
// current status.
func (u *Applications) SetStatus(ctx context.Context, jobID, appID uuid.UUID, status string, caller Principal) error {
	next, err := job.ParseApplicationStatus(status)
	if err != nil {
		return err
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if !caller.canManage(j.PostedBy) {
		return ErrForbidden
	}

	if !u.strictPipeline {
		return u.apps.UpdateStatus(ctx, j.ID, appID, next)
	}

	current, err := u.apps.GetStatus(ctx, j.ID, appID)
	if err != nil {
		return err
	}
	if !current.CanTransition(next) {
		return job.ErrInvalidTransition
	}
	return u.apps.UpdateStatusFrom(ctx, j.ID, appID, current, next)
}
