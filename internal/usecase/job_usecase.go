package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"jobdesk/internal/domain/job"
	"jobdesk/internal/pkg/pagination"
	"jobdesk/internal/repository"

	"github.com/google/uuid"
)

type CreateJobInput struct {
	Title            string
	Field            string
	Position         string
	Salary           string
	WorkLocation     string
	Description      string
	DeadlineDate     time.Time
	NumberApplicants int
}

// JobDetail is the single-job view: the job plus whether the requesting
// user already applied.
type JobDetail struct {
	Job       job.Job
	IsApplied bool
}

// JobWithCandidates is the owner's view of a posting.
type JobWithCandidates struct {
	Job        job.Job
	Candidates []job.Application
}

type JobUsecase interface {
	Create(ctx context.Context, in CreateJobInput, postedBy uuid.UUID) (job.Job, error)
	Update(ctx context.Context, jobID uuid.UUID, patch repository.JobPatch, caller Principal) (job.Job, error)
	Detail(ctx context.Context, jobID, callerID uuid.UUID) (JobDetail, error)
	PostedBy(ctx context.Context, caller Principal, p pagination.Params) ([]JobWithCandidates, pagination.Meta, error)
	AppliedBy(ctx context.Context, callerID uuid.UUID, p pagination.Params) ([]job.Job, pagination.Meta, error)
}

type Jobs struct {
	jobs   repository.JobRepository
	apps   repository.ApplicationRepository
	cache  SearchCache
	logger *log.Logger
}

func NewJobUsecase(jobs repository.JobRepository, apps repository.ApplicationRepository, cache SearchCache, logger *log.Logger) *Jobs {
	return &Jobs{jobs: jobs, apps: apps, cache: cache, logger: logger}
}

func (u *Jobs) Create(ctx context.Context, in CreateJobInput, postedBy uuid.UUID) (job.Job, error) {
	if strings.TrimSpace(in.Title) == "" || postedBy == uuid.Nil {
		return job.Job{}, ErrInvalidInput
	}
	if in.NumberApplicants < 0 {
		return job.Job{}, ErrInvalidInput
	}

	j := job.Job{
		ID:               uuid.New(),
		Title:            strings.TrimSpace(in.Title),
		Field:            strings.TrimSpace(in.Field),
		Position:         strings.TrimSpace(in.Position),
		Salary:           strings.TrimSpace(in.Salary),
		WorkLocation:     strings.TrimSpace(in.WorkLocation),
		Description:      in.Description,
		DeadlineDate:     in.DeadlineDate,
		NumberApplicants: in.NumberApplicants,
		Status:           job.StatusOpened,
		PostedBy:         postedBy,
	}

	if err := u.jobs.Create(ctx, j); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return job.Job{}, err
		}
		return job.Job{}, ErrInternal
	}

	created, err := u.jobs.GetByID(ctx, j.ID)
	if err != nil {
		return job.Job{}, ErrInternal
	}

	u.invalidateSearches(ctx)
	return created, nil
}

func (u *Jobs) Update(ctx context.Context, jobID uuid.UUID, patch repository.JobPatch, caller Principal) (job.Job, error) {
	if patch.Empty() {
		return job.Job{}, ErrInvalidInput
	}
	if patch.NumberApplicants != nil && *patch.NumberApplicants < 0 {
		return job.Job{}, ErrInvalidInput
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return job.Job{}, ErrInvalidInput
	}

	current, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return job.Job{}, err
	}
	if !caller.canManage(current.PostedBy) {
		return job.Job{}, ErrForbidden
	}

	updated, err := u.jobs.UpdateFields(ctx, jobID, patch)
	if err != nil {
		return job.Job{}, err
	}

	u.invalidateSearches(ctx)
	return updated, nil
}

func (u *Jobs) Detail(ctx context.Context, jobID, callerID uuid.UUID) (JobDetail, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return JobDetail{}, err
	}

	applied := false
	if callerID != uuid.Nil {
		applied, err = u.apps.ExistsByJobAndUser(ctx, jobID, callerID)
		if err != nil {
			return JobDetail{}, ErrInternal
		}
	}

	return JobDetail{Job: j, IsApplied: applied}, nil
}

func (u *Jobs) PostedBy(ctx context.Context, caller Principal, p pagination.Params) ([]JobWithCandidates, pagination.Meta, error) {
	matching, err := u.jobs.CountPostedBy(ctx, caller.ID)
	if err != nil {
		return nil, pagination.Meta{}, ErrInternal
	}

	rows, err := u.jobs.ListPostedBy(ctx, caller.ID, p.Skip, p.Limit)
	if err != nil {
		return nil, pagination.Meta{}, ErrInternal
	}

	out := make([]JobWithCandidates, 0, len(rows))
	for _, j := range rows {
		apps, err := u.apps.ListByJob(ctx, j.ID)
		if err != nil {
			return nil, pagination.Meta{}, ErrInternal
		}
		out = append(out, JobWithCandidates{Job: j, Candidates: apps})
	}

	return out, p.Meta(matching, len(out)), nil
}

func (u *Jobs) AppliedBy(ctx context.Context, callerID uuid.UUID, p pagination.Params) ([]job.Job, pagination.Meta, error) {
	matching, err := u.jobs.CountAppliedBy(ctx, callerID)
	if err != nil {
		return nil, pagination.Meta{}, ErrInternal
	}

	rows, err := u.jobs.ListAppliedBy(ctx, callerID, p.Skip, p.Limit)
	if err != nil {
		return nil, pagination.Meta{}, ErrInternal
	}

	return rows, p.Meta(matching, len(rows)), nil
}

func (u *Jobs) invalidateSearches(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.InvalidateJobSearches(ctx); err != nil && u.logger != nil {
		u.logger.Printf("[Jobs] search cache invalidation failed: %v", err)
	}
}
