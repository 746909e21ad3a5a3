package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobdesk/internal/domain/job"
	"jobdesk/internal/domain/user"
	"jobdesk/internal/pkg/pagination"
	"jobdesk/internal/repository"

	"github.com/google/uuid"
)

func TestCreateJob_Defaults(t *testing.T) {
	apps := &fakeAppRepo{}
	jobs := &fakeJobRepo{apps: apps}
	cache := newFakeCache()
	uc := NewJobUsecase(jobs, apps, cache, nil)

	owner := uuid.New()
	created, err := uc.Create(context.Background(), CreateJobInput{
		Title:        "Platform Engineer",
		Field:        "Engineering",
		DeadlineDate: time.Now().Add(30 * 24 * time.Hour),
	}, owner)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.Status != job.StatusOpened {
		t.Fatalf("expected opened status, got %s", created.Status)
	}
	if created.PostedBy != owner {
		t.Fatalf("postedBy not set from creator")
	}
	candidates, _ := apps.ListByJob(context.Background(), created.ID)
	if len(candidates) != 0 {
		t.Fatalf("expected empty candidate list")
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected search cache invalidation, got %d", cache.invalidated)
	}
}

func TestCreateJob_RequiresTitleAndOwner(t *testing.T) {
	uc := NewJobUsecase(&fakeJobRepo{}, &fakeAppRepo{}, nil, nil)

	if _, err := uc.Create(context.Background(), CreateJobInput{}, uuid.New()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing title, got %v", err)
	}
	if _, err := uc.Create(context.Background(), CreateJobInput{Title: "x"}, uuid.Nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil owner, got %v", err)
	}
}

func TestUpdateJob_OwnerOnly(t *testing.T) {
	owner := uuid.New()
	j, jobs, apps := seededJob(owner)
	uc := NewJobUsecase(jobs, apps, nil, nil)

	title := "Senior Backend Engineer"
	patch := repository.JobPatch{Title: &title}

	if _, err := uc.Update(context.Background(), j.ID, patch, Principal{ID: uuid.New(), Role: user.RoleEmployer}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := uc.Update(context.Background(), j.ID, patch, Principal{ID: owner, Role: user.RoleEmployer})
	if err != nil {
		t.Fatalf("Update as owner: %v", err)
	}
	if updated.Title != title {
		t.Fatalf("title not updated: %s", updated.Title)
	}
	if updated.PostedBy != owner || updated.Status != job.StatusOpened {
		t.Fatalf("immutable fields changed: %+v", updated)
	}
}

func TestUpdateJob_EmptyPatch(t *testing.T) {
	owner := uuid.New()
	j, jobs, apps := seededJob(owner)
	uc := NewJobUsecase(jobs, apps, nil, nil)

	if _, err := uc.Update(context.Background(), j.ID, repository.JobPatch{}, Principal{ID: owner}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDetail_IsApplied(t *testing.T) {
	owner := uuid.New()
	j, jobs, apps := seededJob(owner)
	uc := NewJobUsecase(jobs, apps, nil, nil)

	applicant := uuid.New()
	if err := apps.Append(context.Background(), job.Application{
		ID: uuid.New(), JobID: j.ID, User: applicant, Status: job.ApplicationAwaiting,
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	d, err := uc.Detail(context.Background(), j.ID, applicant)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if !d.IsApplied {
		t.Fatal("expected isApplied=true for the applicant")
	}

	d, err = uc.Detail(context.Background(), j.ID, uuid.New())
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if d.IsApplied {
		t.Fatal("expected isApplied=false for a stranger")
	}
}

func TestDetail_NotFound(t *testing.T) {
	uc := NewJobUsecase(&fakeJobRepo{}, &fakeAppRepo{}, nil, nil)
	if _, err := uc.Detail(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostedBy_IncludesCandidates(t *testing.T) {
	owner := uuid.New()
	j, jobs, apps := seededJob(owner)
	uc := NewJobUsecase(jobs, apps, nil, nil)

	if err := apps.Append(context.Background(), job.Application{
		ID: uuid.New(), JobID: j.ID, User: uuid.New(), Status: job.ApplicationAwaiting,
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	rows, meta, err := uc.PostedBy(context.Background(), Principal{ID: owner}, pagination.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("PostedBy: %v", err)
	}
	if len(rows) != 1 || len(rows[0].Candidates) != 1 {
		t.Fatalf("expected 1 job with 1 candidate, got %+v", rows)
	}
	if meta.MatchingResults != 1 || meta.ReturnedResults != 1 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestAppliedBy_PaginatesJobs(t *testing.T) {
	candidate := uuid.New()
	apps := &fakeAppRepo{}
	jobs := &fakeJobRepo{apps: apps}
	for i := 0; i < 3; i++ {
		j := job.Job{ID: uuid.New(), Title: "Role", PostedBy: uuid.New(), Status: job.StatusOpened}
		jobs.jobs = append(jobs.jobs, j)
		if i < 2 {
			_ = apps.Append(context.Background(), job.Application{ID: uuid.New(), JobID: j.ID, User: candidate})
		}
	}

	uc := NewJobUsecase(jobs, apps, nil, nil)
	rows, meta, err := uc.AppliedBy(context.Background(), candidate, pagination.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("AppliedBy: %v", err)
	}
	if len(rows) != 2 || meta.MatchingResults != 2 {
		t.Fatalf("expected 2 applied jobs, got %d (meta %+v)", len(rows), meta)
	}
}
