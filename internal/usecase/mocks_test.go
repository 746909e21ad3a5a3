package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"jobdesk/internal/domain/job"
	"jobdesk/internal/repository"

	"github.com/google/uuid"
)

// fakeJobRepo is an in-memory JobRepository honoring the repository
// contract: ILIKE-style substring matching, sort modes, insertion-order
// tie breaking.
type fakeJobRepo struct {
	jobs []job.Job
	apps *fakeAppRepo
	err  error
}

func (f *fakeJobRepo) Create(_ context.Context, j job.Job) error {
	if f.err != nil {
		return f.err
	}
	j.CreatedAt = time.Now()
	j.UpdatedAt = j.CreatedAt
	f.jobs = append(f.jobs, j)
	return nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	if f.err != nil {
		return job.Job{}, f.err
	}
	for _, j := range f.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return job.Job{}, job.ErrNotFound
}

func (f *fakeJobRepo) UpdateFields(_ context.Context, id uuid.UUID, patch repository.JobPatch) (job.Job, error) {
	for i := range f.jobs {
		if f.jobs[i].ID != id {
			continue
		}
		j := &f.jobs[i]
		if patch.Title != nil {
			j.Title = *patch.Title
		}
		if patch.Field != nil {
			j.Field = *patch.Field
		}
		if patch.Position != nil {
			j.Position = *patch.Position
		}
		if patch.Salary != nil {
			j.Salary = *patch.Salary
		}
		if patch.WorkLocation != nil {
			j.WorkLocation = *patch.WorkLocation
		}
		if patch.Description != nil {
			j.Description = *patch.Description
		}
		if patch.DeadlineDate != nil {
			j.DeadlineDate = *patch.DeadlineDate
		}
		if patch.NumberApplicants != nil {
			j.NumberApplicants = *patch.NumberApplicants
		}
		return *j, nil
	}
	return job.Job{}, job.ErrNotFound
}

func matchesFilter(j job.Job, f repository.JobFilter) bool {
	contains := func(haystack, needle string) bool {
		if strings.TrimSpace(needle) == "" {
			return true
		}
		return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
	}
	return contains(j.Title, f.Title) && contains(j.Position, f.Position) && contains(j.Field, f.Field)
}

func (f *fakeJobRepo) filtered(filter repository.JobFilter) []job.Job {
	out := make([]job.Job, 0, len(f.jobs))
	for _, j := range f.jobs {
		if matchesFilter(j, filter) {
			out = append(out, j)
		}
	}
	switch filter.Sort {
	case repository.SortNew:
		sort.SliceStable(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	case repository.SortMostExpired:
		sort.SliceStable(out, func(a, b int) bool { return out[a].DeadlineDate.After(out[b].DeadlineDate) })
	}
	return out
}

func page(rows []job.Job, skip, limit int) []job.Job {
	if skip >= len(rows) {
		return nil
	}
	rows = rows[skip:]
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func (f *fakeJobRepo) Count(_ context.Context, filter repository.JobFilter) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.filtered(filter)), nil
}

func (f *fakeJobRepo) List(_ context.Context, filter repository.JobFilter, skip, limit int) ([]job.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	return page(f.filtered(filter), skip, limit), nil
}

func (f *fakeJobRepo) postedBy(userID uuid.UUID) []job.Job {
	out := make([]job.Job, 0)
	for _, j := range f.jobs {
		if j.PostedBy == userID {
			out = append(out, j)
		}
	}
	return out
}

func (f *fakeJobRepo) CountPostedBy(_ context.Context, userID uuid.UUID) (int, error) {
	return len(f.postedBy(userID)), nil
}

func (f *fakeJobRepo) ListPostedBy(_ context.Context, userID uuid.UUID, skip, limit int) ([]job.Job, error) {
	return page(f.postedBy(userID), skip, limit), nil
}

func (f *fakeJobRepo) appliedBy(userID uuid.UUID) []job.Job {
	out := make([]job.Job, 0)
	for _, j := range f.jobs {
		if f.apps == nil {
			break
		}
		for _, a := range f.apps.apps {
			if a.JobID == j.ID && a.User == userID {
				out = append(out, j)
				break
			}
		}
	}
	return out
}

func (f *fakeJobRepo) CountAppliedBy(_ context.Context, userID uuid.UUID) (int, error) {
	return len(f.appliedBy(userID)), nil
}

func (f *fakeJobRepo) ListAppliedBy(_ context.Context, userID uuid.UUID, skip, limit int) ([]job.Job, error) {
	return page(f.appliedBy(userID), skip, limit), nil
}

// fakeAppRepo mirrors the atomic-row semantics of the Postgres
// implementation, unique (job, user) pair included.
type fakeAppRepo struct {
	apps []job.Application
	err  error
}

func (f *fakeAppRepo) Append(_ context.Context, a job.Application) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.apps {
		if existing.JobID == a.JobID && existing.User == a.User {
			return job.ErrAlreadyApplied
		}
	}
	f.apps = append(f.apps, a)
	return nil
}

func (f *fakeAppRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]job.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]job.Application, 0)
	for _, a := range f.apps {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppRepo) GetStatus(_ context.Context, jobID, appID uuid.UUID) (job.ApplicationStatus, error) {
	for _, a := range f.apps {
		if a.JobID == jobID && a.ID == appID {
			return a.Status, nil
		}
	}
	return "", job.ErrApplicationNotFound
}

func (f *fakeAppRepo) UpdateStatus(_ context.Context, jobID, appID uuid.UUID, st job.ApplicationStatus) error {
	for i := range f.apps {
		if f.apps[i].JobID == jobID && f.apps[i].ID == appID {
			f.apps[i].Status = st
			return nil
		}
	}
	return job.ErrApplicationNotFound
}

func (f *fakeAppRepo) UpdateStatusFrom(_ context.Context, jobID, appID uuid.UUID, from, to job.ApplicationStatus) error {
	for i := range f.apps {
		if f.apps[i].JobID == jobID && f.apps[i].ID == appID {
			if f.apps[i].Status != from {
				return job.ErrInvalidTransition
			}
			f.apps[i].Status = to
			return nil
		}
	}
	return job.ErrApplicationNotFound
}

func (f *fakeAppRepo) ExistsByJobAndUser(_ context.Context, jobID, userID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, a := range f.apps {
		if a.JobID == jobID && a.User == userID {
			return true, nil
		}
	}
	return false, nil
}

// fakeCache records search-cache traffic.
type fakeCache struct {
	store       map[string][]byte
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = b
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.store, key)
	return nil
}

func (f *fakeCache) SetIfNotExists(_ context.Context, key string, _ string, _ time.Duration) (bool, error) {
	if _, ok := f.store[key]; ok {
		return false, nil
	}
	f.store[key] = []byte("1")
	return true, nil
}

func (f *fakeCache) InvalidateJobSearches(_ context.Context) error {
	f.invalidated++
	for k := range f.store {
		delete(f.store, k)
	}
	return nil
}
