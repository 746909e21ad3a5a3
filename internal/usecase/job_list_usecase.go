package usecase

import (
	"context"
	"log"
	"time"

	"jobdesk/internal/domain/job"
	"jobdesk/internal/pkg/pagination"
	"jobdesk/internal/repository"
)

// JobSearchParams are the public search inputs. Empty fields impose no
// constraint; present fields are ANDed case-insensitive substring matches.
type JobSearchParams struct {
	Title    string
	Position string
	Field    string
	Sort     string
}

func (p JobSearchParams) hasFilter() bool {
	return p.Title != "" || p.Position != "" || p.Field != "" || p.Sort != ""
}

type JobListUsecase interface {
	ListJobs(ctx context.Context, p pagination.Params) ([]job.Job, pagination.Meta, error)
	Search(ctx context.Context, params JobSearchParams) ([]job.Job, error)
}

type JobList struct {
	jobs   repository.JobRepository
	cache  SearchCache
	logger *log.Logger
}

func NewJobListUsecase(jobs repository.JobRepository, cache SearchCache, logger *log.Logger) *JobList {
	return &JobList{jobs: jobs, cache: cache, logger: logger}
}

// ListJobs is the unfiltered paginated listing (admin surface).
func (u *JobList) ListJobs(ctx context.Context, p pagination.Params) ([]job.Job, pagination.Meta, error) {
	if p.Limit <= 0 || p.Skip < 0 {
		return nil, pagination.Meta{}, ErrInvalidInput
	}

	matching, err := u.jobs.Count(ctx, repository.JobFilter{})
	if err != nil {
		return nil, pagination.Meta{}, ErrInternal
	}

	rows, err := u.jobs.List(ctx, repository.JobFilter{}, p.Skip, p.Limit)
	if err != nil {
		return nil, pagination.Meta{}, ErrInternal
	}

	return rows, p.Meta(matching, len(rows)), nil
}

// Search returns the full ordered result set for the public job search,
// cache-aside with a short stampede lock on miss.
func (u *JobList) Search(ctx context.Context, params JobSearchParams) ([]job.Job, error) {
	switch params.Sort {
	case "", repository.SortNew, repository.SortMostExpired:
	default:
		return nil, ErrInvalidInput
	}

	cacheable := u.cache != nil && params.hasFilter()
	cacheKey := ""
	lockKey := ""
	lockAcquired := false

	if cacheable {
		cacheKey = JobsSearchCacheKey(params)
		lockKey = JobsSearchLockKey(cacheKey)

		var cached []job.Job
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			u.logf("[Jobs] Cache HIT: %s", cacheKey)
			return cached, nil
		}
		u.logf("[Jobs] Cache MISS: %s", cacheKey)

		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
		if err == nil && ok {
			lockAcquired = true
		} else if err == nil && !ok {
			// Another request is filling the cache; give it a moment.
			time.Sleep(300 * time.Millisecond)
			if hit, err2 := u.cache.GetJSON(ctx, cacheKey, &cached); err2 == nil && hit {
				u.logf("[Jobs] Cache HIT: %s", cacheKey)
				return cached, nil
			}
		}
	}

	f := repository.JobFilter{
		Title:    params.Title,
		Position: params.Position,
		Field:    params.Field,
		Sort:     params.Sort,
	}
	rows, err := u.jobs.List(ctx, f, 0, 0)
	if err != nil {
		// Release the lock so followers are not stuck waiting out its TTL.
		if lockAcquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
		return nil, ErrInternal
	}

	if cacheable {
		_ = u.cache.SetJSON(ctx, cacheKey, rows, 0)
		u.logf("[Jobs] Cache SET: %s", cacheKey)
		if lockAcquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
	}

	return rows, nil
}

func (u *JobList) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
