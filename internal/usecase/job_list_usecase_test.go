package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"jobdesk/internal/domain/job"
	"jobdesk/internal/pkg/pagination"

	"github.com/google/uuid"
)

func manyJobs(n int) *fakeJobRepo {
	repo := &fakeJobRepo{}
	base := time.Now()
	for i := 0; i < n; i++ {
		repo.jobs = append(repo.jobs, job.Job{
			ID:        uuid.New(),
			Title:     fmt.Sprintf("Job %02d", i),
			PostedBy:  uuid.New(),
			Status:    job.StatusOpened,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return repo
}

func TestListJobs_PaginationMetadata(t *testing.T) {
	uc := NewJobListUsecase(manyJobs(23), nil, nil)

	p := pagination.Params{Page: 3, Skip: 20, Limit: 10}
	rows, meta, err := uc.ListJobs(context.Background(), p)
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", meta.TotalPages)
	}
	if len(rows) != 3 || meta.ReturnedResults != 3 {
		t.Fatalf("expected 3 rows on the last page, got %d", len(rows))
	}
	if meta.MatchingResults != 23 || meta.CurrentPage != 3 || meta.PageSize != 10 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestListJobs_InvalidParams(t *testing.T) {
	uc := NewJobListUsecase(manyJobs(1), nil, nil)
	if _, _, err := uc.ListJobs(context.Background(), pagination.Params{Limit: 0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	repo := &fakeJobRepo{jobs: []job.Job{
		{ID: uuid.New(), Title: "Software Engineer"},
		{ID: uuid.New(), Title: "ENGINEER II"},
		{ID: uuid.New(), Title: "Product Designer"},
	}}
	uc := NewJobListUsecase(repo, nil, nil)

	rows, err := uc.Search(context.Background(), JobSearchParams{Title: "engineer"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(rows))
	}
}

func TestSearch_MostExpiredOrdering(t *testing.T) {
	base := time.Now()
	first := job.Job{ID: uuid.New(), Title: "A", DeadlineDate: base.Add(48 * time.Hour)}
	second := job.Job{ID: uuid.New(), Title: "B", DeadlineDate: base.Add(72 * time.Hour)}
	third := job.Job{ID: uuid.New(), Title: "C", DeadlineDate: base.Add(48 * time.Hour)}
	uc := NewJobListUsecase(&fakeJobRepo{jobs: []job.Job{first, second, third}}, nil, nil)

	rows, err := uc.Search(context.Background(), JobSearchParams{Sort: "most-expired"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if rows[0].ID != second.ID {
		t.Fatalf("expected furthest deadline first")
	}
	// Equal deadlines keep insertion order.
	if rows[1].ID != first.ID || rows[2].ID != third.ID {
		t.Fatalf("tie not broken by original order: %v then %v", rows[1].Title, rows[2].Title)
	}
}

func TestSearch_RejectsUnknownSort(t *testing.T) {
	uc := NewJobListUsecase(manyJobs(1), nil, nil)
	if _, err := uc.Search(context.Background(), JobSearchParams{Sort: "oldest"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSearch_CacheRoundTrip(t *testing.T) {
	repo := &fakeJobRepo{jobs: []job.Job{{ID: uuid.New(), Title: "Software Engineer"}}}
	cache := newFakeCache()
	uc := NewJobListUsecase(repo, cache, nil)

	params := JobSearchParams{Title: "engineer"}
	if _, err := uc.Search(context.Background(), params); err != nil {
		t.Fatalf("first Search: %v", err)
	}

	// Second call is served from cache even if the repo now errors.
	repo.err = errors.New("db down")
	rows, err := uc.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("cached Search: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected cached row, got %d", len(rows))
	}
}

func TestSearch_RepoErrorReleasesLock(t *testing.T) {
	repo := &fakeJobRepo{err: errors.New("db down")}
	cache := newFakeCache()
	uc := NewJobListUsecase(repo, cache, nil)

	params := JobSearchParams{Title: "engineer"}
	if _, err := uc.Search(context.Background(), params); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}

	lockKey := JobsSearchLockKey(JobsSearchCacheKey(params))
	if _, held := cache.store[lockKey]; held {
		t.Fatalf("stampede lock %s still held after repo failure", lockKey)
	}
}

func TestSearch_UnfilteredBypassesCache(t *testing.T) {
	repo := &fakeJobRepo{jobs: []job.Job{{ID: uuid.New(), Title: "Any"}}}
	cache := newFakeCache()
	uc := NewJobListUsecase(repo, cache, nil)

	if _, err := uc.Search(context.Background(), JobSearchParams{}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(cache.store) != 0 {
		t.Fatalf("unfiltered search should not populate the cache")
	}
}
