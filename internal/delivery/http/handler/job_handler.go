package handler

import (
	"errors"
	"time"

	"jobdesk/internal/delivery/http/dto"
	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/domain/job"
	"jobdesk/internal/pkg/pagination"
	"jobdesk/internal/pkg/response"
	"jobdesk/internal/repository"
	"jobdesk/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	jobs usecase.JobUsecase
	list usecase.JobListUsecase
}

type createJobRequest struct {
	Title            string    `json:"title"`
	Field            string    `json:"field"`
	Position         string    `json:"position"`
	Salary           string    `json:"salary"`
	WorkLocation     string    `json:"workLocation"`
	Description      string    `json:"description"`
	DeadlineDate     time.Time `json:"deadlineDate"`
	NumberApplicants int       `json:"numberApplicants"`
}

type updateJobRequest struct {
	Title            *string    `json:"title"`
	Field            *string    `json:"field"`
	Position         *string    `json:"position"`
	Salary           *string    `json:"salary"`
	WorkLocation     *string    `json:"workLocation"`
	Description      *string    `json:"description"`
	DeadlineDate     *time.Time `json:"deadlineDate"`
	NumberApplicants *int       `json:"numberApplicants"`
}

func NewJobHandler(jobs usecase.JobUsecase, list usecase.JobListUsecase) *JobHandler {
	return &JobHandler{jobs: jobs, list: list}
}

// HandleList is the unfiltered paginated listing, admin only.
func (h *JobHandler) HandleList(c fiber.Ctx) error {
	p, err := pagination.Parse(func(key string) string { return c.Query(key) })
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	rows, meta, err := h.list.ListJobs(c.Context(), p)
	if err != nil {
		return mapJobsError(err)
	}

	return response.SuccessPaged(c, fiber.StatusOK, dto.NewPublicJobs(rows), meta)
}

// HandleSearch is the public filtered search. The full ordered result set
// is returned, not a page.
func (h *JobHandler) HandleSearch(c fiber.Ctx) error {
	rows, err := h.list.Search(c.Context(), usecase.JobSearchParams{
		Title:    c.Query("title"),
		Position: c.Query("position"),
		Field:    c.Query("field"),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		return mapJobsError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", dto.NewPublicJobs(rows))
}

func (h *JobHandler) HandleDetail(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.jobs.Detail(c.Context(), jobID, p.ID)
	if err != nil {
		return mapJobsError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", dto.NewJobDetail(detail))
}

func (h *JobHandler) HandleCreate(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	created, err := h.jobs.Create(c.Context(), usecase.CreateJobInput{
		Title:            req.Title,
		Field:            req.Field,
		Position:         req.Position,
		Salary:           req.Salary,
		WorkLocation:     req.WorkLocation,
		Description:      req.Description,
		DeadlineDate:     req.DeadlineDate,
		NumberApplicants: req.NumberApplicants,
	}, p.ID)
	if err != nil {
		return mapJobsError(err)
	}

	return response.Success(c, fiber.StatusCreated, "job created", dto.NewOwnerJob(created, nil))
}

func (h *JobHandler) HandleUpdate(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req updateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	updated, err := h.jobs.Update(c.Context(), jobID, repository.JobPatch{
		Title:            req.Title,
		Field:            req.Field,
		Position:         req.Position,
		Salary:           req.Salary,
		WorkLocation:     req.WorkLocation,
		Description:      req.Description,
		DeadlineDate:     req.DeadlineDate,
		NumberApplicants: req.NumberApplicants,
	}, p)
	if err != nil {
		return mapJobsError(err)
	}

	return response.Success(c, fiber.StatusOK, "job updated", dto.NewOwnerJob(updated, nil))
}

// HandlePostedByMe returns the caller's own postings with their candidate
// lists.
func (h *JobHandler) HandlePostedByMe(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	page, err := pagination.Parse(func(key string) string { return c.Query(key) })
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	rows, meta, err := h.jobs.PostedBy(c.Context(), p, page)
	if err != nil {
		return mapJobsError(err)
	}

	out := make([]dto.OwnerJobResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NewOwnerJob(r.Job, r.Candidates))
	}

	return response.SuccessPaged(c, fiber.StatusOK, out, meta)
}

func (h *JobHandler) HandleAppliedByMe(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	page, err := pagination.Parse(func(key string) string { return c.Query(key) })
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	rows, meta, err := h.jobs.AppliedBy(c.Context(), p.ID, page)
	if err != nil {
		return mapJobsError(err)
	}

	return response.SuccessPaged(c, fiber.StatusOK, dto.NewPublicJobs(rows), meta)
}

func parseIDParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", err)
	}
	return id, nil
}

func mapJobsError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, job.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", err)
	case errors.Is(err, job.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", err)
	case errors.Is(err, job.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "Already applied", err)
	case errors.Is(err, job.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid application status", err)
	case errors.Is(err, job.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid status transition", err)
	case errors.Is(err, repository.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Conflict", err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
