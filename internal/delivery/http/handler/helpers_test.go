package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/domain/job"
	"jobdesk/internal/domain/user"
	"jobdesk/internal/pkg/jwt"
	"jobdesk/internal/pkg/pagination"
	"jobdesk/internal/repository"
	"jobdesk/internal/usecase"
	ucauth "jobdesk/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status     string           `json:"status"`
	Message    string           `json:"message"`
	Data       json.RawMessage  `json:"data"`
	Pagination *pagination.Meta `json:"pagination"`
}

type fakeJobUsecase struct {
	createFn  func(ctx context.Context, in usecase.CreateJobInput, postedBy uuid.UUID) (job.Job, error)
	updateFn  func(ctx context.Context, jobID uuid.UUID, patch repository.JobPatch, caller usecase.Principal) (job.Job, error)
	detailFn  func(ctx context.Context, jobID, callerID uuid.UUID) (usecase.JobDetail, error)
	postedFn  func(ctx context.Context, caller usecase.Principal, p pagination.Params) ([]usecase.JobWithCandidates, pagination.Meta, error)
	appliedFn func(ctx context.Context, callerID uuid.UUID, p pagination.Params) ([]job.Job, pagination.Meta, error)
}

func (f *fakeJobUsecase) Create(ctx context.Context, in usecase.CreateJobInput, postedBy uuid.UUID) (job.Job, error) {
	return f.createFn(ctx, in, postedBy)
}

func (f *fakeJobUsecase) Update(ctx context.Context, jobID uuid.UUID, patch repository.JobPatch, caller usecase.Principal) (job.Job, error) {
	return f.updateFn(ctx, jobID, patch, caller)
}

func (f *fakeJobUsecase) Detail(ctx context.Context, jobID, callerID uuid.UUID) (usecase.JobDetail, error) {
	return f.detailFn(ctx, jobID, callerID)
}

func (f *fakeJobUsecase) PostedBy(ctx context.Context, caller usecase.Principal, p pagination.Params) ([]usecase.JobWithCandidates, pagination.Meta, error) {
	return f.postedFn(ctx, caller, p)
}

func (f *fakeJobUsecase) AppliedBy(ctx context.Context, callerID uuid.UUID, p pagination.Params) ([]job.Job, pagination.Meta, error) {
	return f.appliedFn(ctx, callerID, p)
}

type fakeJobListUsecase struct {
	listFn   func(ctx context.Context, p pagination.Params) ([]job.Job, pagination.Meta, error)
	searchFn func(ctx context.Context, params usecase.JobSearchParams) ([]job.Job, error)
}

func (f *fakeJobListUsecase) ListJobs(ctx context.Context, p pagination.Params) ([]job.Job, pagination.Meta, error) {
	return f.listFn(ctx, p)
}

func (f *fakeJobListUsecase) Search(ctx context.Context, params usecase.JobSearchParams) ([]job.Job, error) {
	return f.searchFn(ctx, params)
}

type fakeApplicationUsecase struct {
	applyFn      func(ctx context.Context, jobID uuid.UUID, caller usecase.Principal, cv json.RawMessage) error
	candidatesFn func(ctx context.Context, jobID uuid.UUID, caller usecase.Principal) ([]job.Application, error)
	setStatusFn  func(ctx context.Context, jobID, appID uuid.UUID, status string, caller usecase.Principal) error
}

func (f *fakeApplicationUsecase) Apply(ctx context.Context, jobID uuid.UUID, caller usecase.Principal, cv json.RawMessage) error {
	return f.applyFn(ctx, jobID, caller, cv)
}

func (f *fakeApplicationUsecase) ListCandidates(ctx context.Context, jobID uuid.UUID, caller usecase.Principal) ([]job.Application, error) {
	return f.candidatesFn(ctx, jobID, caller)
}

func (f *fakeApplicationUsecase) SetStatus(ctx context.Context, jobID, appID uuid.UUID, status string, caller usecase.Principal) error {
	return f.setStatusFn(ctx, jobID, appID, status, caller)
}

type fakeAuthUsecase struct {
	registerFn func(ctx context.Context, in ucauth.RegisterInput) (user.User, string, string, error)
	loginFn    func(ctx context.Context, in ucauth.LoginInput) (user.User, string, string, error)
	refreshFn  func(ctx context.Context, refreshToken string) (string, string, error)
}

func (f *fakeAuthUsecase) Register(ctx context.Context, in ucauth.RegisterInput) (user.User, string, string, error) {
	return f.registerFn(ctx, in)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, string, error) {
	return f.loginFn(ctx, in)
}

func (f *fakeAuthUsecase) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	return f.refreshFn(ctx, refreshToken)
}

func testJWT() jwt.Service {
	return jwt.NewHMACService("test-access-secret", "test-refresh-secret", time.Hour, time.Hour)
}

// newTestApp wires the job routes exactly as the v1 registrar does, with
// fake usecases behind real middleware.
func newTestApp(t *testing.T, jobs usecase.JobUsecase, list usecase.JobListUsecase, apps usecase.ApplicationUsecase) (*fiber.App, jwt.Service) {
	t.Helper()

	jwtSvc := testJWT()
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware().Middleware())

	jobHandler := NewJobHandler(jobs, list)
	appHandler := NewApplicationHandler(apps)

	g := app.Group("/api/v1/jobs", authMw.Middleware())

	admins := g.Group("", middleware.RequireRole(user.RoleAdmin))
	employers := g.Group("", middleware.RequireRole(user.RoleEmployer, user.RoleAdmin))
	candidates := g.Group("", middleware.RequireRole(user.RoleCandidate, user.RoleAdmin))
	applicants := g.Group("", middleware.RequireRole(user.RoleCandidate))

	g.Get("/search", jobHandler.HandleSearch)
	employers.Get("/posted/me", jobHandler.HandlePostedByMe)
	candidates.Get("/applied/me", jobHandler.HandleAppliedByMe)
	admins.Get("/", jobHandler.HandleList)
	employers.Post("/", jobHandler.HandleCreate)
	g.Get("/:id", jobHandler.HandleDetail)
	employers.Put("/:id", jobHandler.HandleUpdate)
	applicants.Post("/:id/apply", appHandler.HandleApply)
	employers.Get("/:id/candidates", appHandler.HandleListCandidates)
	employers.Patch("/:id/candidates/:appID", appHandler.HandleSetStatus)

	return app, jwtSvc
}

func accessToken(t *testing.T, jwtSvc jwt.Service, id uuid.UUID, name string, role user.Role) string {
	t.Helper()
	tok, err := jwtSvc.GenerateAccessToken(id, name, string(role))
	require.NoError(t, err)
	return tok
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()

	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	return res.StatusCode, env
}

func sampleJob(title string) job.Job {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return job.Job{
		ID:               uuid.New(),
		Title:            title,
		Field:            "Engineering",
		Position:         "Backend Engineer",
		Salary:           "10M IDR",
		WorkLocation:     "Remote",
		Description:      "Build services",
		DeadlineDate:     now.AddDate(0, 1, 0),
		NumberApplicants: 3,
		Status:           job.StatusOpened,
		PostedBy:         uuid.New(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
