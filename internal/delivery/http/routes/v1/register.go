package v1

import (
	"log"

	"jobdesk/internal/config"
	"jobdesk/internal/database"
	"jobdesk/internal/delivery/http/handler"
	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/domain/user"
	"jobdesk/internal/infrastructure/cache"
	"jobdesk/internal/infrastructure/persistence/postgres"
	"jobdesk/internal/pkg/jwt"
	"jobdesk/internal/repository"
	"jobdesk/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, redis *cache.Redis, logger *log.Logger) error {
	if r == nil {
		return nil
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo, err := postgres.NewUserRepository(db)
	if err != nil {
		return err
	}
	jobRepo := repository.NewPostgresJobRepository(db)
	appRepo := repository.NewPostgresApplicationRepository(db)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	jobUC := usecase.NewJobUsecase(jobRepo, appRepo, redis, logger)
	listUC := usecase.NewJobListUsecase(jobRepo, redis, logger)
	appUC := usecase.NewApplicationUsecase(jobRepo, appRepo, cfg.Jobs.StrictStatusPipeline)

	authHandler := handler.NewAuthHandler(authUC)
	jobHandler := handler.NewJobHandler(jobUC, listUC)
	appHandler := handler.NewApplicationHandler(appUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	registerJobs(r, authMw, jobHandler, appHandler)
	return nil
}

func registerJobs(r fiber.Router, authMw *middleware.AuthMiddleware, jobs *handler.JobHandler, apps *handler.ApplicationHandler) {
	// Middleware rides on groups so it runs ahead of the route handlers.
	g := r.Group("/jobs", authMw.Middleware())

	admins := g.Group("", middleware.RequireRole(user.RoleAdmin))
	employers := g.Group("", middleware.RequireRole(user.RoleEmployer, user.RoleAdmin))
	candidates := g.Group("", middleware.RequireRole(user.RoleCandidate, user.RoleAdmin))
	applicants := g.Group("", middleware.RequireRole(user.RoleCandidate))

	// Fixed paths first so they are not swallowed by /:id.
	g.Get("/search", jobs.HandleSearch)
	employers.Get("/posted/me", jobs.HandlePostedByMe)
	candidates.Get("/applied/me", jobs.HandleAppliedByMe)

	admins.Get("/", jobs.HandleList)
	employers.Post("/", jobs.HandleCreate)

	g.Get("/:id", jobs.HandleDetail)
	employers.Put("/:id", jobs.HandleUpdate)

	applicants.Post("/:id/apply", apps.HandleApply)
	employers.Get("/:id/candidates", apps.HandleListCandidates)
	employers.Patch("/:id/candidates/:appID", apps.HandleSetStatus)
}
