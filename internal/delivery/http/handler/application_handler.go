package handler

import (
	"encoding/json"

	"jobdesk/internal/delivery/http/dto"
	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/pkg/response"
	"jobdesk/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

type applyRequest struct {
	CV json.RawMessage `json:"cv"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) HandleApply(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req applyRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
		}
	}

	if err := h.uc.Apply(c.Context(), jobID, p, req.CV); err != nil {
		return mapJobsError(err)
	}

	return response.Success(c, fiber.StatusCreated, "application submitted", nil)
}

func (h *ApplicationHandler) HandleListCandidates(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	apps, err := h.uc.ListCandidates(c.Context(), jobID, p)
	if err != nil {
		return mapJobsError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", dto.NewApplications(apps))
}

func (h *ApplicationHandler) HandleSetStatus(c fiber.Ctx) error {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	appID, err := parseIDParam(c, "appID")
	if err != nil {
		return err
	}

	var req setStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	if err := h.uc.SetStatus(c.Context(), jobID, appID, req.Status, p); err != nil {
		return mapJobsError(err)
	}

	return response.Success(c, fiber.StatusOK, "status updated", nil)
}
