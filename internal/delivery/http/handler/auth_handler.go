package handler

import (
	"errors"

	"jobdesk/internal/delivery/http/dto"
	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/pkg/response"
	"jobdesk/internal/usecase"
	ucauth "jobdesk/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	usr, access, refresh, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "registered", dto.NewAuth(usr, access, refresh))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	usr, access, refresh, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "logged in", dto.NewAuth(usr, access, refresh))
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerTokenFromHeader(c.Get("Authorization"))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	access, refresh, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRefreshTokenExpired):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", err)
		case errors.Is(err, usecase.ErrInvalidRefreshToken):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", err)
		case errors.Is(err, usecase.ErrUnauthorized):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.Success(c, fiber.StatusOK, "refreshed", dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh})
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
