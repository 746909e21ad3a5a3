package middleware

import (
	"errors"
	"strings"

	"jobdesk/internal/domain/user"
	"jobdesk/internal/pkg/jwt"
	"jobdesk/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const CtxPrincipalKey = "principal"

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware validates the bearer access token and attaches the
// authenticated Principal to the request context. Refresh tokens are not
// accepted here.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", err)
		}

		if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil)
		}

		c.Locals(CtxPrincipalKey, usecase.Principal{
			ID:   claims.UserID,
			Name: claims.Name,
			Role: user.Role(claims.Role),
		})

		return c.Next()
	}
}

// PrincipalFromCtx returns the Principal set by the auth middleware, if any.
func PrincipalFromCtx(c fiber.Ctx) (usecase.Principal, bool) {
	p, ok := c.Locals(CtxPrincipalKey).(usecase.Principal)
	return p, ok
}

// BearerTokenFromHeader extracts the token from an Authorization header.
func BearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
