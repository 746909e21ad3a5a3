package middleware

import (
	"jobdesk/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

// RequireRole gates a route group to the given roles. It must run after
// the auth middleware.
func RequireRole(roles ...user.Role) fiber.Handler {
	allowed := make(map[user.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c fiber.Ctx) error {
		p, ok := PrincipalFromCtx(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
		}
		if _, ok := allowed[p.Role]; !ok {
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil)
		}
		return c.Next()
	}
}
