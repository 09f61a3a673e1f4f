package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/time-service/pkg/util/errorutil"
)

// RequireAdmin restricts a route group to the configured administrators,
// compared case-insensitively. An empty list admits every principal.
func RequireAdmin(admins []string) fiber.Handler {
	allowed := make(map[string]struct{}, len(admins))
	for _, admin := range admins {
		allowed[strings.ToLower(admin)] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if len(allowed) == 0 {
			return c.Next()
		}
		principal := PrincipalFromContext(c)
		if !principal.Authenticated {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, ok := allowed[strings.ToLower(principal.Username)]; !ok {
			return apperrors.NewForbidden("administrator role required")
		}
		return c.Next()
	}
}
