package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// RequireRole ensures the principal carries one of the allowed role ids.
// With no arguments it only requires an authenticated caller.
func RequireRole(allowed ...int) fiber.Handler {
	allowedSet := make(map[int]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.RoleID]; !exists {
			return fiber.NewError(http.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}
