package middleware

import (
	"slices"

	"go-tours/internal/common/apperror"
	"go-tours/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RestrictTo rejects the request unless the current user's role is in the
// allow-list. Must run after Protect.
func RestrictTo(roles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		usr := CurrentUser(c)
		if usr == nil {
			return apperror.New(fiber.StatusUnauthorized, "Please login to access this route!")
		}

		if !slices.Contains(roles, usr.Role) {
			return apperror.New(fiber.StatusForbidden, "You are not authorized to access this route!")
		}

		return c.Next()
	}
}
