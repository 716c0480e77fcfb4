package middleware

import (
	"context"
	"strings"

	"go-tours/internal/common/apperror"
	"go-tours/internal/models"
	"go-tours/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// UserLoader re-fetches the user a token points at. Implemented by the user
// repository; only active users are returned.
type UserLoader interface {
	LoadActive(ctx context.Context, id string) (*models.User, error)
}

// Protect validates the bearer token, re-fetches the referenced user and
// rejects tokens issued before the last password change. The resolved user
// is stored in locals for downstream role checks.
func Protect(users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return apperror.New(fiber.StatusUnauthorized, "Please login to access this route!")
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			return err
		}

		usr, err := users.LoadActive(c.Context(), claims.UserID)
		if err != nil || usr == nil {
			return apperror.New(fiber.StatusUnauthorized, "The user belonging to this token no longer exists!")
		}

		if claims.IssuedAt != nil && usr.ChangedPasswordAfter(claims.IssuedAt.Time) {
			return apperror.New(fiber.StatusUnauthorized,
				"Your password has changed since you last logged in! Please login again.")
		}

		c.Locals(utils.CurrentUserKey, usr)
		return c.Next()
	}
}

// CurrentUser returns the user resolved by Protect, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	usr, _ := c.Locals(utils.CurrentUserKey).(*models.User)
	return usr
}

func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Cookies("jwt")
}
