package apperror

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NewErrorHandler builds the centralized Fiber error handler. Operational
// errors are surfaced verbatim; everything else is logged and reported as a
// generic 500. Development mode echoes the full error and a stack trace.
func NewErrorHandler(environment string, log *zap.Logger) fiber.ErrorHandler {
	development := environment == "development"

	return func(c *fiber.Ctx, err error) error {
		appErr := Normalize(err)

		if appErr == nil {
			log.Error("unexpected error",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.Error(err),
			)
			if development {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"status":  "error",
					"message": err.Error(),
					"error":   err.Error(),
					"stack":   string(debug.Stack()),
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Something went wrong!",
			})
		}

		body := fiber.Map{
			"status":  appErr.StatusText(),
			"message": appErr.Message,
		}
		if development {
			body["error"] = err.Error()
		}
		return c.Status(appErr.Code).JSON(body)
	}
}
