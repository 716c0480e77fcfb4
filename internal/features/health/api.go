package health

import (
	"go-tours/internal/database"

	"github.com/gofiber/fiber/v2"
)

type Api struct {
	db *database.MongodbDB
}

func NewApi(db *database.MongodbDB) *Api {
	return &Api{db: db}
}

// Setup registers the liveness endpoint
func (h *Api) Setup(app *fiber.App) {
	app.Get("/api/v1/health", func(c *fiber.Ctx) error {
		if err := h.db.Client.Ping(c.Context(), nil); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "error",
				"message": "database unreachable",
			})
		}
		return c.JSON(fiber.Map{"status": "success"})
	})
}
