package user

import (
	"go-tours/internal/middleware"
	"go-tours/internal/models"

	"github.com/gofiber/fiber/v2"
)

type Api struct {
	controller *Controller
	users      Repository
}

func NewApi(controller *Controller, users Repository) *Api {
	return &Api{controller: controller, users: users}
}

// Setup registers user self-service and admin routes. Protect is attached
// per route because the signup and login endpoints share this prefix.
func (h *Api) Setup(app *fiber.App) {
	users := app.Group("/api/v1/users")
	protect := middleware.Protect(h.users)

	users.Patch("/updateMe", protect, h.controller.UpdateMe)
	users.Delete("/deleteMe", protect, h.controller.DeleteMe)

	users.Get("/", protect, middleware.RestrictTo(models.RoleAdmin), h.controller.ListUsers)
	users.Delete("/:id", protect, middleware.RestrictTo(models.RoleAdmin), h.controller.DeleteUser)
}
