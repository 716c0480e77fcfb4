package auth

import (
	"go-tours/internal/features/user"
	"go-tours/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type Api struct {
	controller *Controller
	users      user.Repository
}

func NewApi(controller *Controller, users user.Repository) *Api {
	return &Api{controller: controller, users: users}
}

// Setup registers the auth routes. Everything except updateMyPassword is
// reachable without a token.
func (h *Api) Setup(app *fiber.App) {
	auth := app.Group("/api/v1/users")

	auth.Post("/signup", h.controller.Signup)
	auth.Post("/login", h.controller.Login)
	auth.Post("/forgotPassword", h.controller.ForgotPassword)
	auth.Patch("/resetPassword/:token", h.controller.ResetPassword)
	auth.Patch("/updateMyPassword", middleware.Protect(h.users), h.controller.UpdateMyPassword)
}
