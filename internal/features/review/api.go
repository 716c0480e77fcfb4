package review

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

// Setup registers review routes
func (h *Api) Setup(app *fiber.App) {
	reviews := app.Group("/api/v1/reviews")

	reviews.Get("/", h.controller.ListReviews)
	reviews.Get("/:id", h.controller.GetReview)
	reviews.Post("/", middleware.Protect(h.users), h.controller.CreateReview)
}
