package tour

import (
	"go-tours/internal/features/user"
	"go-tours/internal/middleware"
	"go-tours/internal/models"

	"github.com/gofiber/fiber/v2"
)

type Api struct {
	controller *Controller
	users      user.Repository
}

func NewApi(controller *Controller, users user.Repository) *Api {
	return &Api{controller: controller, users: users}
}

// Setup registers tour routes. Literal paths go first so they are not
// swallowed by /:id.
func (h *Api) Setup(app *fiber.App) {
	tours := app.Group("/api/v1/tours")

	tours.Get("/top-5-cheap", h.controller.TopFiveCheap)
	tours.Get("/stats", h.controller.Stats)
	tours.Get("/monthly-plan/:year",
		middleware.Protect(h.users),
		middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide, models.RoleGuide),
		h.controller.MonthlyPlan)

	tours.Get("/", h.controller.ListTours)
	tours.Post("/",
		middleware.Protect(h.users),
		middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide),
		h.controller.CreateTour)

	tours.Get("/:id", h.controller.GetTour)
	tours.Patch("/:id",
		middleware.Protect(h.users),
		middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide),
		h.controller.UpdateTour)
	tours.Delete("/:id",
		middleware.Protect(h.users),
		middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide),
		h.controller.DeleteTour)
}
