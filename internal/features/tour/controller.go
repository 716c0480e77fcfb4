package tour

import (
	"go-tours/internal/common/apperror"
	"go-tours/internal/models"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Service Service
}

func NewController(service Service) *Controller {
	return &Controller{Service: service}
}

func (ctl *Controller) ListTours(c *fiber.Ctx) error {
	tours, err := ctl.Service.List(c.Context(), c.Queries())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(tours),
		"data":    fiber.Map{"tours": tours},
	})
}

// TopFiveCheap is the preset alias: best-rated first, then cheapest, capped
// at five, trimmed to the listing fields.
func (ctl *Controller) TopFiveCheap(c *fiber.Ctx) error {
	params := c.Queries()
	params["limit"] = "5"
	params["sort"] = "-ratingsAverage,price"
	params["fields"] = "name,price,ratingsAverage,duration,summary,difficulty"

	tours, err := ctl.Service.List(c.Context(), params)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(tours),
		"data":    fiber.Map{"tours": tours},
	})
}

func (ctl *Controller) GetTour(c *fiber.Ctx) error {
	t, err := ctl.Service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return apperror.New(fiber.StatusNotFound, "No tour found with that ID!")
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"tour": t},
	})
}

func (ctl *Controller) CreateTour(c *fiber.Ctx) error {
	var t models.Tour
	if err := c.BodyParser(&t); err != nil {
		return apperror.New(fiber.StatusBadRequest, "Invalid request body")
	}

	created, err := ctl.Service.Create(c.Context(), &t)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"tour": created},
	})
}

func (ctl *Controller) UpdateTour(c *fiber.Ctx) error {
	var input UpdateTourInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.New(fiber.StatusBadRequest, "Invalid request body")
	}

	t, err := ctl.Service.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"tour": t},
	})
}

func (ctl *Controller) DeleteTour(c *fiber.Ctx) error {
	if err := ctl.Service.Delete(c.Context(), c.Params("id")); err != nil {
		return apperror.New(fiber.StatusNotFound, "No tour found with that ID!")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (ctl *Controller) Stats(c *fiber.Ctx) error {
	stats, err := ctl.Service.Stats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"stats": stats},
	})
}

func (ctl *Controller) MonthlyPlan(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil {
		return apperror.New(fiber.StatusBadRequest, "Invalid year")
	}

	plan, err := ctl.Service.MonthlyPlan(c.Context(), year)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"plan": plan},
	})
}
