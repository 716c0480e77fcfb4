package user

import (
	"go-tours/internal/common/apperror"
	"go-tours/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Service Service
}

func NewController(service Service) *Controller {
	return &Controller{Service: service}
}

type updateMeRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

func (ctl *Controller) ListUsers(c *fiber.Ctx) error {
	users, err := ctl.Service.List(c.Context(), c.Queries())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(users),
		"data":    fiber.Map{"users": users},
	})
}

func (ctl *Controller) UpdateMe(c *fiber.Ctx) error {
	var req updateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.New(fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Password != "" || req.PasswordConfirm != "" {
		return apperror.New(fiber.StatusBadRequest,
			"You are not allowed to update the password on this route!")
	}

	usr := middleware.CurrentUser(c)
	updated, err := ctl.Service.UpdateMe(c.Context(), usr.ID.Hex(), UpdateMeInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"user": updated},
	})
}

func (ctl *Controller) DeleteMe(c *fiber.Ctx) error {
	usr := middleware.CurrentUser(c)
	if err := ctl.Service.DeleteMe(c.Context(), usr.ID.Hex()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (ctl *Controller) DeleteUser(c *fiber.Ctx) error {
	if err := ctl.Service.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
