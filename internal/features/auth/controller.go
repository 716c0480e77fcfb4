package auth

import (
	"fmt"
	"time"

	"go-tours/internal/common/apperror"
	"go-tours/internal/config"
	"go-tours/internal/middleware"
	"go-tours/internal/models"
	"go-tours/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Service Service
	Config  *config.Config
}

func NewController(service Service, cfg *config.Config) *Controller {
	return &Controller{Service: service, Config: cfg}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type updatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

func (ctl *Controller) Signup(c *fiber.Ctx) error {
	var input SignupInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.New(fiber.StatusBadRequest, "Invalid request body")
	}

	usr, err := ctl.Service.Signup(c.Context(), input)
	if err != nil {
		return err
	}
	return ctl.sendToken(c, usr, fiber.StatusCreated)
}

func (ctl *Controller) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.New(fiber.StatusBadRequest, "Invalid request body")
	}

	usr, err := ctl.Service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return ctl.sendToken(c, usr, fiber.StatusOK)
}

func (ctl *Controller) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.New(fiber.StatusBadRequest, "Invalid request body")
	}

	base := fmt.Sprintf("%s://%s", c.Protocol(), c.Hostname())
	if err := ctl.Service.ForgotPassword(c.Context(), req.Email, base); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "An email has been sent with further instructions!",
	})
}

func (ctl *Controller) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.New(fiber.StatusBadRequest, "Invalid request body")
	}

	usr, err := ctl.Service.ResetPassword(c.Context(), c.Params("token"), req.Password, req.PasswordConfirm)
	if err != nil {
		return err
	}
	return ctl.sendToken(c, usr, fiber.StatusOK)
}

func (ctl *Controller) UpdateMyPassword(c *fiber.Ctx) error {
	var req updatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.New(fiber.StatusBadRequest, "Invalid request body")
	}

	current := middleware.CurrentUser(c)
	usr, err := ctl.Service.UpdatePassword(c.Context(), current.ID.Hex(),
		req.PasswordCurrent, req.Password, req.PasswordConfirm)
	if err != nil {
		return err
	}
	return ctl.sendToken(c, usr, fiber.StatusOK)
}

// sendToken issues a fresh session token, sets the http-only jwt cookie and
// writes the success envelope.
func (ctl *Controller) sendToken(c *fiber.Ctx, usr *models.User, statusCode int) error {
	token, err := utils.GenerateToken(usr.ID, ctl.Config.JWTExpiresIn)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().AddDate(0, 0, ctl.Config.JWTCookieExpiryDays),
		HTTPOnly: true,
		Secure:   !ctl.Config.IsDevelopment(),
	})

	return c.Status(statusCode).JSON(fiber.Map{
		"status": "success",
		"token":  token,
		"data":   fiber.Map{"user": usr},
	})
}
