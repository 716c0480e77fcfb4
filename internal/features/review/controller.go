package review

import (
	"go-tours/internal/common/apperror"
	"go-tours/internal/middleware"
	"go-tours/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Controller struct {
	Service Service
}

func NewController(service Service) *Controller {
	return &Controller{Service: service}
}

type createReviewRequest struct {
	Review string  `json:"review"`
	Rating float64 `json:"rating"`
	Tour   string  `json:"tour"`
	User   string  `json:"user"`
}

func (ctl *Controller) ListReviews(c *fiber.Ctx) error {
	reviews, err := ctl.Service.List(c.Context(), c.Queries())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(reviews),
		"data":    fiber.Map{"reviews": reviews},
	})
}

func (ctl *Controller) GetReview(c *fiber.Ctx) error {
	rev, err := ctl.Service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return apperror.New(fiber.StatusNotFound, "No review found with that ID!")
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"review": rev},
	})
}

func (ctl *Controller) CreateReview(c *fiber.Ctx) error {
	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.New(fiber.StatusBadRequest, "Invalid request body")
	}

	tourID, err := primitive.ObjectIDFromHex(req.Tour)
	if err != nil {
		return apperror.New(fiber.StatusBadRequest, "Invalid tour identifier")
	}

	// owner defaults to the authenticated user
	userID := middleware.CurrentUser(c).ID
	if req.User != "" {
		userID, err = primitive.ObjectIDFromHex(req.User)
		if err != nil {
			return apperror.New(fiber.StatusBadRequest, "Invalid user identifier")
		}
	}

	rev, err := ctl.Service.Create(c.Context(), &models.Review{
		Review: req.Review,
		Rating: req.Rating,
		Tour:   tourID,
		User:   userID,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"review": rev},
	})
}
