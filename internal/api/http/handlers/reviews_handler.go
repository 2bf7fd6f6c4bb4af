package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/placement-portal/internal/api/dto"
	"github.com/spec-kit/placement-portal/internal/domain"
	"github.com/spec-kit/placement-portal/internal/service"
	apperrors "github.com/spec-kit/placement-portal/pkg/util"
)

// ReviewsHandler exposes the experience wall endpoints.
type ReviewsHandler struct {
	reviews *service.ReviewService
}

// NewReviewsHandler constructs the handler.
func NewReviewsHandler(reviews *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviews}
}

// Create handles POST /reviews.
func (h *ReviewsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	review, err := h.reviews.PostReview(c.UserContext(), actorFromContext(c), service.ReviewCreateInput{
		Company:    req.Company,
		Rating:     req.Rating,
		Difficulty: domain.ReviewDifficulty(req.Difficulty),
		Text:       req.Text,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewReviewResponse(review))
}

// List handles GET /reviews. Responses are anonymous.
func (h *ReviewsHandler) List(c *fiber.Ctx) error {
	reviews, err := h.reviews.ListReviews(c.UserContext(), queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewReviewListResponse(reviews))
}
