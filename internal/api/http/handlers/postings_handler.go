package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/placement-portal/internal/api/dto"
	"github.com/spec-kit/placement-portal/internal/domain"
	"github.com/spec-kit/placement-portal/internal/service"
	apperrors "github.com/spec-kit/placement-portal/pkg/util"
)

// PostingsHandler exposes posting endpoints.
type PostingsHandler struct {
	postings *service.PostingService
}

// NewPostingsHandler constructs the handler.
func NewPostingsHandler(postings *service.PostingService) *PostingsHandler {
	return &PostingsHandler{postings: postings}
}

// Create handles POST /postings. Staff only.
func (h *PostingsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePostingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	posting, err := h.postings.CreatePosting(c.UserContext(), actorFromContext(c), service.PostingCreateInput{
		Title:       req.Title,
		Company:     req.Company,
		Stipend:     req.Stipend,
		Deadline:    req.Deadline,
		Eligibility: req.Eligibility,
		Description: req.Description,
		Location:    req.Location,
		Type:        req.Type,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPostingResponse(posting))
}

// List handles GET /postings.
func (h *PostingsHandler) List(c *fiber.Ctx) error {
	var status *domain.PostingStatus
	switch c.Query("status") {
	case "open":
		s := domain.PostingStatusOpen
		status = &s
	case "closed":
		s := domain.PostingStatusClosed
		status = &s
	}

	postings, err := h.postings.ListPostings(c.UserContext(), status, queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPostingListResponse(postings))
}

// Get handles GET /postings/:id.
func (h *PostingsHandler) Get(c *fiber.Ctx) error {
	posting, err := h.postings.GetPosting(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPostingResponse(posting))
}

// Close handles POST /postings/:id/close. Staff only.
func (h *PostingsHandler) Close(c *fiber.Ctx) error {
	posting, err := h.postings.ClosePosting(c.UserContext(), actorFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPostingResponse(posting))
}
