package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/placement-portal/internal/api/dto"
	"github.com/spec-kit/placement-portal/internal/service"
	apperrors "github.com/spec-kit/placement-portal/pkg/util"
)

// ApplicationsHandler exposes the application workflow endpoints.
type ApplicationsHandler struct {
	workflow *service.WorkflowService
}

// NewApplicationsHandler constructs the handler.
func NewApplicationsHandler(workflow *service.WorkflowService) *ApplicationsHandler {
	return &ApplicationsHandler{workflow: workflow}
}

// Submit handles POST /applications.
func (h *ApplicationsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	app, err := h.workflow.SubmitApplication(c.UserContext(), actorFromContext(c), req.PostingID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewApplicationResponse(app))
}

// ListMine handles GET /applications.
func (h *ApplicationsHandler) ListMine(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	if actor == nil {
		return apperrors.NewUnauthenticated("sign in required")
	}

	views, err := h.workflow.ListApplicationsForStudent(c.UserContext(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewApplicationViewListResponse(views))
}

// UpdateStatus handles PATCH /applications/:id/status. Staff only.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	app, err := h.workflow.UpdateApplicationStatus(c.UserContext(), actorFromContext(c), c.Params("id"), req.Status, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewApplicationResponse(app))
}
