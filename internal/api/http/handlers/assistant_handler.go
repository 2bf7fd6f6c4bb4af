package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/placement-portal/internal/api/dto"
	"github.com/spec-kit/placement-portal/internal/service"
	apperrors "github.com/spec-kit/placement-portal/pkg/util"
)

// AssistantHandler exposes the AI career assistant endpoints.
type AssistantHandler struct {
	assistant *service.AssistantService
}

// NewAssistantHandler constructs the handler.
func NewAssistantHandler(assistant *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// Chat handles POST /assistant/chat.
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	response, err := h.assistant.Chat(c.UserContext(), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(dto.ChatResponse{Response: response})
}

// AnalyzeResume handles POST /assistant/resume/analyze.
func (h *AssistantHandler) AnalyzeResume(c *fiber.Ctx) error {
	var req dto.ResumeAnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	improvements, err := h.assistant.AnalyzeResume(c.UserContext(), req.ResumeText, req.JobDescription)
	if err != nil {
		return err
	}
	return c.JSON(dto.ResumeAnalyzeResponse{Improvements: improvements})
}
