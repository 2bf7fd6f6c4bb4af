package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/placement-portal/internal/api/dto"
	"github.com/spec-kit/placement-portal/internal/auth"
	"github.com/spec-kit/placement-portal/internal/service"
	apperrors "github.com/spec-kit/placement-portal/pkg/util"
)

// StudentsHandler exposes account and profile endpoints.
type StudentsHandler struct {
	authService *service.AuthService
}

// NewStudentsHandler constructs the handler.
func NewStudentsHandler(authService *service.AuthService) *StudentsHandler {
	return &StudentsHandler{authService: authService}
}

// Register handles POST /auth/register.
func (h *StudentsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	student, token, expiresAt, err := h.authService.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return apperrors.NewConflict(err.Error(), nil)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Student:   dto.NewStudentResponse(student),
	})
}

// Login handles POST /auth/login.
func (h *StudentsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	student, token, expiresAt, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return apperrors.NewUnauthenticated("invalid credentials")
	}

	return c.JSON(dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Student:   dto.NewStudentResponse(student),
	})
}

// Me handles GET /me.
func (h *StudentsHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Student == nil {
		return apperrors.NewUnauthenticated("sign in required")
	}
	return c.JSON(dto.NewStudentResponse(principal.Student))
}

// UpdateProfile handles PUT /students/:id/profile.
func (h *StudentsHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	actor := principalStudent(principal)
	student, err := h.authService.UpdateProfile(c.UserContext(), actor, c.Params("id"), service.ProfileUpdate{
		Name:        req.Name,
		Profile:     req.Profile,
		Preferences: req.Preferences,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewStudentResponse(student))
}
