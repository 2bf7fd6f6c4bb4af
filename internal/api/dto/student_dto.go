package dto

import (
	"time"

	"github.com/spec-kit/placement-portal/internal/domain"
)

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the signin payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse returns the issued token.
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Student   StudentResponse `json:"student"`
}

// StudentResponse is the public account shape. The password hash never leaves
// the service.
type StudentResponse struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Email       string                    `json:"email"`
	Role        domain.Role               `json:"role"`
	Profile     domain.StudentProfile     `json:"profile"`
	Preferences domain.StudentPreferences `json:"preferences"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

// UpdateProfileRequest carries a partial profile edit. Omitted sections are
// left untouched.
type UpdateProfileRequest struct {
	Name        *string                    `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Profile     *domain.StudentProfile     `json:"profile,omitempty"`
	Preferences *domain.StudentPreferences `json:"preferences,omitempty"`
}

// NewStudentResponse maps a domain student to its API shape.
func NewStudentResponse(s *domain.Student) StudentResponse {
	return StudentResponse{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		Role:        s.Role,
		Profile:     s.Profile,
		Preferences: s.Preferences,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
