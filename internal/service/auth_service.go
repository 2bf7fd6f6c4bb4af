package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/placement-portal/internal/auth"
	"github.com/spec-kit/placement-portal/internal/config"
	"github.com/spec-kit/placement-portal/internal/domain"
	"github.com/spec-kit/placement-portal/internal/repository"
	apperrors "github.com/spec-kit/placement-portal/pkg/util"
)

// AuthService coordinates registration, login and profile maintenance.
type AuthService struct {
	students   repository.StudentRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, students repository.StudentRepository) *AuthService {
	return &AuthService{
		students:   students,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates an account with the default student role.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.Student, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.students.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, errors.New("email already registered")
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	student := &domain.Student{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleStudent,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(student.ID, student.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return student, token, exp, nil
}

// Login authenticates an account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Student, string, time.Time, error) {
	student, err := s.students.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	if err := auth.ComparePassword(student.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(student.ID, student.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return student, token, exp, nil
}

// ProfileUpdate carries the mutable profile and preference fields.
type ProfileUpdate struct {
	Name        *string
	Profile     *domain.StudentProfile
	Preferences *domain.StudentPreferences
}

// UpdateProfile applies a profile change. Accounts may edit themselves;
// admins may edit anyone.
func (s *AuthService) UpdateProfile(ctx context.Context, actor *domain.Student, targetID string, update ProfileUpdate) (*domain.Student, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthenticated("sign in required")
	}
	if actor.ID != targetID && actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("cannot edit another student's profile")
	}

	student, err := s.students.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && strings.TrimSpace(*update.Name) != "" {
		student.Name = strings.TrimSpace(*update.Name)
	}
	if update.Profile != nil {
		student.Profile = *update.Profile
	}
	if update.Preferences != nil {
		student.Preferences = *update.Preferences
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, apperrors.NewPersistenceFailure(err)
	}
	return student, nil
}

// GetStudent fetches one account.
func (s *AuthService) GetStudent(ctx context.Context, id string) (*domain.Student, error) {
	return s.students.GetByID(ctx, id)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
