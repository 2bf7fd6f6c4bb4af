package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/placement-portal/internal/domain"
	"github.com/spec-kit/placement-portal/internal/repository"
	apperrors "github.com/spec-kit/placement-portal/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. The student record carries
// the role and the profile needed by eligibility checks.
type Principal struct {
	Student *domain.Student
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens   *TokenManager
	students repository.StudentRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, students repository.StudentRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, students: students}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthenticated("invalid token")
	}

	student, err := m.students.GetByID(c.UserContext(), claims.SubjectID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthenticated("account not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{Student: student})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
