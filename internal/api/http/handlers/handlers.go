package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/placement-portal/internal/auth"
	"github.com/spec-kit/placement-portal/internal/domain"
)

// principalStudent unwraps the student from an optional principal.
func principalStudent(p *auth.Principal) *domain.Student {
	if p == nil {
		return nil
	}
	return p.Student
}

// actorFromContext returns the authenticated student, or nil when the route
// is unauthenticated.
func actorFromContext(c *fiber.Ctx) *domain.Student {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil
	}
	return principalStudent(principal)
}

// queryInt reads an integer query parameter with a fallback.
func queryInt(c *fiber.Ctx, key string, fallback int) int {
	val := c.Query(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
