package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/placement-portal/internal/api/dto"
	"github.com/spec-kit/placement-portal/internal/service"
)

// AdminHandler exposes the staff analytics surface.
type AdminHandler struct {
	stats *service.StatsService
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(stats *service.StatsService) *AdminHandler {
	return &AdminHandler{stats: stats}
}

// PlacementStats handles GET /admin/stats/placements.
func (h *AdminHandler) PlacementStats(c *fiber.Ctx) error {
	stats, err := h.stats.PlacementOverview(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// Departments handles GET /admin/stats/departments.
func (h *AdminHandler) Departments(c *fiber.Ctx) error {
	breakdown, err := h.stats.Departments(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(breakdown)
}

// Students handles GET /admin/students with optional year, department and
// min_gpa filters.
func (h *AdminHandler) Students(c *fiber.Ctx) error {
	filter, err := directoryFilterFromQuery(c)
	if err != nil {
		return err
	}

	students, err := h.stats.StudentDirectory(c.UserContext(), filter)
	if err != nil {
		return err
	}

	out := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		out = append(out, dto.NewStudentResponse(&students[i]))
	}
	return c.JSON(out)
}

// ExportStudentsCSV handles GET /admin/students/export.
func (h *AdminHandler) ExportStudentsCSV(c *fiber.Ctx) error {
	filter, err := directoryFilterFromQuery(c)
	if err != nil {
		return err
	}

	students, err := h.stats.StudentDirectory(c.UserContext(), filter)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="students.csv"`)
	return service.WriteStudentsCSV(c.Response().BodyWriter(), students)
}

func directoryFilterFromQuery(c *fiber.Ctx) (service.StudentDirectoryFilter, error) {
	var filter service.StudentDirectoryFilter
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err == nil {
			filter.Year = &year
		}
	}
	if raw := c.Query("department"); raw != "" {
		filter.Department = &raw
	}
	if raw := c.Query("min_gpa"); raw != "" {
		gpa, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			filter.MinGPA = &gpa
		}
	}
	return filter, nil
}
