package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/spec-kit/placement-portal/internal/domain"
	"github.com/spec-kit/placement-portal/internal/repository"
)

// PlacementStats is the admin dashboard headline figure. Placed and Unplaced
// always sum to Total.
type PlacementStats struct {
	Placed   int `json:"placed"`
	Unplaced int `json:"unplaced"`
	Total    int `json:"total"`
}

// AggregatePlacementStats counts a student as placed when any of their
// applications reached accepted or offer_received. Pure fold, no persistence.
func AggregatePlacementStats(students []domain.Student, applications []domain.Application) PlacementStats {
	placedStudents := make(map[string]struct{})
	for _, app := range applications {
		if app.Status == domain.ApplicationStatusAccepted || app.Status == domain.ApplicationStatusOfferReceived {
			placedStudents[app.StudentID] = struct{}{}
		}
	}

	placed := 0
	for _, student := range students {
		if _, ok := placedStudents[student.ID]; ok {
			placed++
		}
	}
	return PlacementStats{
		Placed:   placed,
		Unplaced: len(students) - placed,
		Total:    len(students),
	}
}

// DepartmentBreakdown counts students per department.
func DepartmentBreakdown(students []domain.Student) map[string]int {
	counts := make(map[string]int)
	for _, student := range students {
		dept := "Unknown"
		if student.Profile.Department != nil && strings.TrimSpace(*student.Profile.Department) != "" {
			dept = *student.Profile.Department
		}
		counts[dept]++
	}
	return counts
}

// StudentDirectoryFilter narrows the admin student listing.
type StudentDirectoryFilter struct {
	Year       *int
	Department *string
	MinGPA     *float64
}

// StatsService serves the admin-facing analytics surface.
type StatsService struct {
	students     repository.StudentRepository
	applications repository.ApplicationRepository
}

// NewStatsService constructs the service.
func NewStatsService(students repository.StudentRepository, applications repository.ApplicationRepository) *StatsService {
	return &StatsService{students: students, applications: applications}
}

// PlacementOverview loads all student accounts and applications and folds
// them into placement figures.
func (s *StatsService) PlacementOverview(ctx context.Context) (PlacementStats, error) {
	students, err := s.students.ListByRole(ctx, domain.RoleStudent)
	if err != nil {
		return PlacementStats{}, err
	}
	applications, err := s.applications.ListAll(ctx)
	if err != nil {
		return PlacementStats{}, err
	}
	return AggregatePlacementStats(students, applications), nil
}

// Departments returns the per-department head count for student accounts.
func (s *StatsService) Departments(ctx context.Context) (map[string]int, error) {
	students, err := s.students.ListByRole(ctx, domain.RoleStudent)
	if err != nil {
		return nil, err
	}
	return DepartmentBreakdown(students), nil
}

// StudentDirectory lists students matching the filter. Filtering happens
// in-process over the fetched records.
func (s *StatsService) StudentDirectory(ctx context.Context, filter StudentDirectoryFilter) ([]domain.Student, error) {
	students, err := s.students.ListByRole(ctx, domain.RoleStudent)
	if err != nil {
		return nil, err
	}
	return filterStudents(students, filter), nil
}

func filterStudents(students []domain.Student, filter StudentDirectoryFilter) []domain.Student {
	result := make([]domain.Student, 0, len(students))
	for _, student := range students {
		if filter.Year != nil {
			if student.Profile.Year == nil || *student.Profile.Year != *filter.Year {
				continue
			}
		}
		if filter.Department != nil {
			if student.Profile.Department == nil || !strings.EqualFold(*student.Profile.Department, *filter.Department) {
				continue
			}
		}
		if filter.MinGPA != nil {
			if student.Profile.GPA == nil || *student.Profile.GPA < *filter.MinGPA {
				continue
			}
		}
		result = append(result, student)
	}
	return result
}

// WriteStudentsCSV renders the student directory as CSV.
func WriteStudentsCSV(w io.Writer, students []domain.Student) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Name", "Email", "Department", "Year", "GPA"}); err != nil {
		return err
	}
	for _, student := range students {
		record := []string{student.Name, student.Email, "", "", ""}
		if student.Profile.Department != nil {
			record[2] = *student.Profile.Department
		}
		if student.Profile.Year != nil {
			record[3] = fmt.Sprintf("%d", *student.Profile.Year)
		}
		if student.Profile.GPA != nil {
			record[4] = fmt.Sprintf("%.2f", *student.Profile.GPA)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
