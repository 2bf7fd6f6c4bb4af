package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/placement-portal/internal/domain"
)

func strPtr(v string) *string { return &v }

func directoryStudents() []domain.Student {
	return []domain.Student{
		{ID: "s1", Name: "Asha", Email: "asha@example.com", Role: domain.RoleStudent,
			Profile: domain.StudentProfile{GPA: floatPtr(8.9), Year: intPtr(4), Department: strPtr("CSE")}},
		{ID: "s2", Name: "Ravi", Email: "ravi@example.com", Role: domain.RoleStudent,
			Profile: domain.StudentProfile{GPA: floatPtr(7.1), Year: intPtr(3), Department: strPtr("ECE")}},
		{ID: "s3", Name: "Meera", Email: "meera@example.com", Role: domain.RoleStudent,
			Profile: domain.StudentProfile{Year: intPtr(4)}},
	}
}

func TestAggregatePlacementStatsPartitions(t *testing.T) {
	students := directoryStudents()
	applications := []domain.Application{
		{ID: "a1", StudentID: "s1", Status: domain.ApplicationStatusAccepted},
		{ID: "a2", StudentID: "s1", Status: domain.ApplicationStatusOfferReceived},
		{ID: "a3", StudentID: "s2", Status: domain.ApplicationStatusRejected},
		{ID: "a4", StudentID: "s3", Status: domain.ApplicationStatusInterviewing},
	}

	stats := AggregatePlacementStats(students, applications)

	// s1 has two placement-grade applications but counts once.
	assert.Equal(t, 1, stats.Placed)
	assert.Equal(t, 2, stats.Unplaced)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, stats.Total, stats.Placed+stats.Unplaced)
}

func TestAggregatePlacementStatsIgnoresUnknownStudents(t *testing.T) {
	students := directoryStudents()
	applications := []domain.Application{
		{ID: "a1", StudentID: "ghost", Status: domain.ApplicationStatusAccepted},
	}

	stats := AggregatePlacementStats(students, applications)
	assert.Equal(t, 0, stats.Placed)
	assert.Equal(t, 3, stats.Total)
}

func TestDepartmentBreakdown(t *testing.T) {
	counts := DepartmentBreakdown(directoryStudents())

	assert.Equal(t, 1, counts["CSE"])
	assert.Equal(t, 1, counts["ECE"])
	assert.Equal(t, 1, counts["Unknown"])
}

func TestFilterStudents(t *testing.T) {
	students := directoryStudents()

	filtered := filterStudents(students, StudentDirectoryFilter{Year: intPtr(4)})
	require.Len(t, filtered, 2)

	filtered = filterStudents(students, StudentDirectoryFilter{Department: strPtr("cse")})
	require.Len(t, filtered, 1)
	assert.Equal(t, "Asha", filtered[0].Name)

	filtered = filterStudents(students, StudentDirectoryFilter{MinGPA: floatPtr(8.0)})
	require.Len(t, filtered, 1)
	assert.Equal(t, "Asha", filtered[0].Name)

	// A missing GPA never satisfies a GPA floor.
	filtered = filterStudents(students, StudentDirectoryFilter{MinGPA: floatPtr(0.1)})
	require.Len(t, filtered, 2)
}

func TestWriteStudentsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteStudentsCSV(&buf, directoryStudents())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Name,Email,Department,Year,GPA", lines[0])
	assert.Equal(t, "Asha,asha@example.com,CSE,4,8.90", lines[1])
	assert.Equal(t, "Meera,meera@example.com,,4,", lines[3])
}

type fakeStudentRepo struct {
	students []domain.Student
}

func (r *fakeStudentRepo) Create(_ context.Context, _ *domain.Student) error { return nil }
func (r *fakeStudentRepo) Update(_ context.Context, _ *domain.Student) error { return nil }
func (r *fakeStudentRepo) GetByID(_ context.Context, id string) (*domain.Student, error) {
	for i := range r.students {
		if r.students[i].ID == id {
			return &r.students[i], nil
		}
	}
	return nil, assert.AnError
}
func (r *fakeStudentRepo) GetByEmail(_ context.Context, email string) (*domain.Student, error) {
	for i := range r.students {
		if r.students[i].Email == email {
			return &r.students[i], nil
		}
	}
	return nil, assert.AnError
}
func (r *fakeStudentRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.Student, error) {
	out := make([]domain.Student, 0)
	for _, s := range r.students {
		if s.Role == role {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestStatsServicePlacementOverview(t *testing.T) {
	students := &fakeStudentRepo{students: directoryStudents()}
	apps := newFakeApplicationRepo()
	_ = apps.Create(context.Background(), &domain.Application{StudentID: "s2", PostingID: "p1", Status: domain.ApplicationStatusOfferReceived})

	svc := NewStatsService(students, apps)
	stats, err := svc.PlacementOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, PlacementStats{Placed: 1, Unplaced: 2, Total: 3}, stats)
}
