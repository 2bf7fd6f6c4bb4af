package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/placement-portal/internal/domain"
)

// StudentRepository defines persistence access for portal accounts.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	Update(ctx context.Context, student *domain.Student) error
	GetByID(ctx context.Context, id string) (*domain.Student, error)
	GetByEmail(ctx context.Context, email string) (*domain.Student, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Student, error)
}

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository returns a Postgres-backed implementation.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	const query = `
        INSERT INTO students (name, email, password_hash, role, gpa, year, department, skills, resume_url, preferences)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		student.Name,
		student.Email,
		student.PasswordHash,
		student.Role,
		student.Profile.GPA,
		student.Profile.Year,
		student.Profile.Department,
		student.Profile.Skills,
		student.Profile.ResumeURL,
		student.Preferences,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
}

func (r *studentRepository) Update(ctx context.Context, student *domain.Student) error {
	const query = `
        UPDATE students SET name=$1, email=$2, password_hash=$3, role=$4, gpa=$5, year=$6,
            department=$7, skills=$8, resume_url=$9, preferences=$10, updated_at=NOW()
        WHERE id=$11`

	cmd, err := r.pool.Exec(ctx, query,
		student.Name,
		student.Email,
		student.PasswordHash,
		student.Role,
		student.Profile.GPA,
		student.Profile.Year,
		student.Profile.Department,
		student.Profile.Skills,
		student.Profile.ResumeURL,
		student.Preferences,
		student.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	const query = selectStudent + ` WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	const query = selectStudent + ` WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *studentRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Student, error) {
	const query = selectStudent + ` WHERE role=$1 ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Student
	for rows.Next() {
		var student domain.Student
		if err := scanStudent(rows, &student); err != nil {
			return nil, err
		}
		result = append(result, student)
	}
	return result, rows.Err()
}

const selectStudent = `
        SELECT id, name, email, password_hash, role, gpa, year, department, skills, resume_url, preferences, created_at, updated_at
        FROM students`

func (r *studentRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Student, error) {
	var student domain.Student
	if err := scanStudent(r.pool.QueryRow(ctx, query, arg), &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func scanStudent(row pgx.Row, student *domain.Student) error {
	return row.Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.PasswordHash,
		&student.Role,
		&student.Profile.GPA,
		&student.Profile.Year,
		&student.Profile.Department,
		&student.Profile.Skills,
		&student.Profile.ResumeURL,
		&student.Preferences,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
}
