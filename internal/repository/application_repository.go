package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/placement-portal/internal/domain"
)

// ApplicationRepository stores application records.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	Update(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Application, error)
	ListAll(ctx context.Context) ([]domain.Application, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository builds repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (student_id, posting_id, status, timeline, documents)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		app.StudentID,
		app.PostingID,
		app.Status,
		app.Timeline,
		app.Documents,
	).Scan(&app.ID, &app.CreatedAt)
}

func (r *applicationRepository) Update(ctx context.Context, app *domain.Application) error {
	const query = `
        UPDATE applications SET status=$1, timeline=$2, documents=$3
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		app.Status,
		app.Timeline,
		app.Documents,
		app.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	const query = selectApplication + ` WHERE id=$1`
	var app domain.Application
	if err := scanApplication(r.pool.QueryRow(ctx, query, id), &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.Application, error) {
	const query = selectApplication + ` WHERE student_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *applicationRepository) ListAll(ctx context.Context) ([]domain.Application, error) {
	const query = selectApplication + ` ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

const selectApplication = `
        SELECT id, student_id, posting_id, status, timeline, documents, created_at
        FROM applications`

func scanApplication(row pgx.Row, app *domain.Application) error {
	return row.Scan(
		&app.ID,
		&app.StudentID,
		&app.PostingID,
		&app.Status,
		&app.Timeline,
		&app.Documents,
		&app.CreatedAt,
	)
}

func scanApplications(rows pgx.Rows) ([]domain.Application, error) {
	var result []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := scanApplication(rows, &app); err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}
