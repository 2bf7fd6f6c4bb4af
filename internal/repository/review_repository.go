package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/placement-portal/internal/domain"
)

// ReviewRepository stores anonymous company-experience reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	List(ctx context.Context, limit, offset int) ([]domain.Review, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository builds repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (company_name, rating, difficulty, review_text, student_id, verified)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		review.Company,
		review.Rating,
		review.Difficulty,
		review.Text,
		review.StudentID,
		review.Verified,
	).Scan(&review.ID, &review.CreatedAt)
}

func (r *reviewRepository) List(ctx context.Context, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, company_name, rating, difficulty, review_text, student_id, verified, created_at
        FROM reviews ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.Company,
			&review.Rating,
			&review.Difficulty,
			&review.Text,
			&review.StudentID,
			&review.Verified,
			&review.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	return result, rows.Err()
}
