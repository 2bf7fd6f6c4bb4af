package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/placement-portal/internal/domain"
)

// PostingFilter captures posting listing parameters.
type PostingFilter struct {
	Status *domain.PostingStatus
	Limit  int
	Offset int
}

// PostingRepository encapsulates internship posting persistence.
type PostingRepository interface {
	Create(ctx context.Context, posting *domain.Posting) error
	GetByID(ctx context.Context, id string) (*domain.Posting, error)
	List(ctx context.Context, filter PostingFilter) ([]domain.Posting, error)
	UpdateApplicants(ctx context.Context, id string, applicants int) error
	UpdateStatus(ctx context.Context, id string, status domain.PostingStatus) error
}

type postingRepository struct {
	pool *pgxpool.Pool
}

// NewPostingRepository instantiates repository.
func NewPostingRepository(pool *pgxpool.Pool) PostingRepository {
	return &postingRepository{pool: pool}
}

func (r *postingRepository) Create(ctx context.Context, posting *domain.Posting) error {
	const query = `
        INSERT INTO postings (title, company, stipend, deadline, eligibility, applicants, status, description, location, type)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		posting.Title,
		posting.Company,
		posting.Stipend,
		posting.Deadline,
		posting.Eligibility,
		posting.Applicants,
		posting.Status,
		posting.Description,
		posting.Location,
		posting.Type,
	).Scan(&posting.ID, &posting.CreatedAt, &posting.UpdatedAt)
}

func (r *postingRepository) GetByID(ctx context.Context, id string) (*domain.Posting, error) {
	const query = selectPosting + ` WHERE id=$1`
	var posting domain.Posting
	if err := scanPosting(r.pool.QueryRow(ctx, query, id), &posting); err != nil {
		return nil, err
	}
	return &posting, nil
}

func (r *postingRepository) List(ctx context.Context, filter PostingFilter) ([]domain.Posting, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY deadline ASC LIMIT %d OFFSET %d`,
		selectPosting, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Posting
	for rows.Next() {
		var posting domain.Posting
		if err := scanPosting(rows, &posting); err != nil {
			return nil, err
		}
		result = append(result, posting)
	}
	return result, rows.Err()
}

// UpdateApplicants writes the counter value read by the caller. This is the
// read-then-write half of the applicant count increment; concurrent submits
// can lose updates, which is tolerated for a display counter.
func (r *postingRepository) UpdateApplicants(ctx context.Context, id string, applicants int) error {
	const query = `UPDATE postings SET applicants=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, applicants, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postingRepository) UpdateStatus(ctx context.Context, id string, status domain.PostingStatus) error {
	const query = `UPDATE postings SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const selectPosting = `
        SELECT id, title, company, stipend, deadline, eligibility, applicants, status, description, location, type, created_at, updated_at
        FROM postings`

func scanPosting(row pgx.Row, posting *domain.Posting) error {
	return row.Scan(
		&posting.ID,
		&posting.Title,
		&posting.Company,
		&posting.Stipend,
		&posting.Deadline,
		&posting.Eligibility,
		&posting.Applicants,
		&posting.Status,
		&posting.Description,
		&posting.Location,
		&posting.Type,
		&posting.CreatedAt,
		&posting.UpdatedAt,
	)
}
