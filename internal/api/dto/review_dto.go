package dto

import (
	"time"

	"github.com/spec-kit/placement-portal/internal/domain"
)

// CreateReviewRequest posts a company experience review.
type CreateReviewRequest struct {
	Company    string `json:"company" validate:"required,min=2,max=200"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Text       string `json:"text" validate:"required,min=10,max=5000"`
}

// ReviewResponse is the anonymous read shape. The author id is intentionally
// absent.
type ReviewResponse struct {
	ID         string                  `json:"id"`
	Company    string                  `json:"company"`
	Rating     int                     `json:"rating"`
	Difficulty domain.ReviewDifficulty `json:"difficulty"`
	Text       string                  `json:"text"`
	Verified   bool                    `json:"verified"`
	CreatedAt  time.Time               `json:"createdAt"`
}

// NewReviewResponse maps a domain review, dropping the author id.
func NewReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		Company:    r.Company,
		Rating:     r.Rating,
		Difficulty: r.Difficulty,
		Text:       r.Text,
		Verified:   r.Verified,
		CreatedAt:  r.CreatedAt,
	}
}

// NewReviewListResponse maps a slice of reviews.
func NewReviewListResponse(reviews []domain.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, NewReviewResponse(&reviews[i]))
	}
	return out
}
