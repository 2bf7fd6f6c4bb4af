package dto

import (
	"time"

	"github.com/spec-kit/placement-portal/internal/domain"
)

// CreatePostingRequest is the staff payload for publishing a posting.
type CreatePostingRequest struct {
	Title       string                     `json:"title" validate:"required,min=2,max=200"`
	Company     string                     `json:"company" validate:"required,min=2,max=200"`
	Stipend     float64                    `json:"stipend" validate:"gte=0"`
	Deadline    time.Time                  `json:"deadline" validate:"required"`
	Eligibility domain.EligibilityCriteria `json:"eligibility"`
	Description string                     `json:"description"`
	Location    string                     `json:"location"`
	Type        string                     `json:"type"`
}

// PostingResponse is the public posting shape.
type PostingResponse struct {
	ID          string                     `json:"id"`
	Title       string                     `json:"title"`
	Company     string                     `json:"company"`
	Stipend     float64                    `json:"stipend"`
	Deadline    time.Time                  `json:"deadline"`
	Eligibility domain.EligibilityCriteria `json:"eligibility"`
	Applicants  int                        `json:"applicants"`
	Status      domain.PostingStatus       `json:"status"`
	Description string                     `json:"description,omitempty"`
	Location    string                     `json:"location,omitempty"`
	Type        string                     `json:"type,omitempty"`
	CreatedAt   time.Time                  `json:"createdAt"`
}

// NewPostingResponse maps a domain posting to its API shape.
func NewPostingResponse(p *domain.Posting) PostingResponse {
	return PostingResponse{
		ID:          p.ID,
		Title:       p.Title,
		Company:     p.Company,
		Stipend:     p.Stipend,
		Deadline:    p.Deadline,
		Eligibility: p.Eligibility,
		Applicants:  p.Applicants,
		Status:      p.Status,
		Description: p.Description,
		Location:    p.Location,
		Type:        p.Type,
		CreatedAt:   p.CreatedAt,
	}
}

// NewPostingListResponse maps a slice of postings.
func NewPostingListResponse(postings []domain.Posting) []PostingResponse {
	out := make([]PostingResponse, 0, len(postings))
	for i := range postings {
		out = append(out, NewPostingResponse(&postings[i]))
	}
	return out
}
