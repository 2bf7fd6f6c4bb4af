package dto

import (
	"time"

	"github.com/spec-kit/placement-portal/internal/domain"
	"github.com/spec-kit/placement-portal/internal/service"
)

// SubmitApplicationRequest names the posting to apply to.
type SubmitApplicationRequest struct {
	PostingID string `json:"postingId" validate:"required"`
}

// UpdateApplicationStatusRequest is the staff payload for moving an
// application along the pipeline.
type UpdateApplicationStatusRequest struct {
	Status domain.ApplicationStatus `json:"status" validate:"required,oneof=interviewing offer_received rejected accepted"`
	Note   string                   `json:"note,omitempty" validate:"max=500"`
}

// ApplicationResponse is the application shape returned to students.
type ApplicationResponse struct {
	ID        string                   `json:"id"`
	StudentID string                   `json:"studentId"`
	PostingID string                   `json:"postingId"`
	Status    domain.ApplicationStatus `json:"status"`
	Timeline  []domain.TimelineEvent   `json:"timeline"`
	Documents []string                 `json:"documents,omitempty"`
	Posting   *domain.PostingSnapshot  `json:"posting,omitempty"`
	CreatedAt time.Time                `json:"createdAt"`
}

// NewApplicationResponse maps a domain application.
func NewApplicationResponse(app *domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:        app.ID,
		StudentID: app.StudentID,
		PostingID: app.PostingID,
		Status:    app.Status,
		Timeline:  app.Timeline,
		Documents: app.Documents,
		CreatedAt: app.CreatedAt,
	}
}

// NewApplicationViewResponse maps an application joined with its posting
// snapshot.
func NewApplicationViewResponse(view service.ApplicationView) ApplicationResponse {
	resp := NewApplicationResponse(&view.Application)
	resp.Posting = view.Posting
	return resp
}

// NewApplicationViewListResponse maps a slice of joined views.
func NewApplicationViewListResponse(views []service.ApplicationView) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(views))
	for _, view := range views {
		out = append(out, NewApplicationViewResponse(view))
	}
	return out
}
