package events

import (
	"time"

	"github.com/spec-kit/placement-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventPostingCreated           EventType = "posting_created"
	EventPostingClosed            EventType = "posting_closed"
	EventReviewPosted             EventType = "review_posted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	StudentID string      `json:"student_id"`
	Role      domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	PostingID string `json:"posting_id"`
	Title     string `json:"title"`
	Company   string `json:"company"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	OldStatus domain.ApplicationStatus `json:"old_status"`
	NewStatus domain.ApplicationStatus `json:"new_status"`
	Note      string                   `json:"note,omitempty"`
}

// PostingCreatedPayload payload.
type PostingCreatedPayload struct {
	Title    string    `json:"title"`
	Company  string    `json:"company"`
	Deadline time.Time `json:"deadline"`
}

// ReviewPostedPayload payload.
type ReviewPostedPayload struct {
	Company string `json:"company"`
	Rating  int    `json:"rating"`
}
