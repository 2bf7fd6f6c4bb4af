package domain

import "time"

// ApplicationStatus enumerates pipeline states for an application.
type ApplicationStatus string

const (
	ApplicationStatusApplied       ApplicationStatus = "applied"
	ApplicationStatusInterviewing  ApplicationStatus = "interviewing"
	ApplicationStatusOfferReceived ApplicationStatus = "offer_received"
	ApplicationStatusRejected      ApplicationStatus = "rejected"
	ApplicationStatusAccepted      ApplicationStatus = "accepted"
)

// TimelineEvent is an append-only note describing a lifecycle change on an
// application. The timeline is ordered oldest-first and is never empty after
// creation.
type TimelineEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	Event       string    `json:"event"`
	Description string    `json:"description,omitempty"`
}

// Application records a student applying to one posting. Created only by the
// workflow engine with status "applied"; later transitions are staff actions.
type Application struct {
	ID        string
	StudentID string
	PostingID string
	Status    ApplicationStatus
	Timeline  []TimelineEvent
	Documents []string
	CreatedAt time.Time
}
