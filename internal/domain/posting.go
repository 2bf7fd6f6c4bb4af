package domain

import "time"

// PostingStatus enumerates lifecycle states for internship postings.
type PostingStatus string

const (
	PostingStatusOpen   PostingStatus = "open"
	PostingStatusClosed PostingStatus = "closed"
)

// EligibilityCriteria restricts who may apply to a posting. A nil or empty
// criterion imposes no restriction.
type EligibilityCriteria struct {
	MinGPA      *float64 `json:"minGpa,omitempty"`
	Years       []int    `json:"year,omitempty"`
	Departments []string `json:"department,omitempty"`
}

// Posting is an internship opening published by the placement cell.
// A stipend of 0 means unpaid. Applicants only ever increases, and only
// through the application workflow.
type Posting struct {
	ID          string
	Title       string
	Company     string
	Stipend     float64
	Deadline    time.Time
	Eligibility EligibilityCriteria
	Applicants  int
	Status      PostingStatus
	Description string
	Location    string
	Type        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PostingSnapshot is the denormalized posting view attached to applications
// at read time.
type PostingSnapshot struct {
	Title   string `json:"title"`
	Company string `json:"company"`
}
