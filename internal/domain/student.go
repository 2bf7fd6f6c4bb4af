package domain

import "time"

// Role enumerates portal roles. Every account starts as a student;
// admin and TPO (training & placement officer) roles are granted manually.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
	RoleTPO     Role = "tpo"
)

// StudentProfile carries optional academic details used for eligibility checks.
type StudentProfile struct {
	GPA        *float64 `json:"gpa,omitempty"`
	Year       *int     `json:"year,omitempty"`
	Department *string  `json:"department,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	ResumeURL  *string  `json:"resumeUrl,omitempty"`
}

// StudentPreferences stores job-search preferences.
type StudentPreferences struct {
	JobTypes []string `json:"jobTypes,omitempty"`
	Location *string  `json:"location,omitempty"`
}

// Student is the domain model for portal accounts. Students are never
// hard-deleted.
type Student struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Profile      StudentProfile
	Preferences  StudentPreferences
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
