package domain

import "time"

// ReviewDifficulty rates the interview process.
type ReviewDifficulty string

const (
	DifficultyEasy   ReviewDifficulty = "easy"
	DifficultyMedium ReviewDifficulty = "medium"
	DifficultyHard   ReviewDifficulty = "hard"
)

// Review is an anonymous company-experience post. StudentID is stored for
// moderation but never exposed on the read side.
type Review struct {
	ID         string
	Company    string
	Rating     int
	Difficulty ReviewDifficulty
	Text       string
	StudentID  string
	Verified   bool
	CreatedAt  time.Time
}
