package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/placement-portal/internal/domain"
	"github.com/spec-kit/placement-portal/internal/events"
	"github.com/spec-kit/placement-portal/internal/feed"
	"github.com/spec-kit/placement-portal/internal/repository"
	apperrors "github.com/spec-kit/placement-portal/pkg/util"
)

// ReviewService manages the anonymous experience wall.
type ReviewService struct {
	reviews    repository.ReviewRepository
	dispatcher events.Dispatcher
	feed       feed.Feed
}

// NewReviewService constructs the service.
func NewReviewService(reviews repository.ReviewRepository, dispatcher events.Dispatcher, f feed.Feed) *ReviewService {
	return &ReviewService{reviews: reviews, dispatcher: dispatcher, feed: f}
}

// ReviewCreateInput describes a new review.
type ReviewCreateInput struct {
	Company    string
	Rating     int
	Difficulty domain.ReviewDifficulty
	Text       string
}

// PostReview stores an experience review. Reviews are served anonymously;
// the author id is kept for moderation and verification is always false at
// creation.
func (s *ReviewService) PostReview(ctx context.Context, actor *domain.Student, input ReviewCreateInput) (*domain.Review, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthenticated("sign in to post a review")
	}
	if strings.TrimSpace(input.Company) == "" || strings.TrimSpace(input.Text) == "" {
		return nil, apperrors.NewValidationError("company name and review text required", nil)
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", nil)
	}
	switch input.Difficulty {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
	default:
		return nil, apperrors.NewValidationError("difficulty must be easy, medium or hard", nil)
	}

	review := &domain.Review{
		Company:    strings.TrimSpace(input.Company),
		Rating:     input.Rating,
		Difficulty: input.Difficulty,
		Text:       strings.TrimSpace(input.Text),
		StudentID:  actor.ID,
		Verified:   false,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, apperrors.NewPersistenceFailure(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventReviewPosted,
			SubjectID: review.ID,
			Actor:     events.Actor{StudentID: actor.ID, Role: actor.Role},
			Timestamp: time.Now(),
			Payload:   events.ReviewPostedPayload{Company: review.Company, Rating: review.Rating},
		})
	}
	if s.feed != nil {
		s.feed.Publish(ctx, feed.Change{
			Collection: CollectionReviews,
			Op:         feed.OpCreated,
			DocumentID: review.ID,
		})
	}
	return review, nil
}

// ListReviews returns reviews ordered newest first.
func (s *ReviewService) ListReviews(ctx context.Context, limit, offset int) ([]domain.Review, error) {
	return s.reviews.List(ctx, limit, offset)
}
