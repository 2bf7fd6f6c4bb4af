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

// PostingService manages internship postings.
type PostingService struct {
	postings   repository.PostingRepository
	dispatcher events.Dispatcher
	feed       feed.Feed
}

// NewPostingService constructs the service.
func NewPostingService(postings repository.PostingRepository, dispatcher events.Dispatcher, f feed.Feed) *PostingService {
	return &PostingService{postings: postings, dispatcher: dispatcher, feed: f}
}

// PostingCreateInput describes the posting creation payload.
type PostingCreateInput struct {
	Title       string
	Company     string
	Stipend     float64
	Deadline    time.Time
	Eligibility domain.EligibilityCriteria
	Description string
	Location    string
	Type        string
}

// CreatePosting publishes a new open posting. Staff only.
func (s *PostingService) CreatePosting(ctx context.Context, actor *domain.Student, input PostingCreateInput) (*domain.Posting, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthenticated("sign in required")
	}
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleTPO {
		return nil, apperrors.NewForbidden("staff role required")
	}
	if input.Stipend < 0 {
		return nil, apperrors.NewValidationError("stipend cannot be negative", nil)
	}

	posting := &domain.Posting{
		Title:       strings.TrimSpace(input.Title),
		Company:     strings.TrimSpace(input.Company),
		Stipend:     input.Stipend,
		Deadline:    input.Deadline,
		Eligibility: input.Eligibility,
		Applicants:  0,
		Status:      domain.PostingStatusOpen,
		Description: strings.TrimSpace(input.Description),
		Location:    strings.TrimSpace(input.Location),
		Type:        strings.TrimSpace(input.Type),
	}
	if posting.Title == "" || posting.Company == "" {
		return nil, apperrors.NewValidationError("title and company required", nil)
	}

	if err := s.postings.Create(ctx, posting); err != nil {
		return nil, apperrors.NewPersistenceFailure(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPostingCreated,
			SubjectID: posting.ID,
			Actor:     events.Actor{StudentID: actor.ID, Role: actor.Role},
			Timestamp: time.Now(),
			Payload: events.PostingCreatedPayload{
				Title:    posting.Title,
				Company:  posting.Company,
				Deadline: posting.Deadline,
			},
		})
	}
	if s.feed != nil {
		s.feed.Publish(ctx, feed.Change{
			Collection: CollectionPostings,
			Op:         feed.OpCreated,
			DocumentID: posting.ID,
			Data:       posting,
		})
	}
	return posting, nil
}

// ListPostings returns postings filtered by status, ordered by deadline.
func (s *PostingService) ListPostings(ctx context.Context, status *domain.PostingStatus, limit, offset int) ([]domain.Posting, error) {
	return s.postings.List(ctx, repository.PostingFilter{Status: status, Limit: limit, Offset: offset})
}

// GetPosting fetches one posting.
func (s *PostingService) GetPosting(ctx context.Context, id string) (*domain.Posting, error) {
	return s.postings.GetByID(ctx, id)
}

// ClosePosting transitions an open posting to closed. Staff only.
func (s *PostingService) ClosePosting(ctx context.Context, actor *domain.Student, id string) (*domain.Posting, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthenticated("sign in required")
	}
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleTPO {
		return nil, apperrors.NewForbidden("staff role required")
	}

	posting, err := s.postings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if posting.Status == domain.PostingStatusClosed {
		return nil, apperrors.NewConflict("posting already closed", nil)
	}

	if err := s.postings.UpdateStatus(ctx, posting.ID, domain.PostingStatusClosed); err != nil {
		return nil, apperrors.NewPersistenceFailure(err)
	}
	posting.Status = domain.PostingStatusClosed

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPostingClosed,
			SubjectID: posting.ID,
			Actor:     events.Actor{StudentID: actor.ID, Role: actor.Role},
			Timestamp: time.Now(),
		})
	}
	if s.feed != nil {
		s.feed.Publish(ctx, feed.Change{
			Collection: CollectionPostings,
			Op:         feed.OpUpdated,
			DocumentID: posting.ID,
			Data:       posting,
		})
	}
	return posting, nil
}
