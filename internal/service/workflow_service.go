package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/placement-portal/internal/domain"
	"github.com/spec-kit/placement-portal/internal/events"
	"github.com/spec-kit/placement-portal/internal/feed"
	"github.com/spec-kit/placement-portal/internal/observability"
	"github.com/spec-kit/placement-portal/internal/repository"
	apperrors "github.com/spec-kit/placement-portal/pkg/util"
)

// Collection names used on the change feed.
const (
	CollectionApplications = "applications"
	CollectionPostings     = "postings"
	CollectionReviews      = "reviews"
)

// WorkflowService is the application workflow engine: it gates submissions on
// eligibility, creates the application with its initial timeline event and
// bumps the posting's applicant counter.
type WorkflowService struct {
	postings     repository.PostingRepository
	applications repository.ApplicationRepository
	dispatcher   events.Dispatcher
	feed         feed.Feed
	logger       *zap.Logger
	now          func() time.Time
}

// WorkflowDependencies bundles collaborators for the workflow engine.
type WorkflowDependencies struct {
	PostingRepo     repository.PostingRepository
	ApplicationRepo repository.ApplicationRepository
	Dispatcher      events.Dispatcher
	Feed            feed.Feed
	Logger          *zap.Logger
}

// NewWorkflowService constructs the engine.
func NewWorkflowService(deps WorkflowDependencies) *WorkflowService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkflowService{
		postings:     deps.PostingRepo,
		applications: deps.ApplicationRepo,
		dispatcher:   deps.Dispatcher,
		feed:         deps.Feed,
		logger:       logger,
		now:          time.Now,
	}
}

// ApplicationView joins an application with a snapshot of its posting's title
// and company, taken at read time.
type ApplicationView struct {
	domain.Application
	Posting *domain.PostingSnapshot
}

// SubmitApplication validates eligibility and, on success, creates the
// application record and increments the posting's applicant counter.
//
// Checks run in a fixed order and the first failure aborts with no side
// effect. The department criterion exists on postings but is deliberately not
// enforced here. The counter update is a read-then-write without concurrency
// control: concurrent submits can lose an increment, which is tolerated for a
// display counter. There is also no duplicate-application guard; two submits
// for the same posting both succeed.
func (s *WorkflowService) SubmitApplication(ctx context.Context, actor *domain.Student, postingID string) (*domain.Application, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthenticated("sign in to apply")
	}

	posting, err := s.postings.GetByID(ctx, postingID)
	if err != nil {
		return nil, err
	}

	if min := posting.Eligibility.MinGPA; min != nil {
		actual := 0.0
		if actor.Profile.GPA != nil {
			actual = *actor.Profile.GPA
		}
		if actual < *min {
			observability.EligibilityRejections.WithLabelValues("gpa").Inc()
			return nil, apperrors.NewIneligibleGPA(*min, actual)
		}
	}

	if allowed := posting.Eligibility.Years; len(allowed) > 0 && actor.Profile.Year != nil {
		if !containsInt(allowed, *actor.Profile.Year) {
			observability.EligibilityRejections.WithLabelValues("year").Inc()
			return nil, apperrors.NewIneligibleYear(allowed, *actor.Profile.Year)
		}
	}

	now := s.now()
	app := &domain.Application{
		StudentID: actor.ID,
		PostingID: posting.ID,
		Status:    domain.ApplicationStatusApplied,
		Timeline: []domain.TimelineEvent{{
			Timestamp:   now,
			Event:       "Applied",
			Description: fmt.Sprintf("Applied to %s at %s", posting.Title, posting.Company),
		}},
	}

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, apperrors.NewPersistenceFailure(err)
	}

	// The application committed; the counter is best-effort from here on.
	s.incrementApplicants(ctx, posting.ID)

	observability.ApplicationsSubmitted.Inc()
	s.publishEvent(ctx, events.Event{
		Type:      events.EventApplicationSubmitted,
		SubjectID: app.ID,
		Actor:     events.Actor{StudentID: actor.ID, Role: actor.Role},
		Payload: events.ApplicationSubmittedPayload{
			PostingID: posting.ID,
			Title:     posting.Title,
			Company:   posting.Company,
		},
	})
	s.publishChange(ctx, feed.Change{
		Collection: CollectionApplications,
		Op:         feed.OpCreated,
		DocumentID: app.ID,
		Data:       app,
	})

	return app, nil
}

// incrementApplicants re-reads the counter and writes it back plus one.
// Failures are logged, never surfaced: the application record is the critical
// write and it has already committed.
func (s *WorkflowService) incrementApplicants(ctx context.Context, postingID string) {
	posting, err := s.postings.GetByID(ctx, postingID)
	if err != nil {
		s.logger.Warn("applicant counter read failed", zap.String("posting_id", postingID), zap.Error(err))
		return
	}
	if err := s.postings.UpdateApplicants(ctx, postingID, posting.Applicants+1); err != nil {
		s.logger.Warn("applicant counter increment failed", zap.String("posting_id", postingID), zap.Error(err))
		return
	}
	s.publishChange(ctx, feed.Change{
		Collection: CollectionPostings,
		Op:         feed.OpUpdated,
		DocumentID: postingID,
	})
}

// ListApplicationsForStudent returns the student's applications ordered by
// recency, each joined with its posting's title and company at read time.
func (s *WorkflowService) ListApplicationsForStudent(ctx context.Context, studentID string) ([]ApplicationView, error) {
	apps, err := s.applications.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	snapshots := make(map[string]*domain.PostingSnapshot)
	views := make([]ApplicationView, 0, len(apps))
	for _, app := range apps {
		snap, ok := snapshots[app.PostingID]
		if !ok {
			if posting, err := s.postings.GetByID(ctx, app.PostingID); err == nil {
				snap = &domain.PostingSnapshot{Title: posting.Title, Company: posting.Company}
			} else {
				s.logger.Warn("posting lookup failed for application",
					zap.String("application_id", app.ID),
					zap.String("posting_id", app.PostingID),
					zap.Error(err))
			}
			snapshots[app.PostingID] = snap
		}
		views = append(views, ApplicationView{Application: app, Posting: snap})
	}
	return views, nil
}

// UpdateApplicationStatus moves an application along the pipeline. Staff only;
// the transition graph is enforced and a timeline event is appended.
func (s *WorkflowService) UpdateApplicationStatus(ctx context.Context, actor *domain.Student, applicationID string, newStatus domain.ApplicationStatus, note string) (*domain.Application, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthenticated("sign in required")
	}
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleTPO {
		return nil, apperrors.NewForbidden("staff role required")
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !isValidTransition(app.Status, newStatus) {
		return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
			"from": app.Status,
			"to":   newStatus,
		})
	}

	oldStatus := app.Status
	description := note
	if description == "" {
		description = fmt.Sprintf("Status changed from %s to %s", oldStatus, newStatus)
	}
	app.Status = newStatus
	app.Timeline = append(app.Timeline, domain.TimelineEvent{
		Timestamp:   s.now(),
		Event:       statusEventLabels[newStatus],
		Description: description,
	})

	if err := s.applications.Update(ctx, app); err != nil {
		return nil, apperrors.NewPersistenceFailure(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventApplicationStatusChanged,
		SubjectID: app.ID,
		Actor:     events.Actor{StudentID: actor.ID, Role: actor.Role},
		Payload: events.ApplicationStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Note:      note,
		},
	})
	s.publishChange(ctx, feed.Change{
		Collection: CollectionApplications,
		Op:         feed.OpUpdated,
		DocumentID: app.ID,
		Data:       app,
	})
	return app, nil
}

var allowedTransitions = map[domain.ApplicationStatus][]domain.ApplicationStatus{
	domain.ApplicationStatusApplied:       {domain.ApplicationStatusInterviewing, domain.ApplicationStatusRejected},
	domain.ApplicationStatusInterviewing:  {domain.ApplicationStatusOfferReceived, domain.ApplicationStatusRejected},
	domain.ApplicationStatusOfferReceived: {domain.ApplicationStatusAccepted},
	domain.ApplicationStatusAccepted:      {},
	domain.ApplicationStatusRejected:      {},
}

var statusEventLabels = map[domain.ApplicationStatus]string{
	domain.ApplicationStatusInterviewing:  "Interviewing",
	domain.ApplicationStatusOfferReceived: "Offer Received",
	domain.ApplicationStatusAccepted:      "Offer Accepted",
	domain.ApplicationStatusRejected:      "Rejected",
}

func isValidTransition(current, next domain.ApplicationStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

func containsInt(values []int, target int) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func (s *WorkflowService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func (s *WorkflowService) publishChange(ctx context.Context, change feed.Change) {
	if s.feed == nil {
		return
	}
	s.feed.Publish(ctx, change)
}
