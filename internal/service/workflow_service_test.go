package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/placement-portal/internal/domain"
	"github.com/spec-kit/placement-portal/internal/repository"
	apperrors "github.com/spec-kit/placement-portal/pkg/util"
)

type fakePostingRepo struct {
	postings   map[string]*domain.Posting
	failReads  bool
	failWrites bool
	readCount  int
}

func newFakePostingRepo() *fakePostingRepo {
	return &fakePostingRepo{postings: make(map[string]*domain.Posting)}
}

func (r *fakePostingRepo) Create(_ context.Context, posting *domain.Posting) error {
	if r.failWrites {
		return errors.New("write refused")
	}
	if posting.ID == "" {
		posting.ID = fmt.Sprintf("posting-%d", len(r.postings)+1)
	}
	posting.CreatedAt = time.Now()
	copied := *posting
	r.postings[posting.ID] = &copied
	return nil
}

func (r *fakePostingRepo) GetByID(_ context.Context, id string) (*domain.Posting, error) {
	r.readCount++
	if r.failReads {
		return nil, errors.New("read refused")
	}
	posting, ok := r.postings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *posting
	return &copied, nil
}

func (r *fakePostingRepo) List(_ context.Context, filter repository.PostingFilter) ([]domain.Posting, error) {
	out := make([]domain.Posting, 0, len(r.postings))
	for _, p := range r.postings {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Deadline.Before(out[j].Deadline) })
	return out, nil
}

func (r *fakePostingRepo) UpdateApplicants(_ context.Context, id string, applicants int) error {
	if r.failWrites {
		return errors.New("write refused")
	}
	posting, ok := r.postings[id]
	if !ok {
		return pgx.ErrNoRows
	}
	posting.Applicants = applicants
	return nil
}

func (r *fakePostingRepo) UpdateStatus(_ context.Context, id string, status domain.PostingStatus) error {
	posting, ok := r.postings[id]
	if !ok {
		return pgx.ErrNoRows
	}
	posting.Status = status
	return nil
}

type fakeApplicationRepo struct {
	apps       map[string]*domain.Application
	order      []string
	failWrites bool
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]*domain.Application)}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *domain.Application) error {
	if r.failWrites {
		return errors.New("write refused")
	}
	if app.ID == "" {
		app.ID = fmt.Sprintf("app-%d", len(r.apps)+1)
	}
	app.CreatedAt = time.Now()
	copied := *app
	r.apps[app.ID] = &copied
	r.order = append(r.order, app.ID)
	return nil
}

func (r *fakeApplicationRepo) Update(_ context.Context, app *domain.Application) error {
	if r.failWrites {
		return errors.New("write refused")
	}
	if _, ok := r.apps[app.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *app
	r.apps[app.ID] = &copied
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) ListByStudent(_ context.Context, studentID string) ([]domain.Application, error) {
	out := make([]domain.Application, 0)
	// Most recent first.
	for i := len(r.order) - 1; i >= 0; i-- {
		app := r.apps[r.order[i]]
		if app.StudentID == studentID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListAll(_ context.Context) ([]domain.Application, error) {
	out := make([]domain.Application, 0, len(r.apps))
	for _, id := range r.order {
		out = append(out, *r.apps[id])
	}
	return out, nil
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func studentWith(gpa *float64, year *int) *domain.Student {
	return &domain.Student{
		ID:    "student-1",
		Name:  "Asha",
		Email: "asha@example.com",
		Role:  domain.RoleStudent,
		Profile: domain.StudentProfile{
			GPA:  gpa,
			Year: year,
		},
	}
}

func newWorkflowFixture() (*WorkflowService, *fakePostingRepo, *fakeApplicationRepo) {
	postings := newFakePostingRepo()
	apps := newFakeApplicationRepo()
	svc := NewWorkflowService(WorkflowDependencies{
		PostingRepo:     postings,
		ApplicationRepo: apps,
	})
	return svc, postings, apps
}

func seedPosting(postings *fakePostingRepo, eligibility domain.EligibilityCriteria) *domain.Posting {
	posting := &domain.Posting{
		Title:       "Backend Intern",
		Company:     "Acme",
		Stipend:     1500,
		Deadline:    time.Now().Add(30 * 24 * time.Hour),
		Eligibility: eligibility,
		Status:      domain.PostingStatusOpen,
	}
	_ = postings.Create(context.Background(), posting)
	return posting
}

func TestSubmitApplicationRejectsLowGPA(t *testing.T) {
	svc, postings, apps := newWorkflowFixture()
	posting := seedPosting(postings, domain.EligibilityCriteria{
		MinGPA: floatPtr(8.0),
		Years:  []int{3, 4},
	})

	_, err := svc.SubmitApplication(context.Background(), studentWith(floatPtr(7.5), intPtr(3)), posting.ID)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "INELIGIBLE_GPA", domainErr.Code)
	assert.Equal(t, 8.0, domainErr.Details["required"])
	assert.Equal(t, 7.5, domainErr.Details["actual"])

	assert.Empty(t, apps.apps, "rejected submission must leave no application")
	stored, _ := postings.GetByID(context.Background(), posting.ID)
	assert.Equal(t, 0, stored.Applicants, "rejected submission must not bump the counter")
}

func TestSubmitApplicationSucceedsForEligibleStudent(t *testing.T) {
	svc, postings, apps := newWorkflowFixture()
	posting := seedPosting(postings, domain.EligibilityCriteria{
		MinGPA: floatPtr(8.0),
		Years:  []int{3, 4},
	})

	app, err := svc.SubmitApplication(context.Background(), studentWith(floatPtr(8.5), intPtr(4)), posting.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.ApplicationStatusApplied, app.Status)
	require.Len(t, app.Timeline, 1)
	assert.Equal(t, "Applied", app.Timeline[0].Event)
	assert.Contains(t, app.Timeline[0].Description, "Backend Intern")
	assert.Contains(t, app.Timeline[0].Description, "Acme")

	require.Len(t, apps.apps, 1)
	stored, _ := postings.GetByID(context.Background(), posting.ID)
	assert.Equal(t, 1, stored.Applicants)
}

func TestSubmitApplicationRejectsWrongYear(t *testing.T) {
	svc, postings, _ := newWorkflowFixture()
	posting := seedPosting(postings, domain.EligibilityCriteria{Years: []int{3, 4}})

	_, err := svc.SubmitApplication(context.Background(), studentWith(floatPtr(9.0), intPtr(2)), posting.ID)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "INELIGIBLE_YEAR", domainErr.Code)
	assert.Equal(t, []int{3, 4}, domainErr.Details["allowed"])
	assert.Equal(t, 2, domainErr.Details["actual"])
}

func TestSubmitApplicationSkipsYearCheckWhenYearAbsent(t *testing.T) {
	svc, postings, _ := newWorkflowFixture()
	posting := seedPosting(postings, domain.EligibilityCriteria{Years: []int{4}})

	_, err := svc.SubmitApplication(context.Background(), studentWith(floatPtr(9.0), nil), posting.ID)
	require.NoError(t, err, "a profile without a year passes any year restriction")
}

func TestSubmitApplicationTreatsMissingGPAAsZero(t *testing.T) {
	svc, postings, _ := newWorkflowFixture()
	posting := seedPosting(postings, domain.EligibilityCriteria{MinGPA: floatPtr(6.0)})

	_, err := svc.SubmitApplication(context.Background(), studentWith(nil, intPtr(3)), posting.ID)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "INELIGIBLE_GPA", domainErr.Code)
	assert.Equal(t, 0.0, domainErr.Details["actual"])
}

func TestSubmitApplicationRequiresActor(t *testing.T) {
	svc, postings, _ := newWorkflowFixture()
	posting := seedPosting(postings, domain.EligibilityCriteria{})

	_, err := svc.SubmitApplication(context.Background(), nil, posting.ID)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHENTICATED", apperrors.ToDomainError(err).Code)
}

func TestSubmitApplicationUnknownPosting(t *testing.T) {
	svc, _, _ := newWorkflowFixture()

	_, err := svc.SubmitApplication(context.Background(), studentWith(floatPtr(9.0), intPtr(3)), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestSubmitApplicationAllowsDuplicates(t *testing.T) {
	svc, postings, apps := newWorkflowFixture()
	posting := seedPosting(postings, domain.EligibilityCriteria{})
	actor := studentWith(floatPtr(9.0), intPtr(3))

	_, err := svc.SubmitApplication(context.Background(), actor, posting.ID)
	require.NoError(t, err)
	_, err = svc.SubmitApplication(context.Background(), actor, posting.ID)
	require.NoError(t, err)

	assert.Len(t, apps.apps, 2)
	stored, _ := postings.GetByID(context.Background(), posting.ID)
	assert.Equal(t, 2, stored.Applicants)
}

func TestSubmitApplicationToleratesCounterFailure(t *testing.T) {
	svc, postings, apps := newWorkflowFixture()
	posting := seedPosting(postings, domain.EligibilityCriteria{})

	// Once the application is written, a failed counter update must not
	// surface to the caller.
	postings.failWrites = true
	app, err := svc.SubmitApplication(context.Background(), studentWith(floatPtr(9.0), intPtr(3)), posting.ID)
	require.NoError(t, err)
	assert.NotNil(t, app)
	assert.Len(t, apps.apps, 1)

	postings.failWrites = false
	stored, _ := postings.GetByID(context.Background(), posting.ID)
	assert.Equal(t, 0, stored.Applicants)
}

func TestListApplicationsJoinsPostingSnapshots(t *testing.T) {
	svc, postings, apps := newWorkflowFixture()
	posting := seedPosting(postings, domain.EligibilityCriteria{})
	actor := studentWith(floatPtr(9.0), intPtr(3))

	_, err := svc.SubmitApplication(context.Background(), actor, posting.ID)
	require.NoError(t, err)

	// An application whose posting has vanished still lists, just without
	// a snapshot.
	_ = apps.Create(context.Background(), &domain.Application{
		StudentID: actor.ID,
		PostingID: "gone",
		Status:    domain.ApplicationStatusApplied,
	})

	views, err := svc.ListApplicationsForStudent(context.Background(), actor.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Nil(t, views[0].Posting)
	require.NotNil(t, views[1].Posting)
	assert.Equal(t, "Backend Intern", views[1].Posting.Title)
	assert.Equal(t, "Acme", views[1].Posting.Company)
}

func TestUpdateApplicationStatusTransitions(t *testing.T) {
	svc, postings, _ := newWorkflowFixture()
	posting := seedPosting(postings, domain.EligibilityCriteria{})
	actor := studentWith(floatPtr(9.0), intPtr(3))
	staff := &domain.Student{ID: "tpo-1", Role: domain.RoleTPO}

	app, err := svc.SubmitApplication(context.Background(), actor, posting.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateApplicationStatus(context.Background(), staff, app.ID, domain.ApplicationStatusInterviewing, "Shortlisted")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusInterviewing, updated.Status)
	require.Len(t, updated.Timeline, 2)
	assert.Equal(t, "Interviewing", updated.Timeline[1].Event)
	assert.Equal(t, "Shortlisted", updated.Timeline[1].Description)

	// applied -> accepted skips the pipeline and must be refused.
	_, err = svc.UpdateApplicationStatus(context.Background(), staff, app.ID, domain.ApplicationStatusAccepted, "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUpdateApplicationStatusRequiresStaff(t *testing.T) {
	svc, postings, _ := newWorkflowFixture()
	posting := seedPosting(postings, domain.EligibilityCriteria{})
	actor := studentWith(floatPtr(9.0), intPtr(3))

	app, err := svc.SubmitApplication(context.Background(), actor, posting.ID)
	require.NoError(t, err)

	_, err = svc.UpdateApplicationStatus(context.Background(), actor, app.ID, domain.ApplicationStatusInterviewing, "")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}
