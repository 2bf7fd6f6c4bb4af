package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/placement-portal/internal/domain"
	apperrors "github.com/spec-kit/placement-portal/pkg/util"
)

func validPostingInput() PostingCreateInput {
	return PostingCreateInput{
		Title:    "SRE Intern",
		Company:  "Globex",
		Stipend:  2000,
		Deadline: time.Now().Add(14 * 24 * time.Hour),
	}
}

func TestCreatePostingRequiresStaffRole(t *testing.T) {
	repo := newFakePostingRepo()
	svc := NewPostingService(repo, nil, nil)

	_, err := svc.CreatePosting(context.Background(), studentWith(floatPtr(9.0), intPtr(3)), validPostingInput())
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	_, err = svc.CreatePosting(context.Background(), nil, validPostingInput())
	require.Error(t, err)
	assert.Equal(t, "UNAUTHENTICATED", apperrors.ToDomainError(err).Code)
}

func TestCreatePostingDefaults(t *testing.T) {
	repo := newFakePostingRepo()
	svc := NewPostingService(repo, nil, nil)
	tpo := &domain.Student{ID: "tpo-1", Role: domain.RoleTPO}

	posting, err := svc.CreatePosting(context.Background(), tpo, validPostingInput())
	require.NoError(t, err)

	assert.Equal(t, domain.PostingStatusOpen, posting.Status)
	assert.Equal(t, 0, posting.Applicants)
	assert.NotEmpty(t, posting.ID)
}

func TestClosePostingIsIdempotentError(t *testing.T) {
	repo := newFakePostingRepo()
	svc := NewPostingService(repo, nil, nil)
	tpo := &domain.Student{ID: "tpo-1", Role: domain.RoleTPO}

	posting, err := svc.CreatePosting(context.Background(), tpo, validPostingInput())
	require.NoError(t, err)

	closed, err := svc.ClosePosting(context.Background(), tpo, posting.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PostingStatusClosed, closed.Status)

	_, err = svc.ClosePosting(context.Background(), tpo, posting.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}
