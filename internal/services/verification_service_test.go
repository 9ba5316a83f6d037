package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kamau_backend/internal/models"
	"kamau_backend/internal/repositories"
	"kamau_backend/pkg/apperrors"
)

// fakeProfessionalRepo keeps one record in memory and mirrors the real
// repository's revision-guarded Transition semantics.
type fakeProfessionalRepo struct {
	repositories.ProfessionalRepository

	record      *models.Professional
	transitions int

	// raceAfterFind bumps the revision after each read, simulating a
	// concurrent writer landing between find and transition.
	raceAfterFind bool
}

func (f *fakeProfessionalRepo) FindByID(_ *gorm.DB, id string) (*models.Professional, error) {
	if f.record == nil || f.record.ID != id {
		return nil, repositories.ErrProfessionalNotFound
	}
	copied := *f.record
	if f.raceAfterFind {
		f.record.Revision++
	}
	return &copied, nil
}

func (f *fakeProfessionalRepo) Transition(_ *gorm.DB, id string, expectedRevision int, t repositories.StatusTransition) (*models.Professional, error) {
	if f.record == nil || f.record.ID != id {
		return nil, repositories.ErrProfessionalNotFound
	}
	if f.record.Revision != expectedRevision {
		return nil, repositories.ErrRevisionConflict
	}
	f.transitions++
	f.record.VerificationStatus = t.Status
	f.record.VerificationDate = t.VerificationDate
	f.record.RejectionReason = t.RejectionReason
	f.record.Revision++
	copied := *f.record
	return &copied, nil
}

func newFakeRepo(status models.VerificationStatus) (*fakeProfessionalRepo, string) {
	pro := &models.Professional{
		FirstName:          "Ram",
		LastName:           "Shrestha",
		VerificationStatus: status,
	}
	pro.ID = uuid.NewString()
	return &fakeProfessionalRepo{record: pro}, pro.ID
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.HTTPCode
}

func TestApprove_FromPending(t *testing.T) {
	repo, id := newFakeRepo(models.VerificationStatusPending)
	svc := NewVerificationService(repo)

	updated, err := svc.Approve(nil, id)
	require.NoError(t, err)

	assert.Equal(t, models.VerificationStatusVerified, updated.VerificationStatus)
	require.NotNil(t, updated.VerificationDate)
	assert.Equal(t, 1, updated.Revision)
}

// Approving an already-verified record succeeds and refreshes the
// decision date rather than short-circuiting.
func TestApprove_ReapplyRefreshesDate(t *testing.T) {
	repo, id := newFakeRepo(models.VerificationStatusVerified)
	stale := time.Now().Add(-24 * time.Hour)
	repo.record.VerificationDate = &stale

	svc := NewVerificationService(repo)
	updated, err := svc.Approve(nil, id)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.transitions)
	assert.True(t, updated.VerificationDate.After(stale))
	assert.Equal(t, 1, updated.Revision)
}

func TestReject_BlankReasonNeverTouchesStore(t *testing.T) {
	repo, id := newFakeRepo(models.VerificationStatusPending)
	svc := NewVerificationService(repo)

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := svc.Reject(nil, id, reason)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	}
	assert.Equal(t, 0, repo.transitions)
	assert.Equal(t, models.VerificationStatusPending, repo.record.VerificationStatus)
}

func TestReject_TrimsReason(t *testing.T) {
	repo, id := newFakeRepo(models.VerificationStatusPending)
	svc := NewVerificationService(repo)

	updated, err := svc.Reject(nil, id, "  incomplete documents  ")
	require.NoError(t, err)
	assert.Equal(t, "incomplete documents", updated.RejectionReason)
}

func TestTransition_TerminalCrossingRefused(t *testing.T) {
	repo, id := newFakeRepo(models.VerificationStatusRejected)
	svc := NewVerificationService(repo)

	_, err := svc.Approve(nil, id)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	assert.Contains(t, err.Error(), "Cannot move application from 'rejected' to 'verified'")
	assert.Equal(t, 0, repo.transitions)
}

func TestReopen_ClearsDecisionFields(t *testing.T) {
	repo, id := newFakeRepo(models.VerificationStatusRejected)
	repo.record.RejectionReason = "illegible documents"
	svc := NewVerificationService(repo)

	updated, err := svc.Reopen(nil, id)
	require.NoError(t, err)

	assert.Equal(t, models.VerificationStatusPending, updated.VerificationStatus)
	assert.Empty(t, updated.RejectionReason)
	assert.Nil(t, updated.VerificationDate)
}

func TestReopen_PendingIsNoOp(t *testing.T) {
	repo, id := newFakeRepo(models.VerificationStatusPending)
	svc := NewVerificationService(repo)

	updated, err := svc.Reopen(nil, id)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.transitions)
	assert.Equal(t, 0, updated.Revision)
}

func TestTransition_RevisionConflictMapsToConflict(t *testing.T) {
	repo, id := newFakeRepo(models.VerificationStatusPending)
	repo.raceAfterFind = true
	svc := NewVerificationService(repo)

	_, err := svc.Approve(nil, id)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, httpCode(t, err))
}

func TestTransition_UnknownID(t *testing.T) {
	repo, _ := newFakeRepo(models.VerificationStatusPending)
	svc := NewVerificationService(repo)

	_, err := svc.Approve(nil, "2e9c1af0-0000-4000-8000-000000000000")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}
