package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"kamau_backend/internal/logger"
	"kamau_backend/internal/models"
	"kamau_backend/internal/repositories"
	"kamau_backend/pkg/apperrors"
)

// VerificationService drives the professional verification workflow.
//
// State machine: pending is the sole entry state; verified and rejected
// are terminal. Approve and Reject only move out of pending, Reopen moves
// a terminal record back to pending for re-review. Re-applying the state a
// record already holds is an idempotent success.
type VerificationService interface {
	Approve(db *gorm.DB, id string) (*models.Professional, error)
	Reject(db *gorm.DB, id string, reason string) (*models.Professional, error)
	Reopen(db *gorm.DB, id string) (*models.Professional, error)
}

type verificationService struct {
	profRepo repositories.ProfessionalRepository
}

func NewVerificationService(profRepo repositories.ProfessionalRepository) VerificationService {
	return &verificationService{profRepo: profRepo}
}

func (s *verificationService) Approve(db *gorm.DB, id string) (*models.Professional, error) {
	now := time.Now()
	return s.transition(db, id, repositories.StatusTransition{
		Status:           models.VerificationStatusVerified,
		VerificationDate: &now,
	})
}

func (s *verificationService) Reject(db *gorm.DB, id string, reason string) (*models.Professional, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.ValidationError(map[string]string{
			"reason": "Rejection reason is required",
		})
	}
	return s.transition(db, id, repositories.StatusTransition{
		Status:          models.VerificationStatusRejected,
		RejectionReason: reason,
	})
}

func (s *verificationService) Reopen(db *gorm.DB, id string) (*models.Professional, error) {
	prof, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	if prof.VerificationStatus == models.VerificationStatusPending {
		return prof, nil
	}

	updated, err := s.profRepo.Transition(db, id, prof.Revision, repositories.StatusTransition{
		Status: models.VerificationStatusPending,
	})
	if err != nil {
		return nil, s.mapTransitionError(err, "reopen")
	}
	logger.Info("application reopened", "professional_id", id, "from", prof.VerificationStatus)
	return updated, nil
}

// transition runs the shared out-of-pending path for Approve and Reject.
func (s *verificationService) transition(db *gorm.DB, id string, t repositories.StatusTransition) (*models.Professional, error) {
	prof, err := s.find(db, id)
	if err != nil {
		return nil, err
	}

	// Re-applying the state already held succeeds and refreshes the
	// decision fields; only crossing between terminal states is refused.
	if prof.VerificationStatus != models.VerificationStatusPending && prof.VerificationStatus != t.Status {
		return nil, apperrors.ErrInvalidStatus("verification", fmt.Sprintf(
			"Cannot move application from '%s' to '%s'", prof.VerificationStatus, t.Status))
	}

	updated, err := s.profRepo.Transition(db, id, prof.Revision, t)
	if err != nil {
		return nil, s.mapTransitionError(err, string(t.Status))
	}
	logger.Info("application status changed", "professional_id", id, "status", t.Status)
	return updated, nil
}

func (s *verificationService) find(db *gorm.DB, id string) (*models.Professional, error) {
	prof, err := s.profRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfessionalNotFound) {
			return nil, apperrors.NewNotFoundError("Professional not found")
		}
		return nil, apperrors.DatabaseError(err, "verification lookup")
	}
	return prof, nil
}

func (s *verificationService) mapTransitionError(err error, action string) error {
	switch {
	case apperrors.Is(err, repositories.ErrProfessionalNotFound):
		return apperrors.NewNotFoundError("Professional not found")
	case apperrors.Is(err, repositories.ErrRevisionConflict):
		return apperrors.ErrConflict(err, "verification", "Application was modified by another request, please retry")
	default:
		return apperrors.DatabaseError(err, "verification "+action)
	}
}
