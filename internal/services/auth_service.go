package services

import (
	"time"

	"gorm.io/gorm"

	"kamau_backend/internal/auth"
	"kamau_backend/internal/logger"
	"kamau_backend/internal/models"
	"kamau_backend/internal/repositories"
	"kamau_backend/internal/services/dto"
	"kamau_backend/pkg/apperrors"
)

// AuthService covers the back-office session lifecycle: login, token
// verification against the live account, and profile self-service.
type AuthService interface {
	Login(db *gorm.DB, req *dto.AdminLoginRequest, ip, userAgent string) (*dto.AdminLoginResponse, error)
	// VerifyToken validates the bearer token AND re-checks the account
	// is still active; a deactivated admin's token is rejected even
	// while its signature and expiry are valid.
	VerifyToken(db *gorm.DB, tokenStr string) (*dto.AdminSummary, error)
	GetProfile(db *gorm.DB, adminID string) (*models.Admin, error)
	UpdateProfile(db *gorm.DB, adminID string, req *dto.UpdateAdminProfileRequest) (*models.Admin, error)
	ChangePassword(db *gorm.DB, adminID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	adminRepo repositories.AdminRepository
	tokens    *auth.TokenManager
}

func NewAuthService(adminRepo repositories.AdminRepository, tokens *auth.TokenManager) AuthService {
	return &authService{adminRepo: adminRepo, tokens: tokens}
}

func (s *authService) Login(db *gorm.DB, req *dto.AdminLoginRequest, ip, userAgent string) (*dto.AdminLoginResponse, error) {
	admin, err := s.adminRepo.FindActiveByLogin(db, req.Username)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			// Same error as a wrong password: no account probing.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err, "admin login lookup")
	}

	if !auth.CheckPasswordHash(req.Password, admin.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueAdminToken(admin)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	admin.RecordLogin(time.Now(), ip, userAgent)
	if err := s.adminRepo.Update(db, admin); err != nil {
		// The session is already issued; a failed history write should
		// not fail the login.
		logger.WithError(err).Warn("failed to record admin login event", "admin_id", admin.ID)
	}

	return &dto.AdminLoginResponse{
		Token: token,
		Admin: dto.NewAdminSummary(admin),
	}, nil
}

func (s *authService) VerifyToken(db *gorm.DB, tokenStr string) (*dto.AdminSummary, error) {
	claims, err := s.tokens.ParseToken(tokenStr)
	if err != nil {
		if apperrors.Is(err, auth.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	admin, err := s.adminRepo.FindByID(db, claims.AccountID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.ErrAccountInactive
		}
		return nil, apperrors.DatabaseError(err, "admin token re-check")
	}
	if !admin.IsActive {
		return nil, apperrors.ErrAccountInactive
	}

	summary := dto.NewAdminSummary(admin)
	return &summary, nil
}

func (s *authService) GetProfile(db *gorm.DB, adminID string) (*models.Admin, error) {
	admin, err := s.adminRepo.FindByID(db, adminID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.NewNotFoundError("Admin not found")
		}
		return nil, apperrors.DatabaseError(err, "admin profile lookup")
	}
	return admin, nil
}

func (s *authService) UpdateProfile(db *gorm.DB, adminID string, req *dto.UpdateAdminProfileRequest) (*models.Admin, error) {
	admin, err := s.GetProfile(db, adminID)
	if err != nil {
		return nil, err
	}

	admin.FullName = req.FullName
	if err := s.adminRepo.Update(db, admin); err != nil {
		return nil, apperrors.DatabaseError(err, "admin profile update")
	}
	return admin, nil
}

func (s *authService) ChangePassword(db *gorm.DB, adminID string, req *dto.ChangePasswordRequest) error {
	admin, err := s.GetProfile(db, adminID)
	if err != nil {
		return err
	}

	if !auth.CheckPasswordHash(req.OldPassword, admin.PasswordHash) {
		return apperrors.NewUnauthorizedError("Old password is incorrect")
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	admin.PasswordHash = hash

	if err := s.adminRepo.Update(db, admin); err != nil {
		return apperrors.DatabaseError(err, "admin password update")
	}
	return nil
}
