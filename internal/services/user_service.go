package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"mime/multipart"
	"time"

	"gorm.io/gorm"

	"kamau_backend/internal/auth"
	"kamau_backend/internal/email"
	"kamau_backend/internal/logger"
	"kamau_backend/internal/models"
	"kamau_backend/internal/repositories"
	"kamau_backend/internal/services/dto"
	"kamau_backend/internal/storage"
	"kamau_backend/pkg/apperrors"
)

// otpValidity is how long a one-time code stays usable.
const otpValidity = 10 * time.Minute

// UserService covers the end-client account lifecycle: signup with email
// OTP verification, login, and profile self-service.
type UserService interface {
	Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error)
	VerifyOTP(db *gorm.DB, req *dto.VerifyOTPRequest) (*dto.UserLoginResponse, error)
	ResendOTP(db *gorm.DB, req *dto.ResendOTPRequest) error
	Login(db *gorm.DB, req *dto.UserLoginRequest) (*dto.UserLoginResponse, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateUserProfileRequest, image *multipart.FileHeader) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
	mailer   email.Provider
	files    storage.Storage
}

func NewUserService(userRepo repositories.UserRepository, tokens *auth.TokenManager, mailer email.Provider, files storage.Storage) UserService {
	return &userService{userRepo: userRepo, tokens: tokens, mailer: mailer, files: files}
}

func (s *userService) Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	expires := time.Now().Add(otpValidity)

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Address:      req.Address,
		OTP:          otp,
		OTPExpires:   &expires,
		IsVerified:   false,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.DatabaseError(err, "user signup")
	}

	if err := s.mailer.SendOTP(user.Email, user.Name, otp); err != nil {
		// The account exists; the user can request a resend.
		logger.WithError(err).Warn("failed to send signup otp", "user_id", user.ID)
	}

	return &dto.SignupResponse{UserID: user.ID}, nil
}

func (s *userService) VerifyOTP(db *gorm.DB, req *dto.VerifyOTPRequest) (*dto.UserLoginResponse, error) {
	user, err := s.userRepo.FindByID(db, req.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.DatabaseError(err, "otp verification lookup")
	}

	if user.OTP == "" {
		return nil, apperrors.NewBadRequestError("No OTP found. Please sign up again or resend OTP.")
	}
	if user.OTP != req.OTP {
		return nil, apperrors.NewBadRequestError("Invalid OTP")
	}
	if user.OTPExpires == nil || user.OTPExpires.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("OTP expired")
	}

	user.IsVerified = true
	user.OTP = ""
	user.OTPExpires = nil
	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.DatabaseError(err, "otp verification update")
	}

	return s.buildLoginResponse(user)
}

func (s *userService) ResendOTP(db *gorm.DB, req *dto.ResendOTPRequest) error {
	user, err := s.userRepo.FindByID(db, req.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("User not found")
		}
		return apperrors.DatabaseError(err, "otp resend lookup")
	}

	otp, err := generateOTP()
	if err != nil {
		return apperrors.InternalError(err)
	}
	expires := time.Now().Add(otpValidity)
	user.OTP = otp
	user.OTPExpires = &expires

	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.DatabaseError(err, "otp resend update")
	}

	if err := s.mailer.SendOTP(user.Email, user.Name, otp); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalError, "email", "Failed to send OTP email", 500)
	}
	return nil
}

func (s *userService) Login(db *gorm.DB, req *dto.UserLoginRequest) (*dto.UserLoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err, "user login lookup")
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, apperrors.NewUnauthorizedError("User not verified")
	}

	return s.buildLoginResponse(user)
}

func (s *userService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateUserProfileRequest, image *multipart.FileHeader) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.DatabaseError(err, "user profile lookup")
	}

	if req.FullName != "" {
		user.Name = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Location != "" {
		user.Location = req.Location
	}
	if req.Username != "" {
		user.Username = req.Username
	}

	if image != nil {
		path, err := saveUpload(s.files, "users", image)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.ProfileImage = path
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.DatabaseError(err, "user profile update")
	}
	return user, nil
}

func (s *userService) buildLoginResponse(user *models.User) (*dto.UserLoginResponse, error) {
	token, err := s.tokens.IssueUserToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.UserLoginResponse{
		Token: token,
		User: dto.UserSummary{
			ID:           user.ID,
			Name:         user.Name,
			Email:        user.Email,
			Username:     user.Username,
			ProfileImage: user.ProfileImage,
			IsVerified:   user.IsVerified,
		},
	}, nil
}

// generateOTP produces a 6-digit code from crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
