package services

import (
	"kamau_backend/internal/auth"
	"kamau_backend/internal/email"
	"kamau_backend/internal/repositories"
	"kamau_backend/internal/storage"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	ProfessionalService ProfessionalService
	VerificationService VerificationService
	AnalyticsService    AnalyticsService
	EmailService        email.Provider
}

// NewServiceContainer wires repositories and shared infrastructure into
// the service layer.
func NewServiceContainer(tokens *auth.TokenManager, files storage.Storage, mailer email.Provider, policy UploadPolicy) *ServiceContainer {
	adminRepo := repositories.NewAdminRepository()
	userRepo := repositories.NewUserRepository()
	profRepo := repositories.NewProfessionalRepository()
	statsRepo := repositories.NewAnalyticsRepository()

	return &ServiceContainer{
		AuthService:         NewAuthService(adminRepo, tokens),
		UserService:         NewUserService(userRepo, tokens, mailer, files),
		ProfessionalService: NewProfessionalService(profRepo, files, policy),
		VerificationService: NewVerificationService(profRepo),
		AnalyticsService:    NewAnalyticsService(statsRepo, profRepo),
		EmailService:        mailer,
	}
}
