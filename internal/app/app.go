package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kamau_backend/internal/auth"
	"kamau_backend/internal/config"
	"kamau_backend/internal/email"
	"kamau_backend/internal/handlers"
	"kamau_backend/internal/logger"
	"kamau_backend/internal/middleware"
	"kamau_backend/internal/models"
	"kamau_backend/internal/repositories"
	"kamau_backend/internal/routes"
	"kamau_backend/internal/services"
	"kamau_backend/internal/storage"
	"kamau_backend/internal/validator"
	"kamau_backend/pkg/apperrors"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(cfg.Server.Env != "production")

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := autoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}

	tokenManager := auth.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AdminTTLHours)*time.Hour,
		time.Duration(cfg.JWT.UserTTLHours)*time.Hour,
	)

	var emailService email.Provider
	if cfg.Email.SMTPHost != "" {
		emailService = email.NewSMTPProvider(email.Config{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
	} else {
		logger.Warn("SMTP is not configured, using the mock email provider")
		emailService = email.NewMockProvider()
	}

	policy := services.UploadPolicy{
		MaxSize:      cfg.Upload.MaxSize,
		AllowedTypes: cfg.Upload.AllowedTypes,
	}

	serviceContainer := services.NewServiceContainer(tokenManager, storageInstance, emailService, policy)
	appHandlers := initializeHandlers(serviceContainer)

	adminAuth := middleware.AdminAuthMiddleware(tokenManager, repositories.NewAdminRepository())
	userAuth := middleware.UserAuthMiddleware(tokenManager)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, adminAuth, userAuth)
	return ginRouter
}

func initializeHandlers(sc *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, sc.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, sc.UserService),
		ProfessionalHandler: handlers.NewProfessionalHandler(baseHandler, sc.ProfessionalService),
		AdminHandler:        handlers.NewAdminHandler(baseHandler, sc.ProfessionalService, sc.VerificationService, sc.AnalyticsService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	router.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)
	return router
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Professional{},
	)
}

// seedFirstAdmin creates the bootstrap super_admin account if it does not
// exist yet. Runs in a transaction and is safe to call on every start.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	username := cfg.FirstAdmin.Username
	adminEmail := cfg.FirstAdmin.Email
	adminPassword := cfg.FirstAdmin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}
	if username == "" {
		username = "admin"
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var existing models.Admin
	result := tx.Where("email = ? OR username = ?", adminEmail, username).First(&existing)
	if result.Error == nil {
		logger.Info("Admin account already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin account: %w", result.Error)
	}

	logger.Warn("No admin account found. Creating first super admin...", "email", adminEmail)

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.Admin{
		Username:     username,
		Email:        adminEmail,
		PasswordHash: hash,
		FullName:     "Super Admin",
		Role:         models.AdminRoleSuperAdmin,
		Permissions:  datatypes.NewJSONSlice(models.AllPermissions),
		IsActive:     true,
	}
	if err := tx.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create first admin: %w", err)
	}

	logger.Info("First super admin created", "email", adminEmail)
	return tx.Commit().Error
}
