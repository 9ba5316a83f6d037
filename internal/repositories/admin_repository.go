package repositories

import (
	"errors"

	"gorm.io/gorm"

	"kamau_backend/internal/models"
)

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminAlreadyExists = errors.New("admin already exists")
)

// AdminRepository persists back-office accounts. Every method takes the
// request-scoped db handle so tests can run inside a transaction.
type AdminRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Admin, error)
	// FindActiveByLogin matches an active account whose username or
	// email equals login.
	FindActiveByLogin(db *gorm.DB, login string) (*models.Admin, error)
	Create(db *gorm.DB, admin *models.Admin) error
	Update(db *gorm.DB, admin *models.Admin) error
	ExistsByEmail(db *gorm.DB, email string) (bool, error)
}

type adminRepository struct{}

func NewAdminRepository() AdminRepository {
	return &adminRepository{}
}

func (r *adminRepository) FindByID(db *gorm.DB, id string) (*models.Admin, error) {
	var admin models.Admin
	err := db.First(&admin, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindActiveByLogin(db *gorm.DB, login string) (*models.Admin, error) {
	var admin models.Admin
	err := db.Where("(username = ? OR email = ?) AND is_active = true", login, login).
		First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Create(db *gorm.DB, admin *models.Admin) error {
	var existing models.Admin
	if err := db.Where("email = ? OR username = ?", admin.Email, admin.Username).
		First(&existing).Error; err == nil {
		return ErrAdminAlreadyExists
	}
	return db.Create(admin).Error
}

func (r *adminRepository) Update(db *gorm.DB, admin *models.Admin) error {
	result := db.Save(admin)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}
	return nil
}

func (r *adminRepository) ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
