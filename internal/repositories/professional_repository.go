package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"kamau_backend/internal/models"
)

var (
	ErrProfessionalNotFound = errors.New("professional not found")
	// ErrRevisionConflict signals a lost compare-and-swap: another
	// transition landed between read and write.
	ErrRevisionConflict = errors.New("professional revision conflict")
)

// ProfessionalFilter narrows listing queries. Zero values mean "no filter".
type ProfessionalFilter struct {
	Status          models.VerificationStatus
	ServiceCategory string
	ServiceArea     string
	// Search matches first name, last name, email or username,
	// case-insensitive substring.
	Search   string
	Page     int
	PageSize int
}

// StatusTransition is the single-row guarded update applied by the
// verification workflow.
type StatusTransition struct {
	Status           models.VerificationStatus
	VerificationDate *time.Time
	RejectionReason  string
}

type ProfessionalRepository interface {
	Create(db *gorm.DB, p *models.Professional) error
	FindByID(db *gorm.DB, id string) (*models.Professional, error)
	FindVerifiedByUsername(db *gorm.DB, username string) (*models.Professional, error)
	ExistsByEmail(db *gorm.DB, email string) (bool, error)
	ExistsByUsername(db *gorm.DB, username string) (bool, error)
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) (*models.Professional, error)
	Delete(db *gorm.DB, id string) (*models.Professional, error)

	// Transition applies a workflow state change guarded by the revision
	// counter; ErrRevisionConflict on a lost race.
	Transition(db *gorm.DB, id string, expectedRevision int, t StatusTransition) (*models.Professional, error)

	Find(db *gorm.DB, filter ProfessionalFilter) ([]models.Professional, int64, error)
	FindRecent(db *gorm.DB, limit int) ([]models.Professional, error)
	// FindAllVerifiedSorted returns verified records ordered by rating
	// then recency, for the public search surface.
	FindAllVerifiedSorted(db *gorm.DB, category, area string) ([]models.Professional, error)
	// FindForExport materializes the optionally status-filtered set.
	FindForExport(db *gorm.DB, status models.VerificationStatus) ([]models.Professional, error)
}

type professionalRepository struct{}

func NewProfessionalRepository() ProfessionalRepository {
	return &professionalRepository{}
}

func (r *professionalRepository) Create(db *gorm.DB, p *models.Professional) error {
	return db.Create(p).Error
}

func (r *professionalRepository) FindByID(db *gorm.DB, id string) (*models.Professional, error) {
	var p models.Professional
	err := db.First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *professionalRepository) FindVerifiedByUsername(db *gorm.DB, username string) (*models.Professional, error) {
	var p models.Professional
	err := db.Where("username = ? AND verification_status = ?",
		username, models.VerificationStatusVerified).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *professionalRepository) ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.Professional{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *professionalRepository) ExistsByUsername(db *gorm.DB, username string) (bool, error) {
	var count int64
	err := db.Model(&models.Professional{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *professionalRepository) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) (*models.Professional, error) {
	fields["updated_at"] = time.Now()
	result := db.Model(&models.Professional{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrProfessionalNotFound
	}
	return r.FindByID(db, id)
}

func (r *professionalRepository) Delete(db *gorm.DB, id string) (*models.Professional, error) {
	p, err := r.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	if err := db.Delete(&models.Professional{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *professionalRepository) Transition(db *gorm.DB, id string, expectedRevision int, t StatusTransition) (*models.Professional, error) {
	updates := map[string]interface{}{
		"verification_status": t.Status,
		"verification_date":   t.VerificationDate,
		"rejection_reason":    t.RejectionReason,
		"revision":            expectedRevision + 1,
		"updated_at":          time.Now(),
	}

	result := db.Model(&models.Professional{}).
		Where("id = ? AND revision = ?", id, expectedRevision).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Either the record vanished or the revision moved under us.
		if _, err := r.FindByID(db, id); err != nil {
			return nil, err
		}
		return nil, ErrRevisionConflict
	}
	return r.FindByID(db, id)
}

func (r *professionalRepository) Find(db *gorm.DB, filter ProfessionalFilter) ([]models.Professional, int64, error) {
	query := db.Model(&models.Professional{})

	if filter.Status != "" {
		query = query.Where("verification_status = ?", filter.Status)
	}
	if filter.ServiceCategory != "" {
		query = query.Where("service_category = ?", filter.ServiceCategory)
	}
	if filter.ServiceArea != "" {
		query = query.Where("service_area = ?", filter.ServiceArea)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR username ILIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var professionals []models.Professional
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&professionals).Error
	if err != nil {
		return nil, 0, err
	}
	return professionals, total, nil
}

func (r *professionalRepository) FindRecent(db *gorm.DB, limit int) ([]models.Professional, error) {
	if limit < 1 {
		limit = 5
	}
	var professionals []models.Professional
	err := db.Order("created_at DESC").Limit(limit).Find(&professionals).Error
	return professionals, err
}

func (r *professionalRepository) FindAllVerifiedSorted(db *gorm.DB, category, area string) ([]models.Professional, error) {
	query := db.Where("verification_status = ?", models.VerificationStatusVerified)
	if category != "" {
		query = query.Where("service_category = ?", category)
	}
	if area != "" {
		query = query.Where("service_area = ?", area)
	}

	var professionals []models.Professional
	err := query.Order("rating DESC, created_at DESC").Find(&professionals).Error
	return professionals, err
}

func (r *professionalRepository) FindForExport(db *gorm.DB, status models.VerificationStatus) ([]models.Professional, error) {
	query := db.Model(&models.Professional{})
	if status != "" {
		query = query.Where("verification_status = ?", status)
	}
	var professionals []models.Professional
	err := query.Order("created_at DESC").Find(&professionals).Error
	return professionals, err
}
