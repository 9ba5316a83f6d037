package services

import (
	"context"
	"mime/multipart"
	"time"

	"gorm.io/gorm"

	"kamau_backend/internal/logger"
	"kamau_backend/internal/models"
	"kamau_backend/internal/repositories"
	"kamau_backend/internal/services/dto"
	"kamau_backend/internal/storage"
	"kamau_backend/pkg/apperrors"
)

// ProfessionalService manages provider applications and profiles. Every
// new registration enters the workflow as pending regardless of input.
type ProfessionalService interface {
	Register(db *gorm.DB, req *dto.RegisterProfessionalRequest, profileImage *multipart.FileHeader, documents []*multipart.FileHeader) (*dto.RegisterProfessionalResponse, error)
	GetByID(db *gorm.DB, id string) (*models.Professional, error)
	GetVerifiedByUsername(db *gorm.DB, username string) (*models.Professional, error)
	List(db *gorm.DB, q *dto.ListProfessionalsQuery) ([]models.Professional, dto.Pagination, error)
	Search(db *gorm.DB, q *dto.SearchProfessionalsQuery) ([]models.Professional, dto.Pagination, error)
	PublicSearch(db *gorm.DB, category, area string) ([]models.Professional, error)
	Update(db *gorm.DB, id string, req *dto.UpdateProfessionalRequest, profileImage *multipart.FileHeader) (*models.Professional, error)
	Delete(db *gorm.DB, id string) error
}

type professionalService struct {
	profRepo repositories.ProfessionalRepository
	files    storage.Storage
	policy   UploadPolicy
}

func NewProfessionalService(profRepo repositories.ProfessionalRepository, files storage.Storage, policy UploadPolicy) ProfessionalService {
	return &professionalService{profRepo: profRepo, files: files, policy: policy}
}

func (s *professionalService) Register(db *gorm.DB, req *dto.RegisterProfessionalRequest, profileImage *multipart.FileHeader, documents []*multipart.FileHeader) (*dto.RegisterProfessionalResponse, error) {
	if exists, err := s.profRepo.ExistsByEmail(db, req.Email); err != nil {
		return nil, apperrors.DatabaseError(err, "professional email check")
	} else if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if exists, err := s.profRepo.ExistsByUsername(db, req.Username); err != nil {
		return nil, apperrors.DatabaseError(err, "professional username check")
	} else if exists {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	// Validate every file before storing any of them.
	if profileImage != nil {
		if err := s.policy.CheckFile(profileImage); err != nil {
			return nil, err
		}
	}
	for _, doc := range documents {
		if err := s.policy.CheckFile(doc); err != nil {
			return nil, err
		}
	}

	prof := &models.Professional{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Username:           req.Username,
		Email:              req.Email,
		Phone:              req.Phone,
		ServiceCategory:    req.ServiceCategory,
		ServiceArea:        req.ServiceArea,
		HourlyWage:         req.HourlyWage,
		Bio:                req.Bio,
		VerificationStatus: models.VerificationStatusPending,
		IsActive:           true,
	}

	var saved []string
	cleanup := func() {
		for _, p := range saved {
			if err := s.files.Delete(context.Background(), p); err != nil {
				logger.WithError(err).Warn("failed to clean up upload", "path", p)
			}
		}
	}

	if profileImage != nil {
		path, err := saveUpload(s.files, "professionals", profileImage)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		saved = append(saved, path)
		prof.ProfileImage = path
	}
	for _, doc := range documents {
		path, err := saveUpload(s.files, "documents", doc)
		if err != nil {
			cleanup()
			return nil, apperrors.InternalError(err)
		}
		saved = append(saved, path)
		prof.VerificationDocuments = append(prof.VerificationDocuments, models.VerificationDocument{
			Filename:     path,
			Path:         path,
			OriginalName: doc.Filename,
			Mimetype:     doc.Header.Get("Content-Type"),
			Size:         doc.Size,
			UploadedAt:   time.Now(),
		})
	}

	if err := s.profRepo.Create(db, prof); err != nil {
		cleanup()
		return nil, apperrors.DatabaseError(err, "professional registration")
	}

	logger.Info("professional registered",
		"professional_id", prof.ID,
		"category", prof.ServiceCategory,
		"area", prof.ServiceArea,
	)

	return &dto.RegisterProfessionalResponse{
		ID:                 prof.ID,
		Username:           prof.Username,
		Email:              prof.Email,
		VerificationStatus: string(prof.VerificationStatus),
	}, nil
}

func (s *professionalService) GetByID(db *gorm.DB, id string) (*models.Professional, error) {
	prof, err := s.profRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfessionalNotFound) {
			return nil, apperrors.NewNotFoundError("Professional not found")
		}
		return nil, apperrors.DatabaseError(err, "professional lookup")
	}
	return prof, nil
}

// GetVerifiedByUsername backs the public profile page; only verified
// providers are visible there, and documents are stripped.
func (s *professionalService) GetVerifiedByUsername(db *gorm.DB, username string) (*models.Professional, error) {
	prof, err := s.profRepo.FindVerifiedByUsername(db, username)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfessionalNotFound) {
			return nil, apperrors.NewNotFoundError("Professional not found")
		}
		return nil, apperrors.DatabaseError(err, "professional profile lookup")
	}
	prof.VerificationDocuments = nil
	return prof, nil
}

func (s *professionalService) List(db *gorm.DB, q *dto.ListProfessionalsQuery) ([]models.Professional, dto.Pagination, error) {
	filter := repositories.ProfessionalFilter{
		Status:          models.VerificationStatus(q.Status),
		ServiceCategory: q.ServiceCategory,
		ServiceArea:     q.ServiceArea,
		Page:            q.Page,
		PageSize:        q.Limit,
	}
	return s.find(db, filter)
}

func (s *professionalService) Search(db *gorm.DB, q *dto.SearchProfessionalsQuery) ([]models.Professional, dto.Pagination, error) {
	filter := repositories.ProfessionalFilter{
		Search:          q.Search,
		Status:          models.VerificationStatus(q.Status),
		ServiceCategory: q.Category,
		ServiceArea:     q.Area,
		Page:            q.Page,
		PageSize:        q.Limit,
	}
	return s.find(db, filter)
}

func (s *professionalService) find(db *gorm.DB, filter repositories.ProfessionalFilter) ([]models.Professional, dto.Pagination, error) {
	items, total, err := s.profRepo.Find(db, filter)
	if err != nil {
		return nil, dto.Pagination{}, apperrors.DatabaseError(err, "professional listing")
	}
	return items, dto.NewPagination(filter.Page, filter.PageSize, total), nil
}

// PublicSearch returns verified providers sorted by rating for the
// customer-facing browse surface. Documents are stripped from every row.
func (s *professionalService) PublicSearch(db *gorm.DB, category, area string) ([]models.Professional, error) {
	items, err := s.profRepo.FindAllVerifiedSorted(db, category, area)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "public professional search")
	}
	for i := range items {
		items[i].VerificationDocuments = nil
	}
	return items, nil
}

func (s *professionalService) Update(db *gorm.DB, id string, req *dto.UpdateProfessionalRequest, profileImage *multipart.FileHeader) (*models.Professional, error) {
	if _, err := s.GetByID(db, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.FirstName != "" {
		fields["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		fields["last_name"] = req.LastName
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.HourlyWage != nil {
		fields["hourly_wage"] = *req.HourlyWage
	}
	if req.ServiceArea != "" {
		fields["service_area"] = req.ServiceArea
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}

	if profileImage != nil {
		if err := s.policy.CheckFile(profileImage); err != nil {
			return nil, err
		}
		path, err := saveUpload(s.files, "professionals", profileImage)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		fields["profile_image"] = path
	}

	if len(fields) == 0 {
		return s.GetByID(db, id)
	}

	prof, err := s.profRepo.UpdateFields(db, id, fields)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfessionalNotFound) {
			return nil, apperrors.NewNotFoundError("Professional not found")
		}
		return nil, apperrors.DatabaseError(err, "professional update")
	}
	return prof, nil
}

// Delete removes the record and its stored files. File removal failures
// are logged but do not fail the delete; the row is already gone.
func (s *professionalService) Delete(db *gorm.DB, id string) error {
	prof, err := s.profRepo.Delete(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfessionalNotFound) {
			return apperrors.NewNotFoundError("Professional not found")
		}
		return apperrors.DatabaseError(err, "professional delete")
	}

	for _, path := range prof.StoredFiles() {
		if err := s.files.Delete(context.Background(), path); err != nil {
			logger.WithError(err).Warn("failed to delete stored file", "path", path)
		}
	}
	logger.Info("professional deleted", "professional_id", id)
	return nil
}
