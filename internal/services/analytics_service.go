package services

import (
	"math"

	"gorm.io/gorm"

	"kamau_backend/internal/models"
	"kamau_backend/internal/repositories"
	"kamau_backend/internal/services/dto"
	"kamau_backend/pkg/apperrors"
)

// AnalyticsService produces the admin reporting surface: dashboard
// counters, distribution breakdowns and data export.
type AnalyticsService interface {
	DashboardStats(db *gorm.DB) (*dto.DashboardStats, error)
	RecentApplications(db *gorm.DB, limit int) ([]models.Professional, error)
	CategoryDistribution(db *gorm.DB) ([]dto.CategoryCount, error)
	AreaDistribution(db *gorm.DB) ([]dto.AreaCount, error)
	StatusDistribution(db *gorm.DB) (*dto.StatusDistribution, error)
	Analytics(db *gorm.DB) (*dto.AnalyticsData, error)
	ExportJSON(db *gorm.DB, status string) ([]models.Professional, error)
	ExportCSV(db *gorm.DB, status string) ([]byte, error)
}

type analyticsService struct {
	statsRepo repositories.AnalyticsRepository
	profRepo  repositories.ProfessionalRepository
}

func NewAnalyticsService(statsRepo repositories.AnalyticsRepository, profRepo repositories.ProfessionalRepository) AnalyticsService {
	return &analyticsService{statsRepo: statsRepo, profRepo: profRepo}
}

func (s *analyticsService) DashboardStats(db *gorm.DB) (*dto.DashboardStats, error) {
	total, err := s.statsRepo.CountAll(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "dashboard stats")
	}
	pending, err := s.statsRepo.CountByStatus(db, models.VerificationStatusPending)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "dashboard stats")
	}
	verified, err := s.statsRepo.CountByStatus(db, models.VerificationStatusVerified)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "dashboard stats")
	}
	rejected, err := s.statsRepo.CountByStatus(db, models.VerificationStatusRejected)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "dashboard stats")
	}
	return &dto.DashboardStats{
		TotalApplications: total,
		TotalPending:      pending,
		TotalApproved:     verified,
		TotalRejected:     rejected,
	}, nil
}

func (s *analyticsService) RecentApplications(db *gorm.DB, limit int) ([]models.Professional, error) {
	items, err := s.profRepo.FindRecent(db, limit)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "recent applications")
	}
	return items, nil
}

// CategoryDistribution counts verified professionals per category.
func (s *analyticsService) CategoryDistribution(db *gorm.DB) ([]dto.CategoryCount, error) {
	rows, err := s.statsRepo.CategoryDistribution(db, true, 0)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "category distribution")
	}
	out := make([]dto.CategoryCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CategoryCount{Category: r.Label, Count: r.Count})
	}
	return out, nil
}

func (s *analyticsService) AreaDistribution(db *gorm.DB) ([]dto.AreaCount, error) {
	rows, err := s.statsRepo.AreaDistribution(db, true, 0)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "area distribution")
	}
	out := make([]dto.AreaCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AreaCount{Area: r.Label, Count: r.Count})
	}
	return out, nil
}

// StatusDistribution spans all records, not only verified ones, so the
// three counts always sum to the total.
func (s *analyticsService) StatusDistribution(db *gorm.DB) (*dto.StatusDistribution, error) {
	pending, err := s.statsRepo.CountByStatus(db, models.VerificationStatusPending)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "status distribution")
	}
	verified, err := s.statsRepo.CountByStatus(db, models.VerificationStatusVerified)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "status distribution")
	}
	rejected, err := s.statsRepo.CountByStatus(db, models.VerificationStatusRejected)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "status distribution")
	}
	return &dto.StatusDistribution{Pending: pending, Verified: verified, Rejected: rejected}, nil
}

func (s *analyticsService) Analytics(db *gorm.DB) (*dto.AnalyticsData, error) {
	stats, err := s.DashboardStats(db)
	if err != nil {
		return nil, err
	}
	avg, err := s.statsRepo.AverageHourlyWage(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "analytics")
	}
	topCats, err := s.statsRepo.CategoryDistribution(db, true, 5)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "analytics")
	}
	topAreas, err := s.statsRepo.AreaDistribution(db, true, 5)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "analytics")
	}

	data := &dto.AnalyticsData{
		TotalProfessionals: stats.TotalApplications,
		Verified:           stats.TotalApproved,
		Pending:            stats.TotalPending,
		Rejected:           stats.TotalRejected,
		AverageHourlyWage:  int64(math.Round(avg)),
		TopCategories:      make([]dto.CategoryCount, 0, len(topCats)),
		TopAreas:           make([]dto.AreaCount, 0, len(topAreas)),
	}
	for _, r := range topCats {
		data.TopCategories = append(data.TopCategories, dto.CategoryCount{Category: r.Label, Count: r.Count})
	}
	for _, r := range topAreas {
		data.TopAreas = append(data.TopAreas, dto.AreaCount{Area: r.Label, Count: r.Count})
	}
	return data, nil
}

// ExportJSON returns the optionally status-filtered records with the
// verification documents stripped.
func (s *analyticsService) ExportJSON(db *gorm.DB, status string) ([]models.Professional, error) {
	items, err := s.export(db, status)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].VerificationDocuments = nil
	}
	return items, nil
}

func (s *analyticsService) ExportCSV(db *gorm.DB, status string) ([]byte, error) {
	items, err := s.export(db, status)
	if err != nil {
		return nil, err
	}
	return BuildProfessionalsCSV(items), nil
}

func (s *analyticsService) export(db *gorm.DB, status string) ([]models.Professional, error) {
	if status != "" && !models.IsValidVerificationStatus(status) {
		return nil, apperrors.NewBadRequestError("Invalid status filter")
	}
	items, err := s.profRepo.FindForExport(db, models.VerificationStatus(status))
	if err != nil {
		return nil, apperrors.DatabaseError(err, "export")
	}
	return items, nil
}
