package repositories

import (
	"gorm.io/gorm"

	"kamau_backend/internal/models"
)

// LabelCount is one row of a group-count distribution.
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// AnalyticsRepository holds the read-only aggregations backing the
// dashboards. Nothing in here mutates state.
type AnalyticsRepository interface {
	CountAll(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB, status models.VerificationStatus) (int64, error)
	// AverageHourlyWage is 0 for an empty table (guarded in SQL, never NaN).
	AverageHourlyWage(db *gorm.DB) (float64, error)
	// CategoryDistribution groups verified records by category, count
	// descending; limit <= 0 means unbounded.
	CategoryDistribution(db *gorm.DB, verifiedOnly bool, limit int) ([]LabelCount, error)
	AreaDistribution(db *gorm.DB, verifiedOnly bool, limit int) ([]LabelCount, error)
}

type analyticsRepository struct{}

func NewAnalyticsRepository() AnalyticsRepository {
	return &analyticsRepository{}
}

func (r *analyticsRepository) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Professional{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountByStatus(db *gorm.DB, status models.VerificationStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Professional{}).
		Where("verification_status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) AverageHourlyWage(db *gorm.DB) (float64, error) {
	var avg float64
	err := db.Model(&models.Professional{}).
		Select("COALESCE(AVG(hourly_wage), 0)").
		Scan(&avg).Error
	return avg, err
}

func (r *analyticsRepository) CategoryDistribution(db *gorm.DB, verifiedOnly bool, limit int) ([]LabelCount, error) {
	return r.distribution(db, "service_category", verifiedOnly, limit)
}

func (r *analyticsRepository) AreaDistribution(db *gorm.DB, verifiedOnly bool, limit int) ([]LabelCount, error) {
	return r.distribution(db, "service_area", verifiedOnly, limit)
}

func (r *analyticsRepository) distribution(db *gorm.DB, column string, verifiedOnly bool, limit int) ([]LabelCount, error) {
	query := db.Model(&models.Professional{}).
		Select(column + " AS label, COUNT(*) AS count").
		Group(column).
		Order("count DESC")
	if verifiedOnly {
		query = query.Where("verification_status = ?", models.VerificationStatusVerified)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []LabelCount
	err := query.Scan(&rows).Error
	return rows, err
}
