package models

import (
	"time"

	"gorm.io/datatypes"
)

// VerificationDocument is an uploaded supporting file reference. Documents
// are considered sensitive and are stripped from public responses and
// exports.
type VerificationDocument struct {
	Filename     string    `json:"filename"`
	Path         string    `json:"path"`
	OriginalName string    `json:"originalName"`
	Mimetype     string    `json:"mimetype"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// Professional is a service provider's application/profile, the unit the
// verification workflow operates on.
type Professional struct {
	BaseModel
	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string `gorm:"type:varchar(10);not null" json:"phone"`

	ServiceCategory string  `gorm:"type:varchar(30);not null;index:idx_professionals_cat_area_status" json:"serviceCategory"`
	ServiceArea     string  `gorm:"type:varchar(30);not null;index:idx_professionals_cat_area_status" json:"serviceArea"`
	HourlyWage      float64 `gorm:"not null" json:"hourlyWage"`
	Bio             string  `gorm:"type:varchar(500)" json:"bio"`
	ProfileImage    string  `json:"profileImage"`

	VerificationDocuments datatypes.JSONSlice[VerificationDocument] `json:"verificationDocuments,omitempty"`

	VerificationStatus VerificationStatus `gorm:"type:varchar(10);default:'pending';index:idx_professionals_cat_area_status" json:"verificationStatus"`
	VerificationDate   *time.Time         `json:"verificationDate,omitempty"`
	RejectionReason    string             `json:"rejectionReason,omitempty"`

	// Revision guards workflow transitions against concurrent admin
	// actions: every transition is a compare-and-swap on this counter.
	Revision int `gorm:"not null;default:0" json:"-"`

	Rating        float64 `gorm:"default:0" json:"rating"`
	TotalReviews  int     `gorm:"default:0" json:"totalReviews"`
	CompletedJobs int     `gorm:"default:0" json:"completedJobs"`
	IsActive      bool    `gorm:"default:true" json:"isActive"`
}

// StoredFiles lists every filesystem path referenced by the record,
// used when deleting a professional.
func (p *Professional) StoredFiles() []string {
	var paths []string
	if p.ProfileImage != "" {
		paths = append(paths, p.ProfileImage)
	}
	for _, doc := range p.VerificationDocuments {
		paths = append(paths, doc.Path)
	}
	return paths
}
