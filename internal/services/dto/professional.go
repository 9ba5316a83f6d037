package dto

// RegisterProfessionalRequest is bound from a multipart form; the profile
// image and verification documents ride alongside as file parts.
type RegisterProfessionalRequest struct {
	FirstName       string  `form:"firstName" validate:"required,max=50"`
	LastName        string  `form:"lastName" validate:"required,max=50"`
	Username        string  `form:"username" validate:"required,max=50"`
	Email           string  `form:"email" validate:"required,email"`
	Phone           string  `form:"phone" validate:"required,nepali-phone"`
	ServiceCategory string  `form:"serviceCategory" validate:"required,service-category"`
	ServiceArea     string  `form:"serviceArea" validate:"required,service-area"`
	HourlyWage      float64 `form:"hourlyWage" validate:"gte=0"`
	Bio             string  `form:"bio" validate:"max=500"`
}

type UpdateProfessionalRequest struct {
	FirstName   string   `form:"firstName" validate:"omitempty,max=50"`
	LastName    string   `form:"lastName" validate:"omitempty,max=50"`
	Bio         *string  `form:"bio" validate:"omitempty,max=500"`
	HourlyWage  *float64 `form:"hourlyWage" validate:"omitempty,gte=0"`
	ServiceArea string   `form:"serviceArea" validate:"omitempty,service-area"`
	Phone       string   `form:"phone" validate:"omitempty,nepali-phone"`
}

// ListProfessionalsQuery covers both the public listing and the admin
// listing; the admin surface additionally accepts any status.
type ListProfessionalsQuery struct {
	Page            int    `form:"page"`
	Limit           int    `form:"limit"`
	Status          string `form:"status" validate:"omitempty,verification-status"`
	ServiceCategory string `form:"serviceCategory" validate:"omitempty,service-category"`
	ServiceArea     string `form:"serviceArea" validate:"omitempty,service-area"`
}

type SearchProfessionalsQuery struct {
	Search   string `form:"search"`
	Status   string `form:"status" validate:"omitempty,verification-status"`
	Category string `form:"category" validate:"omitempty,service-category"`
	Area     string `form:"area" validate:"omitempty,service-area"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// Pagination is the envelope the frontend renders paging controls from.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination clamps page/limit and derives the page count.
func NewPagination(page, limit int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

type RegisterProfessionalResponse struct {
	ID                 string `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	VerificationStatus string `json:"verificationStatus"`
}
