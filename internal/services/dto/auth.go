package dto

import "kamau_backend/internal/models"

type AdminLoginRequest struct {
	// Username accepts either the handle or the email address.
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminSummary is the public projection of an Admin account.
type AdminSummary struct {
	ID          string           `json:"id"`
	Username    string           `json:"username"`
	Email       string           `json:"email"`
	FullName    string           `json:"fullName"`
	Role        models.AdminRole `json:"role"`
	Permissions []string         `json:"permissions"`
}

type AdminLoginResponse struct {
	Token string       `json:"token"`
	Admin AdminSummary `json:"data"`
}

type UpdateAdminProfileRequest struct {
	FullName string `json:"fullName" validate:"required,max=100"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func NewAdminSummary(admin *models.Admin) AdminSummary {
	return AdminSummary{
		ID:          admin.ID,
		Username:    admin.Username,
		Email:       admin.Email,
		FullName:    admin.FullName,
		Role:        admin.Role,
		Permissions: []string(admin.Permissions),
	}
}
