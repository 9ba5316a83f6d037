package models

import (
	"time"

	"gorm.io/datatypes"
)

// Admin permission capabilities. Stored per-account, checked per-operation
// independently of role.
const (
	PermViewDashboard       = "view_dashboard"
	PermManageProfessionals = "manage_professionals"
	PermVerifyApplications  = "verify_applications"
	PermRejectApplications  = "reject_applications"
	PermViewAnalytics       = "view_analytics"
	PermExportData          = "export_data"
	PermManageAdmins        = "manage_admins"
)

// AllPermissions is what the seeded super_admin gets.
var AllPermissions = []string{
	PermViewDashboard,
	PermManageProfessionals,
	PermVerifyApplications,
	PermRejectApplications,
	PermViewAnalytics,
	PermExportData,
	PermManageAdmins,
}

// LoginHistoryLimit caps the retained login events, oldest evicted first.
const LoginHistoryLimit = 10

type LoginEvent struct {
	LoginTime time.Time `json:"loginTime"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
}

type Admin struct {
	BaseModel
	Username     string                          `gorm:"uniqueIndex;not null" json:"username"`
	Email        string                          `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string                          `gorm:"not null" json:"-"`
	FullName     string                          `json:"fullName"`
	Role         AdminRole                       `gorm:"type:varchar(20);not null" json:"role"`
	Permissions  datatypes.JSONSlice[string]     `json:"permissions"`
	LastLogin    *time.Time                      `json:"lastLogin,omitempty"`
	LoginHistory datatypes.JSONSlice[LoginEvent] `json:"-"`
	IsActive     bool                            `gorm:"default:true" json:"isActive"`
}

// HasPermission reports whether the account holds the capability.
func (a *Admin) HasPermission(permission string) bool {
	for _, p := range a.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// RecordLogin sets LastLogin and appends a login event, trimming history
// to LoginHistoryLimit entries (FIFO).
func (a *Admin) RecordLogin(at time.Time, ip, userAgent string) {
	a.LastLogin = &at
	a.LoginHistory = append(a.LoginHistory, LoginEvent{
		LoginTime: at,
		IPAddress: ip,
		UserAgent: userAgent,
	})
	if len(a.LoginHistory) > LoginHistoryLimit {
		a.LoginHistory = a.LoginHistory[len(a.LoginHistory)-LoginHistoryLimit:]
	}
}
