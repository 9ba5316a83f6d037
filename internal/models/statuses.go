package models

type VerificationStatus string
type AdminRole string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusRejected VerificationStatus = "rejected"

	AdminRoleSuperAdmin AdminRole = "super_admin"
	AdminRoleAdmin      AdminRole = "admin"
)

// ServiceCategories is the closed vocabulary of trades a professional can
// register under.
var ServiceCategories = []string{
	"plumbing", "electrical", "carpentry", "cleaning",
	"painting", "gardening", "mechanic", "tutoring",
}

// ServiceAreas is the closed vocabulary of localities served.
var ServiceAreas = []string{
	"thamel", "kathmandu-center", "patan", "boudha", "koteshwor",
	"bhaktapur-center", "nagarkot", "changu",
	"pulchowk", "jawalakhel",
}

func IsValidServiceCategory(s string) bool {
	for _, c := range ServiceCategories {
		if c == s {
			return true
		}
	}
	return false
}

func IsValidServiceArea(s string) bool {
	for _, a := range ServiceAreas {
		if a == s {
			return true
		}
	}
	return false
}

func IsValidVerificationStatus(s string) bool {
	switch VerificationStatus(s) {
	case VerificationStatusPending, VerificationStatusVerified, VerificationStatusRejected:
		return true
	}
	return false
}

// IsAdminCapable reports whether the role grants back-office access.
func IsAdminCapable(role AdminRole) bool {
	return role == AdminRoleSuperAdmin || role == AdminRoleAdmin
}
