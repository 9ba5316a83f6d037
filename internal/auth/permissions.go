package auth

import "kamau_backend/internal/models"

// HasPermission checks the claim's snapshotted permission set.
func HasPermission(claims *Claims, permission string) bool {
	for _, p := range claims.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// IsAdminCapable reports whether the claims carry a back-office role.
func IsAdminCapable(claims *Claims) bool {
	return models.IsAdminCapable(claims.Role)
}
