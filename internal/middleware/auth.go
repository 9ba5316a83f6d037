package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kamau_backend/internal/auth"
	"kamau_backend/internal/logger"
	"kamau_backend/internal/models"
	"kamau_backend/internal/repositories"
	"kamau_backend/pkg/apperrors"
	"kamau_backend/pkg/contextkeys"
)

const claimsKey = "claims"

// AdminAuthMiddleware authenticates the bearer token and re-checks the
// admin account against the database, so deactivating an admin takes
// effect immediately even with a still-valid token. Missing, expired and
// malformed tokens produce distinct responses.
func AdminAuthMiddleware(tm *auth.TokenManager, adminRepo repositories.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := bearerClaims(c, tm)
		if err != nil {
			abort(c, err)
			return
		}

		db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok {
			abort(c, apperrors.InternalError(fmt.Errorf("no database in request context")))
			return
		}

		admin, err := adminRepo.FindByID(db, claims.AccountID)
		if err != nil || !admin.IsActive {
			abort(c, apperrors.ErrAccountInactive)
			return
		}

		ctx := logger.WithAccountID(c.Request.Context(), claims.AccountID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// UserAuthMiddleware authenticates an end-client token.
func UserAuthMiddleware(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := bearerClaims(c, tm)
		if err != nil {
			abort(c, err)
			return
		}
		ctx := logger.WithAccountID(c.Request.Context(), claims.AccountID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdminRole rejects tokens whose role is not an admin role.
func RequireAdminRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !auth.IsAdminCapable(claims) {
			abort(c, apperrors.NewForbiddenError("Admin access required"))
			return
		}
		c.Next()
	}
}

// RequirePermission gates a route on a single named permission.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !auth.HasPermission(claims, permission) {
			abort(c, apperrors.NewForbiddenError(
				fmt.Sprintf("Permission '%s' required", permission)))
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin gates admin-management routes.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || models.AdminRole(claims.Role) != models.AdminRoleSuperAdmin {
			abort(c, apperrors.NewForbiddenError("Super admin access required"))
			return
		}
		c.Next()
	}
}

// GetClaims returns the authenticated token claims, or nil when the
// request did not pass an auth middleware.
func GetClaims(c *gin.Context) *auth.Claims {
	val, exists := c.Get(claimsKey)
	if !exists {
		return nil
	}
	claims, ok := val.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func bearerClaims(c *gin.Context, tm *auth.TokenManager) (*auth.Claims, error) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, apperrors.ErrNoToken
	}

	claims, err := tm.ParseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		if apperrors.Is(err, auth.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func abort(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
	c.Abort()
}
