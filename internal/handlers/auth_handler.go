package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"kamau_backend/internal/middleware"
	"kamau_backend/internal/services"
	"kamau_backend/internal/services/dto"
	"kamau_backend/pkg/apperrors"
)

// AuthHandler serves the back-office session endpoints.
type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, authService: authService}
}

// RegisterRoutes mounts /auth. Login and verify are open; the profile
// endpoints require an authenticated admin token.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, adminAuth gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/verify", h.Verify)
		auth.POST("/logout", h.Logout)
	}

	profile := rg.Group("/auth")
	profile.Use(adminAuth)
	{
		profile.GET("/profile", h.GetProfile)
		profile.PUT("/profile", h.UpdateProfile)
		profile.PUT("/password", h.ChangePassword)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	resp, err := h.authService.Login(db, &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}

// Verify lets the frontend confirm a stored token is still usable. The
// token may arrive in the body or the Authorization header.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	_ = c.ShouldBind(&req)

	token := req.Token
	if token == "" {
		header := c.GetHeader("Authorization")
		token = strings.TrimPrefix(header, "Bearer ")
	}
	if token == "" {
		h.HandleServiceError(c, apperrors.ErrNoToken)
		return
	}

	db := h.GetDB(c)
	summary, err := h.authService.VerifyToken(db, token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, summary)
}

// Logout is a stateless acknowledgment; the token simply ages out.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.OKWithMessage(c, "Logged out successfully", nil)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	db := h.GetDB(c)

	admin, err := h.authService.GetProfile(db, claims.AccountID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, dto.NewAdminSummary(admin))
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateAdminProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	db := h.GetDB(c)

	admin, err := h.authService.UpdateProfile(db, claims.AccountID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OKWithMessage(c, "Profile updated", dto.NewAdminSummary(admin))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	db := h.GetDB(c)

	if err := h.authService.ChangePassword(db, claims.AccountID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OKWithMessage(c, "Password changed", nil)
}
