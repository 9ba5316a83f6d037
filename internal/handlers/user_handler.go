package handlers

import (
	"github.com/gin-gonic/gin"

	"kamau_backend/internal/middleware"
	"kamau_backend/internal/services"
	"kamau_backend/internal/services/dto"
	"kamau_backend/pkg/apperrors"
)

// UserHandler serves the end-client account endpoints.
type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, userService: userService}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, userAuth gin.HandlerFunc) {
	users := rg.Group("/users")
	{
		users.POST("/signup", h.Signup)
		users.POST("/verify-otp", h.VerifyOTP)
		users.POST("/resend-otp", h.ResendOTP)
		users.POST("/login", h.Login)
	}

	protected := rg.Group("/users")
	protected.Use(userAuth)
	{
		protected.PUT("/:id/profile", h.UpdateProfile)
	}
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	resp, err := h.userService.Signup(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "Signup successful. Please verify the OTP sent to your email.", resp)
}

func (h *UserHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	resp, err := h.userService.VerifyOTP(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OKWithMessage(c, "Email verified", resp)
}

func (h *UserHandler) ResendOTP(c *gin.Context) {
	var req dto.ResendOTPRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	if err := h.userService.ResendOTP(db, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OKWithMessage(c, "OTP sent", nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req dto.UserLoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	resp, err := h.userService.Login(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}

// UpdateProfile only lets a user edit their own record.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id := c.Param("id")
	if claims == nil || claims.AccountID != id {
		h.HandleServiceError(c, apperrors.NewForbiddenError("Cannot modify another user's profile"))
		return
	}

	var req dto.UpdateUserProfileRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	// Optional profile image part.
	image, err := c.FormFile("profileImage")
	if err != nil {
		image = nil
	}

	db := h.GetDB(c)
	user, err := h.userService.UpdateProfile(db, id, &req, image)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OKWithMessage(c, "Profile updated", user)
}
