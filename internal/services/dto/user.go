package dto

type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Address  string `json:"address" validate:"required,max=200"`
}

type SignupResponse struct {
	UserID string `json:"userId"`
}

type VerifyOTPRequest struct {
	UserID string `json:"userId" validate:"required"`
	OTP    string `json:"otp" validate:"required,len=6"`
}

type ResendOTPRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Username     string `json:"username,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	IsVerified   bool   `json:"isVerified"`
}

type UserLoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"data"`
}

// UpdateUserProfileRequest fields are optional; only set fields are
// applied. Bound from multipart form alongside an optional profile image.
type UpdateUserProfileRequest struct {
	FullName string `form:"fullName" validate:"omitempty,max=100"`
	Email    string `form:"email" validate:"omitempty,email"`
	Phone    string `form:"phone" validate:"omitempty,nepali-phone"`
	Location string `form:"location" validate:"omitempty,max=100"`
	Username string `form:"username" validate:"omitempty,max=50"`
}
