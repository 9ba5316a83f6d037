package models

import "time"

// User is an end client account. OTP fields are transient: set at signup
// or resend, cleared once verified.
type User struct {
	BaseModel
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Address      string     `json:"address"`
	Phone        string     `json:"phone"`
	Location     string     `json:"location"`
	Username     string     `json:"username"`
	ProfileImage string     `json:"profileImage"`
	OTP          string     `json:"-"`
	OTPExpires   *time.Time `json:"-"`
	IsVerified   bool       `gorm:"default:false" json:"isVerified"`
}
