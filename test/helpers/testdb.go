package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kamau_backend/internal/models"
)

// CreateAdmin inserts an admin inside the test transaction. A plain
// password is hashed on the way in.
func CreateAdmin(t *testing.T, tx *gorm.DB, admin *models.Admin) {
	if admin.PasswordHash != "" && !strings.HasPrefix(admin.PasswordHash, "$2a$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(admin.PasswordHash), bcrypt.DefaultCost)
		require.NoError(t, err, "hashing admin password must not fail")
		admin.PasswordHash = string(hashed)
	}
	if admin.Role == "" {
		admin.Role = models.AdminRoleAdmin
	}
	admin.IsActive = true

	require.NoError(t, tx.Create(admin).Error, "creating test admin must not fail")
}

// CreateAndLoginAdmin creates an admin with the given permissions and
// logs in through the API, returning the bearer token.
func CreateAndLoginAdmin(t *testing.T, ts *TestServer, tx *gorm.DB, role models.AdminRole, permissions []string) (string, *models.Admin) {
	username := fmt.Sprintf("admin_%d", time.Now().UnixNano())
	password := "admin_password123"

	admin := &models.Admin{
		Username:     username,
		Email:        username + "@test.com",
		PasswordHash: password,
		FullName:     "Test Admin",
		Role:         role,
		Permissions:  datatypes.NewJSONSlice(permissions),
	}
	CreateAdmin(t, tx, admin)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.Code, "admin login must succeed: "+body)

	var loginResponse struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &loginResponse))
	require.NotEmpty(t, loginResponse.Data.Token, "token must not be empty")

	return loginResponse.Data.Token, admin
}

// CreateSuperAdmin is shorthand for an all-permissions super_admin.
func CreateSuperAdmin(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.Admin) {
	return CreateAndLoginAdmin(t, ts, tx, models.AdminRoleSuperAdmin, models.AllPermissions)
}

// CreateProfessional inserts a professional directly in the transaction;
// unset fields get sensible defaults.
func CreateProfessional(t *testing.T, tx *gorm.DB, p *models.Professional) *models.Professional {
	n := time.Now().UnixNano()
	if p.FirstName == "" {
		p.FirstName = "Ram"
	}
	if p.LastName == "" {
		p.LastName = "Shrestha"
	}
	if p.Username == "" {
		p.Username = fmt.Sprintf("pro_%d", n)
	}
	if p.Email == "" {
		p.Email = fmt.Sprintf("pro_%d@test.com", n)
	}
	if p.Phone == "" {
		p.Phone = "9812345678"
	}
	if p.ServiceCategory == "" {
		p.ServiceCategory = "plumbing"
	}
	if p.ServiceArea == "" {
		p.ServiceArea = "thamel"
	}
	if p.HourlyWage == 0 {
		p.HourlyWage = 500
	}
	if p.VerificationStatus == "" {
		p.VerificationStatus = models.VerificationStatusPending
	}
	p.IsActive = true

	require.NoError(t, tx.Create(p).Error, "creating test professional must not fail")
	return p
}

// CreateUser inserts a verified end-user with a hashed password.
func CreateUser(t *testing.T, tx *gorm.DB, user *models.User) *models.User {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		require.NoError(t, err, "hashing user password must not fail")
		user.PasswordHash = string(hashed)
	}
	if user.Email == "" {
		user.Email = fmt.Sprintf("user_%d@test.com", time.Now().UnixNano())
	}
	user.IsVerified = true

	require.NoError(t, tx.Create(user).Error, "creating test user must not fail")
	return user
}
