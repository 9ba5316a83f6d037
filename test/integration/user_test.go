package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kamau_backend/internal/models"
	"kamau_backend/test/helpers"
)

func TestUserSignup_OTPFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/signup", "", map[string]interface{}{
		"name":     "Maya Shakya",
		"email":    "maya@test.com",
		"password": "secret_pass1",
		"address":  "Jawalakhel, Lalitpur",
	})
	require.Equal(t, http.StatusCreated, res.Code, body)

	var signup struct {
		Data struct {
			UserID string `json:"userId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &signup))
	require.NotEmpty(t, signup.Data.UserID)

	// The account starts unverified with a 6-digit code on file.
	var user models.User
	require.NoError(t, tx.First(&user, "id = ?", signup.Data.UserID).Error)
	assert.False(t, user.IsVerified)
	assert.Len(t, user.OTP, 6)
	require.NotNil(t, user.OTPExpires)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), *user.OTPExpires, time.Minute)

	// Login before verification is refused.
	res, body = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/login", "", map[string]interface{}{
		"email":    "maya@test.com",
		"password": "secret_pass1",
	})
	assert.Equal(t, http.StatusUnauthorized, res.Code, body)
	assert.Contains(t, body, "User not verified")

	// Wrong code is refused.
	wrong := "000000"
	if user.OTP == wrong {
		wrong = "000001"
	}
	res, body = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/verify-otp", "", map[string]interface{}{
		"userId": signup.Data.UserID,
		"otp":    wrong,
	})
	assert.Equal(t, http.StatusBadRequest, res.Code, body)

	// The right code verifies the account and returns a session token.
	res, body = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/verify-otp", "", map[string]interface{}{
		"userId": signup.Data.UserID,
		"otp":    user.OTP,
	})
	require.Equal(t, http.StatusOK, res.Code, body)
	assert.Contains(t, body, "token")

	// Verification is one-shot: the code is cleared.
	require.NoError(t, tx.First(&user, "id = ?", signup.Data.UserID).Error)
	assert.True(t, user.IsVerified)
	assert.Empty(t, user.OTP)

	// And a normal login now works.
	res, body = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/login", "", map[string]interface{}{
		"email":    "maya@test.com",
		"password": "secret_pass1",
	})
	assert.Equal(t, http.StatusOK, res.Code, body)
}

func TestUserSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	helpers.CreateUser(t, tx, &models.User{
		Name:         "First User",
		Email:        "dupe_user@test.com",
		PasswordHash: "some_password",
	})

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/signup", "", map[string]interface{}{
		"name":     "Second User",
		"email":    "dupe_user@test.com",
		"password": "another_pass1",
		"address":  "Boudha, Kathmandu",
	})
	assert.Equal(t, http.StatusConflict, res.Code, body)
	assert.Contains(t, body, "Email already registered")
}

func TestVerifyOTP_Expired(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	expired := time.Now().Add(-time.Minute)
	user := &models.User{
		Name:         "Late Verifier",
		Email:        "late@test.com",
		PasswordHash: "hash_not_needed",
		OTP:          "123456",
		OTPExpires:   &expired,
	}
	require.NoError(t, tx.Create(user).Error)

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/verify-otp", "", map[string]interface{}{
		"userId": user.ID,
		"otp":    "123456",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code, body)
	assert.Contains(t, body, "OTP expired")

	// A resend mints a fresh code with a new expiry.
	res, body = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/resend-otp", "", map[string]interface{}{
		"userId": user.ID,
	})
	require.Equal(t, http.StatusOK, res.Code, body)

	var reloaded models.User
	require.NoError(t, tx.First(&reloaded, "id = ?", user.ID).Error)
	assert.Len(t, reloaded.OTP, 6)
	assert.True(t, reloaded.OTPExpires.After(time.Now()))
}

func TestUserProfile_OwnershipGuard(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	owner := helpers.CreateUser(t, tx, &models.User{Name: "Owner", PasswordHash: "owner_pass123"})
	other := helpers.CreateUser(t, tx, &models.User{Name: "Other", PasswordHash: "other_pass123"})

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/login", "", map[string]interface{}{
		"email":    owner.Email,
		"password": "owner_pass123",
	})
	require.Equal(t, http.StatusOK, res.Code, body)

	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &login))

	// A user may only edit their own profile.
	res, body = ts.SendMultipart(t, tx, http.MethodPut, "/api/v1/users/"+other.ID+"/profile", login.Data.Token,
		map[string]string{"fullName": "Hijacked"}, nil)
	assert.Equal(t, http.StatusForbidden, res.Code, body)

	res, body = ts.SendMultipart(t, tx, http.MethodPut, "/api/v1/users/"+owner.ID+"/profile", login.Data.Token,
		map[string]string{"fullName": "Renamed Owner", "location": "Patan"}, nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	var reloaded models.User
	require.NoError(t, tx.First(&reloaded, "id = ?", owner.ID).Error)
	assert.Equal(t, "Renamed Owner", reloaded.Name)
	assert.Equal(t, "Patan", reloaded.Location)
}
