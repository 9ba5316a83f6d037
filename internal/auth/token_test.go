package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"kamau_backend/internal/models"
)

func testAdmin() *models.Admin {
	admin := &models.Admin{
		Username:    "gatekeeper",
		Email:       "gatekeeper@test.com",
		Role:        models.AdminRoleAdmin,
		Permissions: datatypes.NewJSONSlice([]string{models.PermViewDashboard, models.PermExportData}),
	}
	admin.ID = uuid.NewString()
	return admin
}

// Everything put into the token must come back out unchanged.
func TestIssueAdminToken_ClaimFidelity(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", time.Hour, time.Hour)
	admin := testAdmin()

	tokenStr, err := tm.IssueAdminToken(admin)
	require.NoError(t, err)

	claims, err := tm.ParseToken(tokenStr)
	require.NoError(t, err)

	assert.Equal(t, admin.ID, claims.AccountID)
	assert.Equal(t, admin.Username, claims.Username)
	assert.Equal(t, admin.Email, claims.Email)
	assert.Equal(t, admin.Role, claims.Role)
	assert.Equal(t, []string{models.PermViewDashboard, models.PermExportData}, claims.Permissions)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseToken_Expired(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", time.Nanosecond, time.Nanosecond)

	tokenStr, err := tm.IssueAdminToken(testAdmin())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = tm.ParseToken(tokenStr)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour, time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour, time.Hour)

	tokenStr, err := issuer.IssueAdminToken(testAdmin())
	require.NoError(t, err)

	_, err = verifier.ParseToken(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", time.Hour, time.Hour)

	for _, bad := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.ParseToken(bad)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", bad)
	}
}

func TestIssueUserToken_NoAdminClaims(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", time.Hour, time.Hour)

	user := &models.User{Email: "client@test.com", Username: "client"}
	user.ID = uuid.NewString()

	tokenStr, err := tm.IssueUserToken(user)
	require.NoError(t, err)

	claims, err := tm.ParseToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.AccountID)
	assert.Empty(t, claims.Role)
	assert.Empty(t, claims.Permissions)
}
