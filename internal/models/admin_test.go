package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestRecordLogin_CapsHistory(t *testing.T) {
	admin := &Admin{}

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < LoginHistoryLimit+5; i++ {
		admin.RecordLogin(base.Add(time.Duration(i)*time.Hour), fmt.Sprintf("10.0.0.%d", i), "test-agent")
	}

	assert.Len(t, admin.LoginHistory, LoginHistoryLimit)
	// Oldest entries are evicted first.
	assert.Equal(t, "10.0.0.5", admin.LoginHistory[0].IPAddress)
	assert.Equal(t, "10.0.0.14", admin.LoginHistory[LoginHistoryLimit-1].IPAddress)
	assert.NotNil(t, admin.LastLogin)
	assert.Equal(t, base.Add(14*time.Hour), *admin.LastLogin)
}

func TestAdminHasPermission(t *testing.T) {
	admin := &Admin{Permissions: datatypes.NewJSONSlice([]string{PermViewDashboard, PermExportData})}

	assert.True(t, admin.HasPermission(PermViewDashboard))
	assert.False(t, admin.HasPermission(PermManageAdmins))
	assert.False(t, (&Admin{}).HasPermission(PermViewDashboard))
}

func TestEnumValidators(t *testing.T) {
	assert.True(t, IsValidServiceCategory("plumbing"))
	assert.True(t, IsValidServiceCategory("tutoring"))
	assert.False(t, IsValidServiceCategory("astrology"))

	assert.True(t, IsValidServiceArea("thamel"))
	assert.False(t, IsValidServiceArea("pokhara"))

	assert.True(t, IsValidVerificationStatus("pending"))
	assert.True(t, IsValidVerificationStatus("verified"))
	assert.True(t, IsValidVerificationStatus("rejected"))
	assert.False(t, IsValidVerificationStatus("approved"))
}
