package integration_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"kamau_backend/internal/models"
	"kamau_backend/test/helpers"
)

func registerForm(email, username string) map[string]string {
	return map[string]string{
		"firstName":       "Sita",
		"lastName":        "Tamang",
		"username":        username,
		"email":           email,
		"phone":           "9841234567",
		"serviceCategory": "electrical",
		"serviceArea":     "patan",
		"hourlyWage":      "650",
		"bio":             "Licensed electrician with 8 years of experience.",
	}
}

// A new registration always enters the workflow as pending, whatever the
// client sends.
func TestRegisterProfessional_StartsPending(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	form := registerForm("pending_start@test.com", "pending_start")
	form["verificationStatus"] = "verified" // must be ignored

	res, body := ts.SendMultipart(t, tx, http.MethodPost, "/api/v1/professionals/register", "", form, nil)
	assert.Equal(t, http.StatusCreated, res.Code, body)
	assert.Contains(t, body, `"verificationStatus":"pending"`)

	var stored models.Professional
	assert.NoError(t, tx.First(&stored, "email = ?", "pending_start@test.com").Error)
	assert.Equal(t, models.VerificationStatusPending, stored.VerificationStatus)
	assert.Nil(t, stored.VerificationDate)
}

func TestRegisterProfessional_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	helpers.CreateProfessional(t, tx, &models.Professional{Email: "taken@test.com", Username: "first_taker"})

	res, body := ts.SendMultipart(t, tx, http.MethodPost, "/api/v1/professionals/register", "",
		registerForm("taken@test.com", "second_taker"), nil)
	assert.Equal(t, http.StatusConflict, res.Code, body)
	assert.Contains(t, body, "Email already registered")
}

func TestRegisterProfessional_DuplicateUsername(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	helpers.CreateProfessional(t, tx, &models.Professional{Email: "name_one@test.com", Username: "shared_handle"})

	res, body := ts.SendMultipart(t, tx, http.MethodPost, "/api/v1/professionals/register", "",
		registerForm("name_two@test.com", "shared_handle"), nil)
	assert.Equal(t, http.StatusConflict, res.Code, body)
	assert.Contains(t, body, "Username already taken")
}

func TestRegisterProfessional_InvalidCategory(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	form := registerForm("bad_cat@test.com", "bad_cat")
	form["serviceCategory"] = "astrology"

	res, body := ts.SendMultipart(t, tx, http.MethodPost, "/api/v1/professionals/register", "", form, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code, body)
	assert.Contains(t, body, "serviceCategory")
}

func TestApprove_Flow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateSuperAdmin(t, ts, tx)
	pro := helpers.CreateProfessional(t, tx, &models.Professional{})

	res, body := ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/admin/applications/"+pro.ID+"/approve", token, nil)
	assert.Equal(t, http.StatusOK, res.Code, body)
	assert.Contains(t, body, "Application approved")

	var stored models.Professional
	assert.NoError(t, tx.First(&stored, "id = ?", pro.ID).Error)
	assert.Equal(t, models.VerificationStatusVerified, stored.VerificationStatus)
	assert.NotNil(t, stored.VerificationDate)
	assert.Equal(t, 1, stored.Revision)

	// Approving again is an idempotent success.
	res, body = ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/admin/applications/"+pro.ID+"/approve", token, nil)
	assert.Equal(t, http.StatusOK, res.Code, body)
}

// A blank reason must be refused before anything is written.
func TestReject_BlankReason(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateSuperAdmin(t, ts, tx)
	pro := helpers.CreateProfessional(t, tx, &models.Professional{})

	res, body := ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/admin/applications/"+pro.ID+"/reject", token,
		map[string]interface{}{"rejectionReason": "   "})
	assert.Equal(t, http.StatusBadRequest, res.Code, body)

	var stored models.Professional
	assert.NoError(t, tx.First(&stored, "id = ?", pro.ID).Error)
	assert.Equal(t, models.VerificationStatusPending, stored.VerificationStatus)
	assert.Equal(t, 0, stored.Revision)
}

// The wire field is rejectionReason; reason is kept as an alias for
// older clients.
func TestReject_ReasonFieldNames(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateSuperAdmin(t, ts, tx)

	documented := helpers.CreateProfessional(t, tx, &models.Professional{})
	res, body := ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/admin/applications/"+documented.ID+"/reject", token,
		map[string]interface{}{"rejectionReason": "Incomplete documents"})
	assert.Equal(t, http.StatusOK, res.Code, body)

	var stored models.Professional
	assert.NoError(t, tx.First(&stored, "id = ?", documented.ID).Error)
	assert.Equal(t, "Incomplete documents", stored.RejectionReason)

	legacy := helpers.CreateProfessional(t, tx, &models.Professional{})
	res, body = ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/admin/applications/"+legacy.ID+"/reject", token,
		map[string]interface{}{"reason": "Expired licence"})
	assert.Equal(t, http.StatusOK, res.Code, body)

	assert.NoError(t, tx.First(&stored, "id = ?", legacy.ID).Error)
	assert.Equal(t, "Expired licence", stored.RejectionReason)
}

func TestReject_ThenApproveRefused(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateSuperAdmin(t, ts, tx)
	pro := helpers.CreateProfessional(t, tx, &models.Professional{})

	res, body := ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/admin/applications/"+pro.ID+"/reject", token,
		map[string]interface{}{"rejectionReason": "Documents unreadable"})
	assert.Equal(t, http.StatusOK, res.Code, body)

	var stored models.Professional
	assert.NoError(t, tx.First(&stored, "id = ?", pro.ID).Error)
	assert.Equal(t, models.VerificationStatusRejected, stored.VerificationStatus)
	assert.Equal(t, "Documents unreadable", stored.RejectionReason)

	// Rejected records cannot be approved directly.
	res, body = ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/admin/applications/"+pro.ID+"/approve", token, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code, body)
	assert.Contains(t, body, "Cannot move application")
}

func TestReopen_ClearsDecision(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateSuperAdmin(t, ts, tx)
	pro := helpers.CreateProfessional(t, tx, &models.Professional{})

	res, _ := ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/admin/applications/"+pro.ID+"/reject", token,
		map[string]interface{}{"rejectionReason": "Incomplete application"})
	assert.Equal(t, http.StatusOK, res.Code)

	res, body := ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/admin/applications/"+pro.ID+"/reopen", token, nil)
	assert.Equal(t, http.StatusOK, res.Code, body)

	var stored models.Professional
	assert.NoError(t, tx.First(&stored, "id = ?", pro.ID).Error)
	assert.Equal(t, models.VerificationStatusPending, stored.VerificationStatus)
	assert.Empty(t, stored.RejectionReason)
	assert.Nil(t, stored.VerificationDate)
	assert.Equal(t, 2, stored.Revision)

	// Back in pending, approval works again.
	res, body = ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/admin/applications/"+pro.ID+"/approve", token, nil)
	assert.Equal(t, http.StatusOK, res.Code, body)
}

func TestWorkflow_UnknownID(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateSuperAdmin(t, ts, tx)

	res, body := ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/admin/applications/"+uuid.NewString()+"/approve", token, nil)
	assert.Equal(t, http.StatusNotFound, res.Code, body)
	assert.Contains(t, body, "Professional not found")
}

func TestDeleteProfessional(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateSuperAdmin(t, ts, tx)
	pro := helpers.CreateProfessional(t, tx, &models.Professional{})

	res, body := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/professionals/"+pro.ID, token, nil)
	assert.Equal(t, http.StatusOK, res.Code, body)

	var count int64
	assert.NoError(t, tx.Model(&models.Professional{}).Where("id = ?", pro.ID).Count(&count).Error)
	assert.Zero(t, count)
}
