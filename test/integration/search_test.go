package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"kamau_backend/internal/models"
	"kamau_backend/test/helpers"
)

type pagedResponse struct {
	Data       []json.RawMessage `json:"data"`
	Pagination struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	} `json:"pagination"`
}

func TestAdminSearch_ByName(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateSuperAdmin(t, ts, tx)

	helpers.CreateProfessional(t, tx, &models.Professional{FirstName: "Bishal", LastName: "Gurung"})
	helpers.CreateProfessional(t, tx, &models.Professional{FirstName: "Anita", LastName: "Bishalkota"})
	helpers.CreateProfessional(t, tx, &models.Professional{FirstName: "Hari", LastName: "Magar"})

	// Case-insensitive substring match over names.
	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/admin/professionals/search?search=bishal", token, nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	var resp pagedResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(2), resp.Pagination.Total)
}

func TestAdminSearch_CombinedFilters(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateSuperAdmin(t, ts, tx)

	helpers.CreateProfessional(t, tx, &models.Professional{
		FirstName:          "Target",
		ServiceCategory:    "painting",
		ServiceArea:        "boudha",
		VerificationStatus: models.VerificationStatusVerified,
	})
	helpers.CreateProfessional(t, tx, &models.Professional{
		FirstName:          "Target",
		ServiceCategory:    "painting",
		ServiceArea:        "boudha",
		VerificationStatus: models.VerificationStatusPending,
	})
	helpers.CreateProfessional(t, tx, &models.Professional{
		FirstName:          "Target",
		ServiceCategory:    "cleaning",
		ServiceArea:        "boudha",
		VerificationStatus: models.VerificationStatusVerified,
	})

	// Search term ORs across name fields; status/category/area AND in.
	res, body := ts.SendRequest(t, tx, http.MethodGet,
		"/api/v1/admin/professionals/search?search=target&status=verified&category=painting&area=boudha", token, nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	var resp pagedResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Len(t, resp.Data, 1)
}

func TestAdminList_Pagination(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateSuperAdmin(t, ts, tx)

	for i := 0; i < 25; i++ {
		helpers.CreateProfessional(t, tx, &models.Professional{})
	}

	var pages []pagedResponse
	for page := 1; page <= 3; page++ {
		res, body := ts.SendRequest(t, tx, http.MethodGet,
			fmt.Sprintf("/api/v1/admin/professionals?page=%d&limit=10", page), token, nil)
		require.Equal(t, http.StatusOK, res.Code, body)

		var resp pagedResponse
		require.NoError(t, json.Unmarshal([]byte(body), &resp))
		pages = append(pages, resp)
	}

	assert.Len(t, pages[0].Data, 10)
	assert.Len(t, pages[1].Data, 10)
	assert.Len(t, pages[2].Data, 5)
	for _, p := range pages {
		assert.Equal(t, int64(25), p.Pagination.Total)
		assert.Equal(t, 3, p.Pagination.Pages)
	}
}

func TestPendingQueue(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateSuperAdmin(t, ts, tx)

	helpers.CreateProfessional(t, tx, &models.Professional{VerificationStatus: models.VerificationStatusPending})
	helpers.CreateProfessional(t, tx, &models.Professional{VerificationStatus: models.VerificationStatusVerified})

	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/admin/professionals/pending", token, nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	var resp pagedResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Len(t, resp.Data, 1)
}

// The public listing only ever shows verified providers, and never their
// verification documents.
func TestPublicList_VerifiedOnly(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	helpers.CreateProfessional(t, tx, &models.Professional{
		Username:           "visible_pro",
		VerificationStatus: models.VerificationStatusVerified,
		VerificationDocuments: datatypes.NewJSONSlice([]models.VerificationDocument{
			{Filename: "secret-doc.pdf", Path: "documents/secret-doc.pdf"},
		}),
	})
	helpers.CreateProfessional(t, tx, &models.Professional{Username: "hidden_pro"})

	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/professionals", "", nil)
	require.Equal(t, http.StatusOK, res.Code, body)
	assert.Contains(t, body, "visible_pro")
	assert.NotContains(t, body, "hidden_pro")
	assert.NotContains(t, body, "secret-doc.pdf")
}

// The public search filters on serviceCategory/serviceArea, the names
// the frontend sends.
func TestPublicSearch_ParamNames(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	helpers.CreateProfessional(t, tx, &models.Professional{
		Username:           "patan_electrician",
		ServiceCategory:    "electrical",
		ServiceArea:        "patan",
		VerificationStatus: models.VerificationStatusVerified,
	})
	helpers.CreateProfessional(t, tx, &models.Professional{
		Username:           "patan_plumber",
		ServiceCategory:    "plumbing",
		ServiceArea:        "patan",
		VerificationStatus: models.VerificationStatusVerified,
	})

	res, body := ts.SendRequest(t, tx, http.MethodGet,
		"/api/v1/professionals/search?serviceCategory=electrical&serviceArea=patan", "", nil)
	require.Equal(t, http.StatusOK, res.Code, body)
	assert.Contains(t, body, "patan_electrician")
	assert.NotContains(t, body, "patan_plumber")
}

func TestPublicProfile_ByUsername(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	helpers.CreateProfessional(t, tx, &models.Professional{
		Username:           "profile_pro",
		VerificationStatus: models.VerificationStatusVerified,
	})
	helpers.CreateProfessional(t, tx, &models.Professional{Username: "pending_profile"})

	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/professionals/username/profile_pro", "", nil)
	assert.Equal(t, http.StatusOK, res.Code, body)
	assert.Contains(t, body, "profile_pro")

	// Pending providers have no public profile page.
	res, body = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/professionals/username/pending_profile", "", nil)
	assert.Equal(t, http.StatusNotFound, res.Code, body)
}
