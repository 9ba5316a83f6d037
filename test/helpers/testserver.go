package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kamau_backend/internal/app"
	"kamau_backend/internal/config"
	"kamau_backend/internal/models"
	"kamau_backend/pkg/contextkeys"
)

// TestServer wraps the fully wired router plus the shared database pool.
// Requests are dispatched in-process through ServeHTTP so each test can
// ride its own transaction: the tx travels in the request context and
// DBMiddleware picks it up instead of the pool.
type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

// NewTestServer connects to the test database from DATABASE_URL, runs
// migrations and builds the application router.
func NewTestServer(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	config.LoadConfig()
	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database (%s): %v", cfg.Database.DSN, err)
	}

	err = db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Professional{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	router := app.SetupRouter(cfg, db)
	log.Printf("test server ready, database %s", cfg.Database.DSN)

	return &TestServer{Router: router, DB: db}
}

func (ts *TestServer) Close() {
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// BeginTransaction opens the per-test transaction. Everything the test
// writes, directly or through the API, lands in it and is rolled back.
func (ts *TestServer) BeginTransaction(t *testing.T) *gorm.DB {
	tx := ts.DB.Begin()
	if tx.Error != nil {
		t.Fatalf("failed to begin test transaction: %v", tx.Error)
	}
	return tx
}

func (ts *TestServer) RollbackTransaction(t *testing.T, tx *gorm.DB) {
	if err := tx.Rollback().Error; err != nil && err != gorm.ErrInvalidTransaction {
		t.Logf("rollback failed: %v", err)
	}
}

// SendRequest dispatches a JSON request through the router inside tx.
func (ts *TestServer) SendRequest(t *testing.T, tx *gorm.DB, method, path, token string, body interface{}) (*httptest.ResponseRecorder, string) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.do(t, tx, req, token)
}

// SendMultipart dispatches a multipart form request, used for the
// registration and profile upload endpoints.
func (ts *TestServer) SendMultipart(t *testing.T, tx *gorm.DB, method, path, token string, fields map[string]string, files map[string][]byte) (*httptest.ResponseRecorder, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field %s: %v", key, err)
		}
	}
	for name, content := range files {
		part, err := writer.CreateFormFile(name, name+".png")
		if err != nil {
			t.Fatalf("failed to create form file %s: %v", name, err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("failed to write form file %s: %v", name, err)
		}
	}
	writer.Close()

	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return ts.do(t, tx, req, token)
}

func (ts *TestServer) do(t *testing.T, tx *gorm.DB, req *http.Request, token string) (*httptest.ResponseRecorder, string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if tx != nil {
		ctx := context.WithValue(req.Context(), contextkeys.DBContextKey, tx)
		req = req.WithContext(ctx)
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w, w.Body.String()
}
