package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Storage abstracts where uploaded files live.
type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	GetURL(ctx context.Context, path string) (string, error)
	GetSize(ctx context.Context, path string) (int64, error)
}

// Config holds storage settings.
type Config struct {
	BasePath string
	BaseURL  string
}

// NewStorage builds the configured storage backend.
func NewStorage(cfg Config) (Storage, error) {
	return NewLocalStorage(cfg)
}

// UniqueFilename derives a collision-free stored name from an original
// upload name: nanosecond timestamp plus a random suffix, extension kept.
// Names are never reused, so no locking is required around writes.
func UniqueFilename(originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)
}
