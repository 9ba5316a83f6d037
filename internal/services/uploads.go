package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"kamau_backend/internal/storage"
	"kamau_backend/pkg/apperrors"
)

// UploadPolicy bounds incoming files. Zero MaxSize means no size check.
type UploadPolicy struct {
	MaxSize      int64
	AllowedTypes []string
}

// CheckFile validates a single multipart file against the policy.
func (p UploadPolicy) CheckFile(fh *multipart.FileHeader) error {
	if p.MaxSize > 0 && fh.Size > p.MaxSize {
		return apperrors.NewBadRequestError(fmt.Sprintf(
			"File '%s' exceeds the maximum size of %d bytes", fh.Filename, p.MaxSize))
	}
	if len(p.AllowedTypes) == 0 {
		return nil
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(fh.Filename)), ".")
	for _, t := range p.AllowedTypes {
		if ext == strings.ToLower(t) {
			return nil
		}
	}
	return apperrors.NewBadRequestError(fmt.Sprintf(
		"File type '%s' is not allowed", ext))
}

// saveUpload streams a multipart file into storage under subdir and
// returns the stored path.
func saveUpload(files storage.Storage, subdir string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	stored := path.Join(subdir, storage.UniqueFilename(fh.Filename))
	contentType := fh.Header.Get("Content-Type")
	if err := files.Save(context.Background(), stored, src, contentType); err != nil {
		return "", err
	}
	return stored, nil
}
