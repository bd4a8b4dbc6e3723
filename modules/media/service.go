package media

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxImageSize caps uploads at 5 MiB, matching typical poster/avatar sizes.
const MaxImageSize = 5 << 20

var (
	// ErrEmptyFile is returned for zero-length uploads.
	ErrEmptyFile = errors.New("uploaded file is empty")
	// ErrFileTooLarge is returned when an upload exceeds MaxImageSize.
	ErrFileTooLarge = errors.New("uploaded file exceeds the 5MB limit")
	// ErrUnsupportedType is returned for non-image uploads.
	ErrUnsupportedType = errors.New("only jpeg, png, gif and webp images are accepted")
	// ErrNotFound is returned when a media object does not exist.
	ErrNotFound = errors.New("media not found")
)

// imageContentTypes maps accepted file extensions to their content types.
var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Meta describes a stored image. URL is the path the api module serves it
// from; it is the only thing other modules persist.
type Meta struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Service provides image storage operations on top of an ObjectStore.
type Service struct {
	store ObjectStore
}

// NewService creates a new media service.
func NewService(store ObjectStore) *Service {
	return &Service{store: store}
}

// Upload validates and stores an image, returning its metadata including the
// retrievable URL.
func (s *Service) Upload(ctx context.Context, fileName string, data []byte) (*Meta, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) > MaxImageSize {
		return nil, ErrFileTooLarge
	}

	contentType, ok := imageContentTypes[strings.ToLower(filepath.Ext(fileName))]
	if !ok {
		return nil, ErrUnsupportedType
	}

	id := uuid.New().String()
	info, err := s.store.Put(ctx, id, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	return &Meta{
		ID:          id,
		FileName:    sanitizeFileName(fileName),
		ContentType: contentType,
		Size:        int64(info.Size),
		URL:         URLForID(id),
		UploadedAt:  info.ModTime,
	}, nil
}

// Get retrieves an image by ID.
func (s *Service) Get(ctx context.Context, id string) ([]byte, *Meta, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil, ErrNotFound
	}

	data, info, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, nil, ErrNotFound
	}

	return data, &Meta{
		ID:          id,
		ContentType: info.ContentType,
		Size:        int64(info.Size),
		URL:         URLForID(id),
		UploadedAt:  info.ModTime,
	}, nil
}

// Delete removes an image by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	if _, err := s.store.GetInfo(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.store.Delete(ctx, id)
}

// URLForID returns the serving path for a stored image.
func URLForID(id string) string {
	return "/api/v1/media/" + id
}

// sanitizeFileName strips path components from a client-supplied filename.
func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == "/" {
		return "upload"
	}
	return name
}
