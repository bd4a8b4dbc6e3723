package media

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// memStore is an in-memory ObjectStore for tests.
type memStore struct {
	objects map[string]memObject
}

type memObject struct {
	data        []byte
	contentType string
	modTime     time.Time
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string]memObject)}
}

func (s *memStore) Put(_ context.Context, name string, data []byte, contentType string) (*ObjectInfo, error) {
	obj := memObject{data: data, contentType: contentType, modTime: time.Now()}
	s.objects[name] = obj
	return &ObjectInfo{Name: name, Size: uint64(len(data)), ContentType: contentType, ModTime: obj.modTime}, nil
}

func (s *memStore) Get(_ context.Context, name string) ([]byte, *ObjectInfo, error) {
	obj, ok := s.objects[name]
	if !ok {
		return nil, nil, errors.New("object not found")
	}
	return obj.data, &ObjectInfo{Name: name, Size: uint64(len(obj.data)), ContentType: obj.contentType, ModTime: obj.modTime}, nil
}

func (s *memStore) Delete(_ context.Context, name string) error {
	if _, ok := s.objects[name]; !ok {
		return errors.New("object not found")
	}
	delete(s.objects, name)
	return nil
}

func (s *memStore) GetInfo(_ context.Context, name string) (*ObjectInfo, error) {
	obj, ok := s.objects[name]
	if !ok {
		return nil, errors.New("object not found")
	}
	return &ObjectInfo{Name: name, Size: uint64(len(obj.data)), ContentType: obj.contentType, ModTime: obj.modTime}, nil
}

func TestUploadValidation(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		data     []byte
		wantErr  error
		wantType string
	}{
		{"jpeg", "poster.jpg", []byte("fake-jpeg"), nil, "image/jpeg"},
		{"png uppercase ext", "AVATAR.PNG", []byte("fake-png"), nil, "image/png"},
		{"webp", "cover.webp", []byte("fake-webp"), nil, "image/webp"},
		{"empty file", "poster.jpg", nil, ErrEmptyFile, ""},
		{"unsupported type", "document.pdf", []byte("fake-pdf"), ErrUnsupportedType, ""},
		{"no extension", "poster", []byte("data"), ErrUnsupportedType, ""},
		{"too large", "big.png", make([]byte, MaxImageSize+1), ErrFileTooLarge, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newMemStore())
			meta, err := svc.Upload(context.Background(), tt.fileName, tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Upload error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if meta.ContentType != tt.wantType {
				t.Errorf("ContentType = %q, want %q", meta.ContentType, tt.wantType)
			}
			if meta.ID == "" {
				t.Error("uploaded media has no ID")
			}
			if !strings.HasPrefix(meta.URL, "/api/v1/media/") {
				t.Errorf("URL = %q, want /api/v1/media/ prefix", meta.URL)
			}
		})
	}
}

func TestUploadGetRoundTrip(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	payload := []byte("image-bytes")
	meta, err := svc.Upload(ctx, "poster.png", payload)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	data, got, err := svc.Get(ctx, meta.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Error("retrieved bytes differ from upload")
	}
	if got.ContentType != "image/png" {
		t.Errorf("ContentType = %q, want image/png", got.ContentType)
	}
}

func TestGetUnknownID(t *testing.T) {
	svc := NewService(newMemStore())

	if _, _, err := svc.Get(context.Background(), "not-a-uuid"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get with malformed id error = %v, want ErrNotFound", err)
	}
	if _, _, err := svc.Get(context.Background(), "aa68ff4e-06ea-4f8c-9cfa-9bd71a6bb93c"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get with unknown id error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	meta, err := svc.Upload(ctx, "poster.gif", []byte("gif-bytes"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if err := svc.Delete(ctx, meta.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, _, err := svc.Get(ctx, meta.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, meta.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"poster.jpg", "poster.jpg"},
		{"../../etc/passwd.png", "passwd.png"},
		{"dir/nested/image.webp", "image.webp"},
		{"", "upload"},
	}
	for _, tt := range tests {
		if got := sanitizeFileName(tt.in); got != tt.want {
			t.Errorf("sanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
