package media

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Service names registered in the service container.
const (
	ServiceUpload = "upload-media"
	ServiceGet    = "get-media"
	ServiceDelete = "delete-media"
)

// MediaModule provides image storage services using NATS JetStream Object Store.
type MediaModule struct {
	store   *JetStreamObjectStore
	service *Service
	natsURL string
	bucket  string
}

// Compile-time interface checks.
var _ mono.Module = (*MediaModule)(nil)
var _ mono.ServiceProviderModule = (*MediaModule)(nil)
var _ mono.HealthCheckableModule = (*MediaModule)(nil)

// NewModule creates a new MediaModule.
func NewModule() *MediaModule {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	bucket := os.Getenv("MEDIA_BUCKET")
	if bucket == "" {
		bucket = "moviehub-media"
	}
	return &MediaModule{
		natsURL: natsURL,
		bucket:  bucket,
	}
}

// Name returns the module name.
func (m *MediaModule) Name() string {
	return "media"
}

// RegisterServices registers request-reply services in the service container.
func (m *MediaModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceUpload,
		json.Unmarshal,
		json.Marshal,
		m.handleUpload,
	); err != nil {
		return fmt.Errorf("failed to register upload-media service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceGet,
		json.Unmarshal,
		json.Marshal,
		m.handleGet,
	); err != nil {
		return fmt.Errorf("failed to register get-media service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceDelete,
		json.Unmarshal,
		json.Marshal,
		m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete-media service: %w", err)
	}

	log.Printf("[media] Registered services: upload-media, get-media, delete-media")
	return nil
}

// Start connects to NATS JetStream and prepares the bucket.
func (m *MediaModule) Start(ctx context.Context) error {
	var err error
	m.store, err = NewJetStreamObjectStore(m.natsURL, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to create object store: %w", err)
	}

	if err := m.store.Init(ctx); err != nil {
		m.store.Close()
		return fmt.Errorf("failed to initialize object store: %w", err)
	}

	m.service = NewService(m.store)

	log.Printf("[media] Module started (NATS: %s, bucket: %s)", m.natsURL, m.bucket)
	return nil
}

// Stop shuts down the module.
func (m *MediaModule) Stop(_ context.Context) error {
	if m.store != nil {
		m.store.Close()
	}
	log.Println("[media] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *MediaModule) Health(_ context.Context) mono.HealthStatus {
	healthy := m.store != nil && m.store.IsConnected()
	message := "connected"
	if !healthy {
		message = "disconnected"
	}
	return mono.HealthStatus{
		Healthy: healthy,
		Message: message,
		Details: map[string]any{
			"nats_url": m.natsURL,
			"bucket":   m.bucket,
		},
	}
}

// UploadRequest carries raw image bytes (base64 over the wire via JSON).
type UploadRequest struct {
	FileName string `json:"file_name"`
	Data     []byte `json:"data"`
}

// UploadResponse carries the stored image metadata.
type UploadResponse struct {
	Media *Meta `json:"media"`
}

// GetRequest asks for an image by ID.
type GetRequest struct {
	ID string `json:"id"`
}

// GetResponse carries image bytes and metadata.
type GetResponse struct {
	Data  []byte `json:"data"`
	Media *Meta  `json:"media"`
}

// DeleteRequest asks to remove an image.
type DeleteRequest struct {
	ID string `json:"id"`
}

// DeleteResponse reports the outcome.
type DeleteResponse struct {
	Success bool `json:"success"`
}

func (m *MediaModule) handleUpload(ctx context.Context, req UploadRequest, _ *mono.Msg) (UploadResponse, error) {
	meta, err := m.service.Upload(ctx, req.FileName, req.Data)
	if err != nil {
		return UploadResponse{}, err
	}
	return UploadResponse{Media: meta}, nil
}

func (m *MediaModule) handleGet(ctx context.Context, req GetRequest, _ *mono.Msg) (GetResponse, error) {
	data, meta, err := m.service.Get(ctx, req.ID)
	if err != nil {
		return GetResponse{}, err
	}
	return GetResponse{Data: data, Media: meta}, nil
}

func (m *MediaModule) handleDelete(ctx context.Context, req DeleteRequest, _ *mono.Msg) (DeleteResponse, error) {
	if err := m.service.Delete(ctx, req.ID); err != nil {
		return DeleteResponse{}, err
	}
	return DeleteResponse{Success: true}, nil
}
