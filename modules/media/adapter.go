package media

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// MediaPort defines the interface for media operations.
type MediaPort interface {
	Upload(ctx context.Context, fileName string, data []byte) (*Meta, error)
	Get(ctx context.Context, id string) ([]byte, *Meta, error)
	Delete(ctx context.Context, id string) error
}

// MediaAdapter implements MediaPort using the service container.
type MediaAdapter struct {
	container mono.ServiceContainer
}

// NewMediaAdapter creates a new MediaAdapter.
func NewMediaAdapter(container mono.ServiceContainer) *MediaAdapter {
	return &MediaAdapter{
		container: container,
	}
}

// Upload stores an image and returns its metadata.
func (a *MediaAdapter) Upload(ctx context.Context, fileName string, data []byte) (*Meta, error) {
	req := UploadRequest{FileName: fileName, Data: data}
	var resp UploadResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceUpload,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("upload-media request failed: %w", err)
	}
	return resp.Media, nil
}

// Get retrieves an image by ID.
func (a *MediaAdapter) Get(ctx context.Context, id string) ([]byte, *Meta, error) {
	req := GetRequest{ID: id}
	var resp GetResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGet,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, nil, fmt.Errorf("get-media request failed: %w", err)
	}
	return resp.Data, resp.Media, nil
}

// Delete removes an image by ID.
func (a *MediaAdapter) Delete(ctx context.Context, id string) error {
	req := DeleteRequest{ID: id}
	var resp DeleteResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceDelete,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return fmt.Errorf("delete-media request failed: %w", err)
	}
	return nil
}
