package tweet

import (
	"context"
	"errors"
	"strings"
	"testing"

	domain "github.com/avinash111921/MovieHub/domain/tweet"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Tweet{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return NewService(NewRepository(db))
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		poster  string
		wantErr error
	}{
		{"valid", "Great movie!", "/api/v1/media/p1", nil},
		{"missing content", "", "/api/v1/media/p1", ErrContentRequired},
		{"missing poster", "Great movie!", "", ErrPosterRequired},
		{"content too long", strings.Repeat("x", 501), "/api/v1/media/p1", ErrContentTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setupTestService(t)
			tw, err := svc.Create(context.Background(), "u1", tt.content, tt.poster)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if tw.ID == "" {
					t.Error("created tweet has no ID")
				}
				if tw.OwnerID != "u1" {
					t.Errorf("OwnerID = %q, want u1", tw.OwnerID)
				}
			}
		})
	}
}

func TestListByOwner(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "u1", "first", "/p1"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ctx, "u2", "second", "/p2"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ctx, "u1", "third", "/p3"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListAll returned %d tweets, want 3", len(all))
	}

	mine, err := svc.ListByOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("list by owner failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("ListByOwner returned %d tweets, want 2", len(mine))
	}
	for _, tw := range mine {
		if tw.OwnerID != "u1" {
			t.Errorf("listed tweet owned by %q, want u1", tw.OwnerID)
		}
	}
}

func TestUpdateOwnership(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", "original", "/p1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.UpdateContent(ctx, created.ID, "u2", "hijacked"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("non-owner update error = %v, want ErrNotOwner", err)
	}

	updated, err := svc.UpdateContent(ctx, created.ID, "u1", "revised")
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Content != "revised" {
		t.Errorf("Content = %q, want revised", updated.Content)
	}

	reposter, err := svc.UpdatePoster(ctx, created.ID, "u1", "/p2")
	if err != nil {
		t.Fatalf("poster update failed: %v", err)
	}
	if reposter.Poster != "/p2" {
		t.Errorf("Poster = %q, want /p2", reposter.Poster)
	}
}

func TestDeleteOwnership(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", "to delete", "/p1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID, "u2"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("non-owner delete error = %v, want ErrNotOwner", err)
	}
	if err := svc.Delete(ctx, created.ID, "u1"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, "missing", "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete of missing tweet error = %v, want ErrNotFound", err)
	}
}
