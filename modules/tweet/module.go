package tweet

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/avinash111921/MovieHub/domain/tweet"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TweetModule provides movie-review services.
type TweetModule struct {
	db      *gorm.DB
	service *Service
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*TweetModule)(nil)
var _ mono.ServiceProviderModule = (*TweetModule)(nil)
var _ mono.HealthCheckableModule = (*TweetModule)(nil)

// NewModule creates a new TweetModule.
func NewModule() *TweetModule {
	dbPath := os.Getenv("MOVIEHUB_DB_PATH")
	if dbPath == "" {
		dbPath = "moviehub.db"
	}
	return &TweetModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *TweetModule) Name() string {
	return "tweet"
}

// Start initializes the tweet module.
func (m *TweetModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Tweet{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewService(NewRepository(db))

	log.Printf("[tweet] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *TweetModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[tweet] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TweetModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}
	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TweetModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func(mono.ServiceContainer) error{
		ServiceCreate: func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, ServiceCreate, json.Unmarshal, json.Marshal, m.handleCreate)
		},
		ServiceGet: func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, ServiceGet, json.Unmarshal, json.Marshal, m.handleGet)
		},
		ServiceList: func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, ServiceList, json.Unmarshal, json.Marshal, m.handleList)
		},
		ServiceListByOwner: func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, ServiceListByOwner, json.Unmarshal, json.Marshal, m.handleListByOwner)
		},
		ServiceUpdate: func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, ServiceUpdate, json.Unmarshal, json.Marshal, m.handleUpdate)
		},
		ServiceUpdatePoster: func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, ServiceUpdatePoster, json.Unmarshal, json.Marshal, m.handleUpdatePoster)
		},
		ServiceDelete: func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, ServiceDelete, json.Unmarshal, json.Marshal, m.handleDelete)
		},
	}

	for name, register := range services {
		if err := register(container); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[tweet] Registered services: create-tweet, get-tweet, list-tweets, list-user-tweets, update-tweet, update-tweet-poster, delete-tweet")
	return nil
}

func (m *TweetModule) handleCreate(ctx context.Context, req CreateRequest, _ *mono.Msg) (CreateResponse, error) {
	t, err := m.service.Create(ctx, req.OwnerID, req.Content, req.Poster)
	if err != nil {
		return CreateResponse{}, err
	}
	return CreateResponse{Tweet: t}, nil
}

func (m *TweetModule) handleGet(ctx context.Context, req GetRequest, _ *mono.Msg) (GetResponse, error) {
	t, err := m.service.Get(ctx, req.TweetID)
	if err != nil {
		return GetResponse{}, err
	}
	return GetResponse{Tweet: t}, nil
}

func (m *TweetModule) handleList(ctx context.Context, _ ListRequest, _ *mono.Msg) (ListResponse, error) {
	tweets, err := m.service.ListAll(ctx)
	if err != nil {
		return ListResponse{}, err
	}
	return ListResponse{Tweets: tweets}, nil
}

func (m *TweetModule) handleListByOwner(ctx context.Context, req ListByOwnerRequest, _ *mono.Msg) (ListByOwnerResponse, error) {
	tweets, err := m.service.ListByOwner(ctx, req.OwnerID)
	if err != nil {
		return ListByOwnerResponse{}, err
	}
	return ListByOwnerResponse{Tweets: tweets}, nil
}

func (m *TweetModule) handleUpdate(ctx context.Context, req UpdateRequest, _ *mono.Msg) (UpdateResponse, error) {
	t, err := m.service.UpdateContent(ctx, req.TweetID, req.RequesterID, req.Content)
	if err != nil {
		return UpdateResponse{}, err
	}
	return UpdateResponse{Tweet: t}, nil
}

func (m *TweetModule) handleUpdatePoster(ctx context.Context, req UpdatePosterRequest, _ *mono.Msg) (UpdatePosterResponse, error) {
	t, err := m.service.UpdatePoster(ctx, req.TweetID, req.RequesterID, req.Poster)
	if err != nil {
		return UpdatePosterResponse{}, err
	}
	return UpdatePosterResponse{Tweet: t}, nil
}

func (m *TweetModule) handleDelete(ctx context.Context, req DeleteRequest, _ *mono.Msg) (DeleteResponse, error) {
	if err := m.service.Delete(ctx, req.TweetID, req.RequesterID); err != nil {
		return DeleteResponse{}, err
	}
	return DeleteResponse{Success: true}, nil
}
