package message

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/avinash111921/MovieHub/domain/message"
	"github.com/avinash111921/MovieHub/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MessageModule provides direct-messaging services and emits an event after
// each persisted message for the realtime layer to deliver.
type MessageModule struct {
	db       *gorm.DB
	service  *Service
	eventBus mono.EventBus
	dbPath   string
}

// Compile-time interface checks.
var _ mono.Module = (*MessageModule)(nil)
var _ mono.ServiceProviderModule = (*MessageModule)(nil)
var _ mono.EventBusAwareModule = (*MessageModule)(nil)
var _ mono.EventEmitterModule = (*MessageModule)(nil)
var _ mono.HealthCheckableModule = (*MessageModule)(nil)

// NewModule creates a new MessageModule.
func NewModule() *MessageModule {
	dbPath := os.Getenv("MOVIEHUB_DB_PATH")
	if dbPath == "" {
		dbPath = "moviehub.db"
	}
	return &MessageModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *MessageModule) Name() string {
	return "message"
}

// SetEventBus receives the EventBus from the framework.
func (m *MessageModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *MessageModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.MessageCreatedV1.ToBase(),
	}
}

// Start initializes the message module.
func (m *MessageModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Message{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewService(NewRepository(db))

	log.Printf("[message] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *MessageModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[message] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *MessageModule) Health(_ context.Context) mono.HealthStatus {
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
func (m *MessageModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceSend,
		json.Unmarshal,
		json.Marshal,
		m.handleSend,
	); err != nil {
		return fmt.Errorf("failed to register send-message service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceConversation,
		json.Unmarshal,
		json.Marshal,
		m.handleConversation,
	); err != nil {
		return fmt.Errorf("failed to register get-conversation service: %w", err)
	}

	log.Printf("[message] Registered services: send-message, get-conversation")
	return nil
}

// handleSend persists the message first, then publishes MessageCreated for
// best-effort push delivery. A publish failure is logged, never surfaced:
// the message is already durable and the HTTP caller gets it back regardless.
func (m *MessageModule) handleSend(ctx context.Context, req SendRequest, _ *mono.Msg) (SendResponse, error) {
	msg, err := m.service.Send(ctx, req.SenderID, req.ReceiverID, req.Text, req.ImageURLs)
	if err != nil {
		return SendResponse{}, err
	}

	if m.eventBus != nil {
		event := events.MessageCreatedEvent{
			MessageID:  msg.ID,
			SenderID:   msg.SenderID,
			ReceiverID: msg.ReceiverID,
			Text:       msg.Text,
			ImageURLs:  msg.ImageURLs,
			CreatedAt:  msg.CreatedAt,
		}
		if err := events.MessageCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[message] failed to publish MessageCreated for %s: %v", msg.ID, err)
		}
	}

	return SendResponse{Message: msg}, nil
}

// handleConversation returns the history between the caller and another user.
func (m *MessageModule) handleConversation(ctx context.Context, req ConversationRequest, _ *mono.Msg) (ConversationResponse, error) {
	messages, err := m.service.Conversation(ctx, req.UserID, req.OtherUserID)
	if err != nil {
		return ConversationResponse{}, err
	}
	return ConversationResponse{Messages: messages}, nil
}
