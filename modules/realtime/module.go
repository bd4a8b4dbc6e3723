package realtime

import (
	"context"
	"fmt"
	"log"

	"github.com/avinash111921/MovieHub/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// RealtimeModule owns the WebSocket hub and consumes messaging events to
// push them to connected recipients.
type RealtimeModule struct {
	hub *Hub
}

// Compile-time interface checks.
var _ mono.Module = (*RealtimeModule)(nil)
var _ mono.EventConsumerModule = (*RealtimeModule)(nil)
var _ mono.HealthCheckableModule = (*RealtimeModule)(nil)

// NewModule creates a new RealtimeModule.
func NewModule() *RealtimeModule {
	return &RealtimeModule{
		hub: NewHub(),
	}
}

// Name returns the module name.
func (m *RealtimeModule) Name() string {
	return "realtime"
}

// Start initializes the module.
func (m *RealtimeModule) Start(_ context.Context) error {
	log.Println("[realtime] Module started - presence hub ready")
	return nil
}

// Stop closes all live connections.
func (m *RealtimeModule) Stop(_ context.Context) error {
	clientCount := m.hub.ClientCount()
	m.hub.CloseAll()
	log.Printf("[realtime] Module stopped - %d clients were connected", clientCount)
	return nil
}

// Health returns the health status.
func (m *RealtimeModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"connected_clients": m.hub.ClientCount(),
			"online_users":      len(m.hub.OnlineUsers()),
		},
	}
}

// RegisterEventConsumers registers event handlers.
func (m *RealtimeModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(
		registry, events.MessageCreatedV1, m.handleMessageCreated, m,
	); err != nil {
		return fmt.Errorf("failed to register MessageCreated consumer: %w", err)
	}

	log.Println("[realtime] Registered event consumers: MessageCreated")
	return nil
}

// handleMessageCreated pushes a freshly persisted message to the recipient's
// live connection, if they have one. An offline recipient simply sees the
// message on their next conversation fetch.
func (m *RealtimeModule) handleMessageCreated(_ context.Context, event events.MessageCreatedEvent, _ *mono.Msg) error {
	delivered := m.hub.SendToUser(event.ReceiverID, EventNewMessage, NewMessagePayload{
		ID:         event.MessageID,
		SenderID:   event.SenderID,
		ReceiverID: event.ReceiverID,
		Text:       event.Text,
		ImageURLs:  event.ImageURLs,
		CreatedAt:  event.CreatedAt,
	})
	if delivered {
		log.Printf("[realtime] delivered message %s to user %s", event.MessageID, event.ReceiverID)
	}
	return nil
}

// GetHub returns the hub for the API module to use.
func (m *RealtimeModule) GetHub() *Hub {
	return m.hub
}
