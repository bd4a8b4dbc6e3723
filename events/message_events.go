package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// MessageCreatedEvent is emitted after a direct message has been durably
// persisted. The realtime module consumes it to attempt best-effort push
// delivery to the recipient's live connection.
type MessageCreatedEvent struct {
	MessageID  string    `json:"message_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Text       string    `json:"text"`
	ImageURLs  []string  `json:"image_urls"`
	CreatedAt  time.Time `json:"created_at"`
}

// Event definitions for the messaging domain.
var (
	MessageCreatedV1 = helper.EventDefinition[MessageCreatedEvent](
		"message",
		"MessageCreated",
		"v1",
	)
)
