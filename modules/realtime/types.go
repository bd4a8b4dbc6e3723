package realtime

import (
	"time"
)

// NewMessagePayload is the directed event body sent to a message recipient.
// It mirrors the persisted message record verbatim.
type NewMessagePayload struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Text       string    `json:"text,omitempty"`
	ImageURLs  []string  `json:"image_urls,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
