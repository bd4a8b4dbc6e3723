package message

import (
	domain "github.com/avinash111921/MovieHub/domain/message"
)

// Service names registered in the service container.
const (
	ServiceSend         = "send-message"
	ServiceConversation = "get-conversation"
)

// SendRequest represents a message send request. ImageURLs are media module
// URLs produced before the send call.
type SendRequest struct {
	SenderID   string   `json:"sender_id"`
	ReceiverID string   `json:"receiver_id"`
	Text       string   `json:"text,omitempty"`
	ImageURLs  []string `json:"image_urls,omitempty"`
}

// SendResponse carries the persisted message.
type SendResponse struct {
	Message *domain.Message `json:"message"`
}

// ConversationRequest asks for the history between two users.
type ConversationRequest struct {
	UserID      string `json:"user_id"`
	OtherUserID string `json:"other_user_id"`
}

// ConversationResponse carries the history, oldest first.
type ConversationResponse struct {
	Messages []*domain.Message `json:"messages"`
}
