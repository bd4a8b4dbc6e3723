package message

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/avinash111921/MovieHub/domain/message"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// MessagePort defines the interface for messaging operations.
type MessagePort interface {
	Send(ctx context.Context, senderID, receiverID, text string, imageURLs []string) (*domain.Message, error)
	Conversation(ctx context.Context, userID, otherUserID string) ([]*domain.Message, error)
}

// MessageAdapter implements MessagePort using the service container.
type MessageAdapter struct {
	container mono.ServiceContainer
}

// NewMessageAdapter creates a new MessageAdapter.
func NewMessageAdapter(container mono.ServiceContainer) *MessageAdapter {
	return &MessageAdapter{
		container: container,
	}
}

// Send creates a message.
func (a *MessageAdapter) Send(ctx context.Context, senderID, receiverID, text string, imageURLs []string) (*domain.Message, error) {
	req := SendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		ImageURLs:  imageURLs,
	}
	var resp SendResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceSend,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("send-message request failed: %w", err)
	}
	return resp.Message, nil
}

// Conversation fetches the history between two users.
func (a *MessageAdapter) Conversation(ctx context.Context, userID, otherUserID string) ([]*domain.Message, error) {
	req := ConversationRequest{UserID: userID, OtherUserID: otherUserID}
	var resp ConversationResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceConversation,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("get-conversation request failed: %w", err)
	}
	return resp.Messages, nil
}
