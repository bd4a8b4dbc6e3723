package message

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/avinash111921/MovieHub/domain/message"
	"github.com/google/uuid"
)

var (
	// ErrEmptyMessage is returned when a message has neither text nor images.
	ErrEmptyMessage = errors.New("message must contain text or at least one image")
	// ErrSelfMessage is returned when sender and recipient are the same user.
	ErrSelfMessage = errors.New("cannot send a message to yourself")
	// ErrMissingParticipant is returned when sender or recipient is empty.
	ErrMissingParticipant = errors.New("sender and recipient are required")
)

// Service handles direct-message business logic.
type Service struct {
	repo *Repository
}

// NewService creates a new Service.
func NewService(repo *Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Send validates and persists a new message. Real-time delivery is not this
// service's concern: the module publishes an event after persistence and the
// realtime layer handles push on its own, so a delivery failure can never
// fail the send.
func (s *Service) Send(_ context.Context, senderID, receiverID, text string, imageURLs []string) (*domain.Message, error) {
	if senderID == "" || receiverID == "" {
		return nil, ErrMissingParticipant
	}
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}
	if text == "" && len(imageURLs) == 0 {
		return nil, ErrEmptyMessage
	}

	now := time.Now()
	m := &domain.Message{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		ImageURLs:  domain.ImageURLs(imageURLs),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(m); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return m, nil
}

// Conversation returns the message history between two users, oldest first.
func (s *Service) Conversation(_ context.Context, userA, userB string) ([]*domain.Message, error) {
	if userA == "" || userB == "" {
		return nil, ErrMissingParticipant
	}
	return s.repo.Conversation(userA, userB)
}
