package tweet

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/avinash111921/MovieHub/domain/tweet"
	"github.com/google/uuid"
)

const maxContentLength = 500

var (
	// ErrContentRequired is returned when a tweet has no content.
	ErrContentRequired = errors.New("tweet content is required")
	// ErrPosterRequired is returned when a tweet has no poster image.
	ErrPosterRequired = errors.New("poster image is required")
	// ErrContentTooLong is returned when content exceeds the length limit.
	ErrContentTooLong = errors.New("tweet content exceeds 500 characters")
	// ErrNotOwner is returned when a user tries to modify someone else's tweet.
	ErrNotOwner = errors.New("only the owner can modify this tweet")
)

// Service handles movie-review business logic.
type Service struct {
	repo *Repository
}

// NewService creates a new Service.
func NewService(repo *Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Create validates and persists a new tweet.
func (s *Service) Create(_ context.Context, ownerID, content, poster string) (*domain.Tweet, error) {
	if content == "" {
		return nil, ErrContentRequired
	}
	if len(content) > maxContentLength {
		return nil, ErrContentTooLong
	}
	if poster == "" {
		return nil, ErrPosterRequired
	}

	now := time.Now()
	t := &domain.Tweet{
		ID:        uuid.New().String(),
		Content:   content,
		Poster:    poster,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(t); err != nil {
		return nil, fmt.Errorf("failed to create tweet: %w", err)
	}
	return t, nil
}

// Get returns a tweet by ID.
func (s *Service) Get(_ context.Context, id string) (*domain.Tweet, error) {
	return s.repo.FindByID(id)
}

// ListAll returns all tweets, newest first.
func (s *Service) ListAll(_ context.Context) ([]*domain.Tweet, error) {
	return s.repo.FindAll()
}

// ListByOwner returns one user's tweets, newest first.
func (s *Service) ListByOwner(_ context.Context, ownerID string) ([]*domain.Tweet, error) {
	return s.repo.FindByOwner(ownerID)
}

// UpdateContent replaces a tweet's content. Only the owner may update.
func (s *Service) UpdateContent(_ context.Context, id, requesterID, content string) (*domain.Tweet, error) {
	if content == "" {
		return nil, ErrContentRequired
	}
	if len(content) > maxContentLength {
		return nil, ErrContentTooLong
	}

	t, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != requesterID {
		return nil, ErrNotOwner
	}

	t.Content = content
	t.UpdatedAt = time.Now()
	if err := s.repo.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdatePoster replaces a tweet's poster image. Only the owner may update.
func (s *Service) UpdatePoster(_ context.Context, id, requesterID, poster string) (*domain.Tweet, error) {
	if poster == "" {
		return nil, ErrPosterRequired
	}

	t, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != requesterID {
		return nil, ErrNotOwner
	}

	t.Poster = poster
	t.UpdatedAt = time.Now()
	if err := s.repo.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a tweet. Only the owner may delete.
func (s *Service) Delete(_ context.Context, id, requesterID string) error {
	t, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if t.OwnerID != requesterID {
		return ErrNotOwner
	}
	return s.repo.Delete(id)
}
