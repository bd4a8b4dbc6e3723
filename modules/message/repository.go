package message

import (
	"errors"

	domain "github.com/avinash111921/MovieHub/domain/message"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a message is not found.
	ErrNotFound = errors.New("message not found")
)

// Repository handles message persistence using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Create inserts a new message.
func (r *Repository) Create(m *domain.Message) error {
	return r.db.Create(m).Error
}

// FindByID finds a message by ID.
func (r *Repository) FindByID(id string) (*domain.Message, error) {
	var m domain.Message
	result := r.db.First(&m, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &m, nil
}

// Conversation returns the full message history between two users in either
// direction, oldest first.
func (r *Repository) Conversation(userA, userB string) ([]*domain.Message, error) {
	var messages []*domain.Message
	result := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&messages)
	if result.Error != nil {
		return nil, result.Error
	}
	return messages, nil
}
