package tweet

import (
	"errors"

	domain "github.com/avinash111921/MovieHub/domain/tweet"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a tweet is not found.
	ErrNotFound = errors.New("tweet not found")
)

// Repository handles tweet persistence using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Create inserts a new tweet.
func (r *Repository) Create(t *domain.Tweet) error {
	return r.db.Create(t).Error
}

// FindByID finds a tweet by ID.
func (r *Repository) FindByID(id string) (*domain.Tweet, error) {
	var t domain.Tweet
	result := r.db.First(&t, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &t, nil
}

// FindAll returns all tweets, newest first.
func (r *Repository) FindAll() ([]*domain.Tweet, error) {
	var tweets []*domain.Tweet
	result := r.db.Order("created_at DESC").Find(&tweets)
	if result.Error != nil {
		return nil, result.Error
	}
	return tweets, nil
}

// FindByOwner returns all tweets by one user, newest first.
func (r *Repository) FindByOwner(ownerID string) ([]*domain.Tweet, error) {
	var tweets []*domain.Tweet
	result := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&tweets)
	if result.Error != nil {
		return nil, result.Error
	}
	return tweets, nil
}

// Update persists changes to an existing tweet.
func (r *Repository) Update(t *domain.Tweet) error {
	result := r.db.Model(&domain.Tweet{}).Where("id = ?", t.ID).Updates(map[string]any{
		"content":    t.Content,
		"poster":     t.Poster,
		"updated_at": t.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a tweet by ID.
func (r *Repository) Delete(id string) error {
	result := r.db.Delete(&domain.Tweet{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
