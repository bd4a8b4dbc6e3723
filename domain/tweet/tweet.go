package tweet

import (
	"time"
)

// Tweet represents a movie review post. Content and poster image are both
// required; the poster field holds a URL served by the media module.
type Tweet struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	Poster    string    `gorm:"not null;type:text" json:"poster"`
	OwnerID   string    `gorm:"index;not null;type:text" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Tweet entity.
func (Tweet) TableName() string {
	return "tweets"
}
