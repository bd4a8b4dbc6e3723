package message

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ImageURLs is a list of attachment URLs stored as a JSON text column.
type ImageURLs []string

// Value implements driver.Valuer.
func (u ImageURLs) Value() (driver.Value, error) {
	if u == nil {
		u = ImageURLs{}
	}
	data, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image urls: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (u *ImageURLs) Scan(value any) error {
	if value == nil {
		*u = ImageURLs{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported image urls column type %T", value)
	}
	if len(data) == 0 {
		*u = ImageURLs{}
		return nil
	}
	return json.Unmarshal(data, u)
}

// Message represents a direct message between two users. Text and image
// attachments are both optional but at least one must be present, enforced
// at the service boundary.
type Message struct {
	ID         string    `gorm:"primaryKey;type:text" json:"id"`
	SenderID   string    `gorm:"index;not null;type:text" json:"sender_id"`
	ReceiverID string    `gorm:"index;not null;type:text" json:"receiver_id"`
	Text       string    `gorm:"type:text" json:"text"`
	ImageURLs  ImageURLs `gorm:"type:text" json:"image_urls"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the table name for the Message entity.
func (Message) TableName() string {
	return "messages"
}
