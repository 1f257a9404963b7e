package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message represents a direct message between two users
type Message struct {
	ID         string         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SenderID   string         `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID string         `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Content    *string        `gorm:"type:text" json:"content,omitempty"`
	ImageURL   *string        `gorm:"type:text" json:"image_url,omitempty"`
	VideoURL   *string        `gorm:"type:text" json:"video_url,omitempty"`
	Type       string         `gorm:"type:varchar(20);default:'text';not null" json:"type"`
	IsRead     bool           `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sender    User              `gorm:"foreignKey:SenderID;references:ID" json:"sender,omitempty"`
	Receiver  User              `gorm:"foreignKey:ReceiverID;references:ID" json:"receiver,omitempty"`
	Reactions []MessageReaction `gorm:"foreignKey:MessageID;references:ID" json:"reactions,omitempty"`
}

// BeforeCreate hook
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Message) TableName() string {
	return "messages"
}

// Message type constants
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeVideo = "video"
)
