package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Block is a directed record: the blocker no longer wants contact with
// the blocked user. Only one row exists per ordered pair. While a block
// exists, no friendship or pending request may exist between the pair in
// either direction; creating the block tears those down.
type Block struct {
	ID        string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BlockerID string    `gorm:"type:uuid;not null;index:idx_blocker_blocked,unique" json:"blocker_id"`
	BlockedID string    `gorm:"type:uuid;not null;index:idx_blocker_blocked,unique" json:"blocked_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Blocker User `gorm:"foreignKey:BlockerID;references:ID" json:"blocker,omitempty"`
	Blocked User `gorm:"foreignKey:BlockedID;references:ID" json:"blocked,omitempty"`
}

// BeforeCreate hook to generate UUID
func (b *Block) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Block) TableName() string {
	return "blocked_users"
}
