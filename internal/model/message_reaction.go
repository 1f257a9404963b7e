package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageReaction is one user's reaction on one message. The unique index
// covers the kind, but the toggle logic keeps at most one live row per
// (message, user) pair: re-reacting with the same kind removes it, a
// different kind replaces whatever was there.
type MessageReaction struct {
	ID        string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MessageID string    `gorm:"type:uuid;not null;index:idx_message_user_kind,unique" json:"message_id"`
	UserID    string    `gorm:"type:uuid;not null;index:idx_message_user_kind,unique" json:"user_id"`
	Kind      string    `gorm:"type:varchar(20);not null;index:idx_message_user_kind,unique" json:"kind"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

// BeforeCreate hook to generate UUID
func (mr *MessageReaction) BeforeCreate(tx *gorm.DB) error {
	if mr.ID == "" {
		mr.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (MessageReaction) TableName() string {
	return "message_reactions"
}

// Reaction kind constants
const (
	ReactionLike  = "like"
	ReactionLove  = "love"
	ReactionHaha  = "haha"
	ReactionWow   = "wow"
	ReactionSad   = "sad"
	ReactionAngry = "angry"
)

// ValidReaction reports whether kind is a recognized reaction kind.
func ValidReaction(kind string) bool {
	switch kind {
	case ReactionLike, ReactionLove, ReactionHaha, ReactionWow, ReactionSad, ReactionAngry:
		return true
	}
	return false
}
