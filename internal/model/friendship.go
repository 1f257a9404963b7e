package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Friendship is one directed edge of a mutual friendship. A friendship
// between A and B is stored as two rows, (A,B) and (B,A), so that
// "friends of X" is a single-key lookup. The two rows are always created
// and deleted together inside one transaction; a lone edge is corruption.
type Friendship struct {
	ID        string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index:idx_user_friend,unique" json:"user_id"`
	FriendID  string    `gorm:"type:uuid;not null;index:idx_user_friend,unique" json:"friend_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User   User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Friend User `gorm:"foreignKey:FriendID;references:ID" json:"friend,omitempty"`
}

// BeforeCreate hook to generate UUID
func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Friendship) TableName() string {
	return "friendships"
}
