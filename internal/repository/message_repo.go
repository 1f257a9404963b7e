package repository

import (
	"socialite/internal/model"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(msg *model.Message) error
	FindByID(id string) (*model.Message, error)
	GetConversation(userID, otherID string, limit, offset int) ([]*model.Message, error)
	MarkAsRead(receiverID, senderID string) error
	GetUnreadCount(userID string) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(msg *model.Message) error {
	return r.db.Create(msg).Error
}

func (r *messageRepository) FindByID(id string) (*model.Message, error) {
	var msg model.Message
	err := r.db.Preload("Sender").Preload("Receiver").Preload("Reactions").
		Where("id = ?", id).First(&msg).Error
	if err != nil {
		return nil, translate(err)
	}
	return &msg, nil
}

// GetConversation returns the messages between two users in chronological
// order, paginated from the most recent.
func (r *messageRepository) GetConversation(userID, otherID string, limit, offset int) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.Preload("Sender").Preload("Receiver").Preload("Reactions").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *messageRepository) MarkAsRead(receiverID, senderID string) error {
	return r.db.Model(&model.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", receiverID, senderID, false).
		Update("is_read", true).Error
}

func (r *messageRepository) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
