package repository

import (
	"socialite/internal/model"

	"gorm.io/gorm"
)

type ReactionRepository interface {
	Create(reaction *model.MessageReaction) error
	FindByMessageAndUserAndKind(messageID, userID, kind string) (*model.MessageReaction, error)
	FindByMessageID(messageID string) ([]*model.MessageReaction, error)
	Delete(id string) error
	DeleteByMessageAndUser(messageID, userID string) error

	WithTx(tx *gorm.DB) ReactionRepository
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) WithTx(tx *gorm.DB) ReactionRepository {
	return &reactionRepository{db: tx}
}

func (r *reactionRepository) Create(reaction *model.MessageReaction) error {
	return r.db.Create(reaction).Error
}

func (r *reactionRepository) FindByMessageAndUserAndKind(messageID, userID, kind string) (*model.MessageReaction, error) {
	var reaction model.MessageReaction
	err := r.db.Where("message_id = ? AND user_id = ? AND kind = ?", messageID, userID, kind).
		First(&reaction).Error
	if err != nil {
		return nil, translate(err)
	}
	return &reaction, nil
}

func (r *reactionRepository) FindByMessageID(messageID string) ([]*model.MessageReaction, error) {
	var reactions []*model.MessageReaction
	err := r.db.Preload("User").
		Where("message_id = ?", messageID).
		Order("created_at ASC").
		Find(&reactions).Error
	if err != nil {
		return nil, err
	}
	return reactions, nil
}

func (r *reactionRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&model.MessageReaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByMessageAndUser clears every reaction a user holds on a message,
// whatever the kind. Used when replacing a reaction with a different kind.
func (r *reactionRepository) DeleteByMessageAndUser(messageID, userID string) error {
	return r.db.Where("message_id = ? AND user_id = ?", messageID, userID).
		Delete(&model.MessageReaction{}).Error
}
