package repository

import (
	"socialite/internal/model"

	"gorm.io/gorm"
)

type BlockRepository interface {
	Create(block *model.Block) error
	Delete(blockerID, blockedID string) error
	Exists(blockerID, blockedID string) (bool, error)
	ExistsBetween(userID1, userID2 string) (bool, error)
	FindByBlockerID(blockerID string) ([]*model.Block, error)

	WithTx(tx *gorm.DB) BlockRepository
}

type blockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) WithTx(tx *gorm.DB) BlockRepository {
	return &blockRepository{db: tx}
}

func (r *blockRepository) Create(block *model.Block) error {
	return r.db.Create(block).Error
}

// Delete removes the directed block row. ErrNotFound when no block is
// in place.
func (r *blockRepository) Delete(blockerID, blockedID string) error {
	result := r.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&model.Block{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists checks the block in one direction only.
func (r *blockRepository) Exists(blockerID, blockedID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsBetween checks both directions: either side having blocked the
// other bars new contact.
func (r *blockRepository) ExistsBetween(userID1, userID2 string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userID1, userID2, userID2, userID1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *blockRepository) FindByBlockerID(blockerID string) ([]*model.Block, error) {
	var blocks []*model.Block
	err := r.db.Preload("Blocked").
		Where("blocker_id = ?", blockerID).
		Order("created_at DESC").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}
