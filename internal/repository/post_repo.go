package repository

import (
	"socialite/internal/model"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *model.Post) error
	FindByID(id string) (*model.Post, error)
	FindByUserID(userID string, limit, offset int) ([]*model.Post, error)
	FindByUserIDs(userIDs []string, limit, offset int) ([]*model.Post, error)
	FindPublic(limit, offset int) ([]*model.Post, error)
	Update(post *model.Post) error
	Delete(id string) error
	CountByUserID(userID string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) FindByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.db.Preload("User").Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *postRepository) FindByUserID(userID string, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByUserIDs returns feed candidates owned by any of the given users,
// newest first. Visibility filtering happens in the service layer.
func (r *postRepository) FindByUserIDs(userIDs []string, limit, offset int) ([]*model.Post, error) {
	if len(userIDs) == 0 {
		return []*model.Post{}, nil
	}
	var posts []*model.Post
	err := r.db.Preload("User").
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// FindPublic returns public posts for the explore feed.
func (r *postRepository) FindPublic(limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Preload("User").
		Where("privacy = ?", model.PrivacyPublic).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Update(post *model.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&model.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) CountByUserID(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Post{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
