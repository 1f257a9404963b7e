package repository

import (
	"fmt"
	"time"

	"socialite/internal/model"
	"socialite/internal/util"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(like *model.Like) error
	FindByPostAndUser(postID, userID string) (*model.Like, error)
	Delete(id string) error
	CountByPostID(postID string) (int64, error)
}

type likeRepository struct {
	db    *gorm.DB
	redis *util.RedisClient
}

const (
	likeCountCachePrefix = "like:count:"
	likeCacheTTL         = 10 * time.Minute
)

func NewLikeRepository(db *gorm.DB, redis *util.RedisClient) LikeRepository {
	return &likeRepository{db: db, redis: redis}
}

func (r *likeRepository) Create(like *model.Like) error {
	if err := r.db.Create(like).Error; err != nil {
		return err
	}
	r.invalidateCountCache(like.PostID)
	return nil
}

func (r *likeRepository) FindByPostAndUser(postID, userID string) (*model.Like, error) {
	var like model.Like
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
	if err != nil {
		return nil, translate(err)
	}
	return &like, nil
}

func (r *likeRepository) Delete(id string) error {
	var like model.Like
	if err := r.db.Where("id = ?", id).First(&like).Error; err != nil {
		return translate(err)
	}
	if err := r.db.Delete(&like).Error; err != nil {
		return err
	}
	r.invalidateCountCache(like.PostID)
	return nil
}

func (r *likeRepository) CountByPostID(postID string) (int64, error) {
	if r.redis != nil {
		if cached, err := r.redis.Get(likeCountCachePrefix + postID); err == nil {
			var count int64
			if _, err := fmt.Sscanf(cached, "%d", &count); err == nil {
				return count, nil
			}
		}
	}

	var count int64
	err := r.db.Model(&model.Like{}).Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	if r.redis != nil {
		r.redis.Set(likeCountCachePrefix+postID, fmt.Sprintf("%d", count), likeCacheTTL)
	}
	return count, nil
}

func (r *likeRepository) invalidateCountCache(postID string) {
	if r.redis == nil {
		return
	}
	r.redis.Delete(likeCountCachePrefix + postID)
}
