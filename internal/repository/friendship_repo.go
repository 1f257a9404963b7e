package repository

import (
	"encoding/json"
	"time"

	"socialite/internal/model"
	"socialite/internal/util"

	"gorm.io/gorm"
)

// FriendshipRepository stores the mutual friendship relation as two
// directed edges. CreatePair and DeletePair are the only write paths, so
// a single edge can never outlive its mirror: both writes run against the
// repository's db handle, which the caller binds to a transaction via
// WithTx for every mutation.
type FriendshipRepository interface {
	CreatePair(userID, friendID string) error
	DeletePair(userID, friendID string) error
	Exists(userID, friendID string) (bool, error)
	FindByUserID(userID string) ([]*model.Friendship, error)
	FindFriendIDs(userID string) ([]string, error)

	WithTx(tx *gorm.DB) FriendshipRepository
}

type friendshipRepository struct {
	db    *gorm.DB
	redis *util.RedisClient
}

const (
	friendListCachePrefix = "friendship:user:"
	friendshipCacheTTL    = 15 * time.Minute
)

func NewFriendshipRepository(db *gorm.DB, redis *util.RedisClient) FriendshipRepository {
	return &friendshipRepository{db: db, redis: redis}
}

func (r *friendshipRepository) WithTx(tx *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: tx, redis: r.redis}
}

// CreatePair inserts both directed edges for a new friendship.
func (r *friendshipRepository) CreatePair(userID, friendID string) error {
	edges := []*model.Friendship{
		{UserID: userID, FriendID: friendID},
		{UserID: friendID, FriendID: userID},
	}
	for _, edge := range edges {
		if err := r.db.Create(edge).Error; err != nil {
			return err
		}
	}
	r.invalidateFriendCache(userID)
	r.invalidateFriendCache(friendID)
	return nil
}

// DeletePair removes both directed edges. Returns ErrNotFound when the
// pair was not friends.
func (r *friendshipRepository) DeletePair(userID, friendID string) error {
	result := r.db.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		userID, friendID, friendID, userID).
		Delete(&model.Friendship{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidateFriendCache(userID)
	r.invalidateFriendCache(friendID)
	return nil
}

// Exists reports whether the directed edge (userID, friendID) is present.
// Symmetry of the stored pair makes the direction irrelevant to callers.
func (r *friendshipRepository) Exists(userID, friendID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByUserID lists a user's friendships, newest first.
func (r *friendshipRepository) FindByUserID(userID string) ([]*model.Friendship, error) {
	if r.redis != nil {
		if cached, err := r.redis.Get(friendListCachePrefix + userID); err == nil {
			var friendships []*model.Friendship
			if err := json.Unmarshal([]byte(cached), &friendships); err == nil {
				return friendships, nil
			}
		}
	}

	var friendships []*model.Friendship
	err := r.db.Preload("Friend").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(friendships); err == nil {
			r.redis.Set(friendListCachePrefix+userID, string(data), friendshipCacheTTL)
		}
	}
	return friendships, nil
}

// FindFriendIDs returns just the friend ids, used to narrow feed
// candidate sets.
func (r *friendshipRepository) FindFriendIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.Friendship{}).
		Where("user_id = ?", userID).
		Pluck("friend_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *friendshipRepository) invalidateFriendCache(userID string) {
	if r.redis == nil {
		return
	}
	r.redis.Delete(friendListCachePrefix + userID)
}
