package repository

import (
	"encoding/json"
	"time"

	"socialite/internal/model"
	"socialite/internal/util"

	"gorm.io/gorm"
)

type FriendRequestRepository interface {
	Create(request *model.FriendRequest) error
	FindByID(id string) (*model.FriendRequest, error)
	FindPendingBySenderAndReceiver(senderID, receiverID string) (*model.FriendRequest, error)
	FindPendingByReceiverID(receiverID string) ([]*model.FriendRequest, error)
	ExistsPendingBetween(userID1, userID2 string) (bool, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
	DeletePendingBetween(userID1, userID2 string) error

	// WithTx returns a copy of the repository bound to tx, so multi-table
	// side effects can be grouped in one transaction.
	WithTx(tx *gorm.DB) FriendRequestRepository
}

type friendRequestRepository struct {
	db    *gorm.DB
	redis *util.RedisClient
}

const (
	pendingRequestCachePrefix = "friendreq:pending:"
	friendRequestCacheTTL     = 15 * time.Minute
)

func NewFriendRequestRepository(db *gorm.DB, redis *util.RedisClient) FriendRequestRepository {
	return &friendRequestRepository{db: db, redis: redis}
}

func (r *friendRequestRepository) WithTx(tx *gorm.DB) FriendRequestRepository {
	return &friendRequestRepository{db: tx, redis: r.redis}
}

// Create inserts a new pending request
func (r *friendRequestRepository) Create(request *model.FriendRequest) error {
	if err := r.db.Create(request).Error; err != nil {
		return err
	}
	r.invalidatePendingCache(request.ReceiverID)
	return nil
}

// FindByID finds a friend request by ID
func (r *friendRequestRepository) FindByID(id string) (*model.FriendRequest, error) {
	var request model.FriendRequest
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, translate(err)
	}
	return &request, nil
}

// FindPendingBySenderAndReceiver finds the pending request authored by
// senderID towards receiverID, direction-sensitive.
func (r *friendRequestRepository) FindPendingBySenderAndReceiver(senderID, receiverID string) (*model.FriendRequest, error) {
	var request model.FriendRequest
	err := r.db.Where("sender_id = ? AND receiver_id = ? AND status = ?",
		senderID, receiverID, model.FriendRequestStatusPending).
		First(&request).Error
	if err != nil {
		return nil, translate(err)
	}
	return &request, nil
}

// FindPendingByReceiverID lists pending requests addressed to a user,
// newest first.
func (r *friendRequestRepository) FindPendingByReceiverID(receiverID string) ([]*model.FriendRequest, error) {
	if r.redis != nil {
		if cached, err := r.redis.Get(pendingRequestCachePrefix + receiverID); err == nil {
			var requests []*model.FriendRequest
			if err := json.Unmarshal([]byte(cached), &requests); err == nil {
				return requests, nil
			}
		}
	}

	var requests []*model.FriendRequest
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("receiver_id = ? AND status = ?", receiverID, model.FriendRequestStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(requests); err == nil {
			r.redis.Set(pendingRequestCachePrefix+receiverID, string(data), friendRequestCacheTTL)
		}
	}
	return requests, nil
}

// ExistsPendingBetween reports whether a pending request exists between
// two users in either direction.
func (r *friendRequestRepository) ExistsPendingBetween(userID1, userID2 string) (bool, error) {
	var count int64
	err := r.db.Model(&model.FriendRequest{}).
		Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
			userID1, userID2, userID2, userID1, model.FriendRequestStatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus flips the status of a request
func (r *friendRequestRepository) UpdateStatus(id, status string) error {
	result := r.db.Model(&model.FriendRequest{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidateAllPendingCaches(id)
	return nil
}

// Delete removes a request row
func (r *friendRequestRepository) Delete(id string) error {
	var request model.FriendRequest
	if err := r.db.Where("id = ?", id).First(&request).Error; err != nil {
		return translate(err)
	}
	if err := r.db.Delete(&request).Error; err != nil {
		return err
	}
	r.invalidatePendingCache(request.ReceiverID)
	return nil
}

// DeletePendingBetween removes pending requests between two users in both
// directions. A zero row count is not an error here: block teardown calls
// this regardless of whether a request existed.
func (r *friendRequestRepository) DeletePendingBetween(userID1, userID2 string) error {
	err := r.db.Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
		userID1, userID2, userID2, userID1, model.FriendRequestStatusPending).
		Delete(&model.FriendRequest{}).Error
	if err != nil {
		return err
	}
	r.invalidatePendingCache(userID1)
	r.invalidatePendingCache(userID2)
	return nil
}

func (r *friendRequestRepository) invalidatePendingCache(receiverID string) {
	if r.redis == nil {
		return
	}
	r.redis.Delete(pendingRequestCachePrefix + receiverID)
}

// invalidateAllPendingCaches drops the pending list for the request's
// receiver when only the id is at hand.
func (r *friendRequestRepository) invalidateAllPendingCaches(id string) {
	if r.redis == nil {
		return
	}
	var request model.FriendRequest
	if err := r.db.Where("id = ?", id).First(&request).Error; err != nil {
		return
	}
	r.redis.Delete(pendingRequestCachePrefix + request.ReceiverID)
}
