package service

import (
	"errors"
	"fmt"

	"socialite/internal/model"
	"socialite/internal/repository"
)

// FriendService drives the friend request state machine and the
// friendship relation it feeds. Requests move pending -> accepted or
// pending -> rejected (then deleted); a sender may also cancel a pending
// request. Acceptance is the only way friendship rows come into being,
// and unfriending or blocking the only ways they go away.
type FriendService interface {
	SendRequest(senderID, receiverID string) (*model.FriendRequest, error)
	AcceptRequest(requestID, actingUserID string) error
	RejectRequest(requestID, actingUserID string) error
	CancelRequest(senderID, receiverID string) error
	Unfriend(userID, friendID string) error
	GetPendingRequests(userID string) ([]*model.FriendRequest, error)
	GetFriends(userID string) ([]*model.Friendship, error)
	IsFriend(userID, otherID string) (bool, error)
}

type friendService struct {
	store        *repository.Store
	userRepo     repository.UserRepository
	notifService NotificationService
}

func NewFriendService(store *repository.Store, userRepo repository.UserRepository, notifService NotificationService) FriendService {
	return &friendService{
		store:        store,
		userRepo:     userRepo,
		notifService: notifService,
	}
}

// SendRequest creates a pending friend request. Preconditions are checked
// in a fixed order and the first violation wins: self-request, block in
// either direction, existing friendship, existing pending request in
// either direction.
func (s *friendService) SendRequest(senderID, receiverID string) (*model.FriendRequest, error) {
	if senderID == receiverID {
		return nil, ErrSelfRequest
	}

	sender, err := s.userRepo.FindByID(senderID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if _, err := s.userRepo.FindByID(receiverID); err != nil {
		return nil, ErrUserNotFound
	}

	blocked, err := s.store.Blocks.ExistsBetween(senderID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to check blocks: %w", err)
	}
	if blocked {
		return nil, ErrBlocked
	}

	friends, err := s.store.Friendships.Exists(senderID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if friends {
		return nil, ErrAlreadyFriends
	}

	pending, err := s.store.Requests.ExistsPendingBetween(senderID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if pending {
		return nil, ErrAlreadyPending
	}

	request := &model.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     model.FriendRequestStatusPending,
	}
	if err := s.store.Requests.Create(request); err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	if s.notifService != nil {
		go s.notifService.SendFriendRequestNotification(receiverID, senderID, sender.Username, request.ID)
	}

	return request, nil
}

// AcceptRequest transitions a pending request to accepted. Both
// friendship edges and the status flip land in one transaction; if any
// write fails, no partial friendship remains observable. The block check
// is repeated inside the transaction so a block that lands while the
// accept is in flight wins.
func (s *friendService) AcceptRequest(requestID, actingUserID string) error {
	request, err := s.store.Requests.FindByID(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to load friend request: %w", err)
	}

	if request.ReceiverID != actingUserID {
		return ErrNotReceiver
	}
	if request.Status != model.FriendRequestStatusPending {
		return ErrNotPending
	}

	err = s.store.Atomic(func(tx *repository.Store) error {
		blocked, err := tx.Blocks.ExistsBetween(request.SenderID, request.ReceiverID)
		if err != nil {
			return err
		}
		if blocked {
			return ErrBlocked
		}
		if err := tx.Friendships.CreatePair(request.SenderID, request.ReceiverID); err != nil {
			return err
		}
		return tx.Requests.UpdateStatus(request.ID, model.FriendRequestStatusAccepted)
	})
	if err != nil {
		var domainErr *Error
		if errors.As(err, &domainErr) {
			return domainErr
		}
		return fmt.Errorf("failed to accept friend request: %w", err)
	}

	if s.notifService != nil {
		go func() {
			receiver, err := s.userRepo.FindByID(request.ReceiverID)
			if err != nil {
				return
			}
			s.notifService.SendFriendAcceptedNotification(request.SenderID, request.ReceiverID, receiver.Username, request.ID)
		}()
	}

	return nil
}

// RejectRequest marks a pending request rejected and deletes the row.
// The rejected status is observable only transiently, inside the same
// transaction that removes it.
func (s *friendService) RejectRequest(requestID, actingUserID string) error {
	request, err := s.store.Requests.FindByID(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to load friend request: %w", err)
	}

	if request.ReceiverID != actingUserID {
		return ErrNotReceiver
	}
	if request.Status != model.FriendRequestStatusPending {
		return ErrNotPending
	}

	err = s.store.Atomic(func(tx *repository.Store) error {
		if err := tx.Requests.UpdateStatus(request.ID, model.FriendRequestStatusRejected); err != nil {
			return err
		}
		return tx.Requests.Delete(request.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to reject friend request: %w", err)
	}
	return nil
}

// CancelRequest withdraws the pending request the sender authored. A
// missing request is reported to the caller rather than swallowed.
func (s *friendService) CancelRequest(senderID, receiverID string) error {
	request, err := s.store.Requests.FindPendingBySenderAndReceiver(senderID, receiverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to load friend request: %w", err)
	}

	if err := s.store.Requests.Delete(request.ID); err != nil {
		return fmt.Errorf("failed to cancel friend request: %w", err)
	}
	return nil
}

// Unfriend removes both directed friendship edges in one transaction.
func (s *friendService) Unfriend(userID, friendID string) error {
	err := s.store.Atomic(func(tx *repository.Store) error {
		return tx.Friendships.DeletePair(userID, friendID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFriends
		}
		return fmt.Errorf("failed to unfriend: %w", err)
	}
	return nil
}

// GetPendingRequests lists requests awaiting the user's decision, newest
// first.
func (s *friendService) GetPendingRequests(userID string) ([]*model.FriendRequest, error) {
	return s.store.Requests.FindPendingByReceiverID(userID)
}

// GetFriends lists the user's friendships, newest first.
func (s *friendService) GetFriends(userID string) ([]*model.Friendship, error) {
	return s.store.Friendships.FindByUserID(userID)
}

// IsFriend reports whether two users are currently friends.
func (s *friendService) IsFriend(userID, otherID string) (bool, error) {
	return s.store.Friendships.Exists(userID, otherID)
}
