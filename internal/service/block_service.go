package service

import (
	"errors"
	"fmt"

	"socialite/internal/model"
	"socialite/internal/repository"
)

// BlockService maintains the invariant that a block supersedes any
// relationship between the pair: creating a block tears down the
// friendship and any pending request in the same transaction that
// inserts the block row, so no caller ever observes both at once.
type BlockService interface {
	Block(blockerID, blockedID string) error
	Unblock(blockerID, blockedID string) error
	GetBlockedUsers(blockerID string) ([]*model.Block, error)
	IsBlocked(blockerID, blockedID string) (bool, error)
}

type blockService struct {
	store    *repository.Store
	userRepo repository.UserRepository
}

func NewBlockService(store *repository.Store, userRepo repository.UserRepository) BlockService {
	return &blockService{store: store, userRepo: userRepo}
}

// Block records a directed block. Any existing friendship is deleted
// (both edges), any pending request in either direction is deleted, and
// the block row is inserted, all as one unit.
func (s *blockService) Block(blockerID, blockedID string) error {
	if blockerID == blockedID {
		return ErrSelfBlock
	}

	if _, err := s.userRepo.FindByID(blockedID); err != nil {
		return ErrUserNotFound
	}

	already, err := s.store.Blocks.Exists(blockerID, blockedID)
	if err != nil {
		return fmt.Errorf("failed to check existing block: %w", err)
	}
	if already {
		return ErrAlreadyBlocked
	}

	err = s.store.Atomic(func(tx *repository.Store) error {
		// ErrNotFound from DeletePair just means they were not friends
		if err := tx.Friendships.DeletePair(blockerID, blockedID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if err := tx.Requests.DeletePendingBetween(blockerID, blockedID); err != nil {
			return err
		}
		return tx.Blocks.Create(&model.Block{
			BlockerID: blockerID,
			BlockedID: blockedID,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}
	return nil
}

// Unblock removes the block row only. The friendship and requests torn
// down at block time stay gone.
func (s *blockService) Unblock(blockerID, blockedID string) error {
	err := s.store.Blocks.Delete(blockerID, blockedID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotBlocked
		}
		return fmt.Errorf("failed to unblock user: %w", err)
	}
	return nil
}

// GetBlockedUsers lists the users this user has blocked.
func (s *blockService) GetBlockedUsers(blockerID string) ([]*model.Block, error) {
	return s.store.Blocks.FindByBlockerID(blockerID)
}

// IsBlocked checks the block in one direction.
func (s *blockService) IsBlocked(blockerID, blockedID string) (bool, error) {
	return s.store.Blocks.Exists(blockerID, blockedID)
}
