package repository

import (
	"socialite/internal/util"

	"gorm.io/gorm"
)

// Store bundles the relationship repositories behind one transaction
// boundary. Accepting a request, blocking a user and toggling a reaction
// all touch more than one table; each must land fully or not at all,
// because every later caller checks the invariants with plain existence
// lookups.
type Store struct {
	Requests    FriendRequestRepository
	Friendships FriendshipRepository
	Blocks      BlockRepository
	Reactions   ReactionRepository

	db *gorm.DB
}

func NewStore(db *gorm.DB, redis *util.RedisClient) *Store {
	return &Store{
		Requests:    NewFriendRequestRepository(db, redis),
		Friendships: NewFriendshipRepository(db, redis),
		Blocks:      NewBlockRepository(db),
		Reactions:   NewReactionRepository(db),
		db:          db,
	}
}

// Atomic runs fn against a copy of the store whose repositories are bound
// to a single transaction. Any error from fn rolls the whole unit back.
// A store assembled without a db handle (in-memory fakes in tests) runs
// fn directly.
func (s *Store) Atomic(fn func(tx *Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{
			Requests:    s.Requests.WithTx(tx),
			Friendships: s.Friendships.WithTx(tx),
			Blocks:      s.Blocks.WithTx(tx),
			Reactions:   s.Reactions.WithTx(tx),
		})
	})
}
