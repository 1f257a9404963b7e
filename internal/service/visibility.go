package service

import (
	"socialite/internal/model"
	"socialite/internal/repository"
)

// VisibilityResolver decides whether a viewer may see a piece of content,
// as a pure function of current relationship state. Blocks are not
// consulted here: blocking already destroyed the friendship that
// friends-only visibility depends on, so blocked viewers fall out of the
// friends case with no separate check.
type VisibilityResolver interface {
	CanView(ownerID, privacy, viewerID string) (bool, error)
}

type visibilityResolver struct {
	friendshipRepo repository.FriendshipRepository
}

func NewVisibilityResolver(friendshipRepo repository.FriendshipRepository) VisibilityResolver {
	return &visibilityResolver{friendshipRepo: friendshipRepo}
}

// CanView rules: the owner always sees their own content; public content
// is visible to everyone; private content only to the owner; friends-only
// content iff a friendship edge (owner, viewer) exists.
func (v *visibilityResolver) CanView(ownerID, privacy, viewerID string) (bool, error) {
	if viewerID == ownerID {
		return true, nil
	}

	switch privacy {
	case model.PrivacyPublic:
		return true, nil
	case model.PrivacyPrivate:
		return false, nil
	case model.PrivacyFriends:
		return v.friendshipRepo.Exists(ownerID, viewerID)
	default:
		return false, ErrInvalidPrivacy
	}
}
