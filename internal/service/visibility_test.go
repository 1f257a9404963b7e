package service

import (
	"testing"

	"socialite/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanViewOwnerAlwaysSees(t *testing.T) {
	resolver := NewVisibilityResolver(newFakeFriendshipRepo())

	for _, privacy := range []string{model.PrivacyPublic, model.PrivacyFriends, model.PrivacyPrivate} {
		visible, err := resolver.CanView("owner", privacy, "owner")
		require.NoError(t, err)
		assert.True(t, visible, "owner must see own %s content", privacy)
	}
}

func TestCanViewPublic(t *testing.T) {
	resolver := NewVisibilityResolver(newFakeFriendshipRepo())

	visible, err := resolver.CanView("owner", model.PrivacyPublic, "stranger")
	require.NoError(t, err)
	assert.True(t, visible)
}

func TestCanViewPrivate(t *testing.T) {
	friendships := newFakeFriendshipRepo()
	require.NoError(t, friendships.CreatePair("owner", "friend"))
	resolver := NewVisibilityResolver(friendships)

	// Private stays hidden even from friends.
	visible, err := resolver.CanView("owner", model.PrivacyPrivate, "friend")
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestCanViewFriendsOnly(t *testing.T) {
	friendships := newFakeFriendshipRepo()
	require.NoError(t, friendships.CreatePair("owner", "friend"))
	resolver := NewVisibilityResolver(friendships)

	visible, err := resolver.CanView("owner", model.PrivacyFriends, "friend")
	require.NoError(t, err)
	assert.True(t, visible)

	visible, err = resolver.CanView("owner", model.PrivacyFriends, "stranger")
	require.NoError(t, err)
	assert.False(t, visible)

	// Visibility follows the current relationship state; once the
	// friendship is gone, so is access.
	require.NoError(t, friendships.DeletePair("owner", "friend"))

	visible, err = resolver.CanView("owner", model.PrivacyFriends, "friend")
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestCanViewInvalidPrivacy(t *testing.T) {
	resolver := NewVisibilityResolver(newFakeFriendshipRepo())

	_, err := resolver.CanView("owner", "everyone", "viewer")
	assert.ErrorIs(t, err, ErrInvalidPrivacy)
}
