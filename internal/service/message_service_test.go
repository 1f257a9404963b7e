package service

import (
	"testing"

	"socialite/internal/model"
	"socialite/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessageFixture() (MessageService, *fakeUserRepo, *fakeMessageRepo, *repository.Store) {
	users := newFakeUserRepo()
	messages := newFakeMessageRepo()
	store := newTestStore()
	svc := NewMessageService(messages, users, store, nil)
	return svc, users, messages, store
}

func strptr(s string) *string { return &s }

func TestSendMessageText(t *testing.T) {
	svc, users, _, _ := newMessageFixture()

	alice := users.add("alice")
	bob := users.add("bob")

	msg, err := svc.SendMessage(alice.ID, SendMessageRequest{
		ReceiverID: bob.ID,
		Content:    strptr("hey"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.MessageTypeText, msg.Type)
	assert.Equal(t, alice.ID, msg.SenderID)
	assert.Equal(t, bob.ID, msg.ReceiverID)
}

func TestSendMessageDerivesMediaType(t *testing.T) {
	svc, users, _, _ := newMessageFixture()

	alice := users.add("alice")
	bob := users.add("bob")

	msg, err := svc.SendMessage(alice.ID, SendMessageRequest{
		ReceiverID: bob.ID,
		ImageURL:   strptr("https://cdn.example.com/a.jpg"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.MessageTypeImage, msg.Type)

	msg, err = svc.SendMessage(alice.ID, SendMessageRequest{
		ReceiverID: bob.ID,
		VideoURL:   strptr("https://cdn.example.com/a.mp4"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.MessageTypeVideo, msg.Type)
}

func TestSendMessageRequiresContentOrMedia(t *testing.T) {
	svc, users, _, _ := newMessageFixture()

	alice := users.add("alice")
	bob := users.add("bob")

	_, err := svc.SendMessage(alice.ID, SendMessageRequest{ReceiverID: bob.ID})
	require.Error(t, err)

	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindInvalidArgument, domainErr.Kind)
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	svc, users, _, _ := newMessageFixture()

	alice := users.add("alice")
	bob := users.add("bob")

	for i := 0; i < 3; i++ {
		_, err := svc.SendMessage(alice.ID, SendMessageRequest{
			ReceiverID: bob.ID,
			Content:    strptr("hello"),
		})
		require.NoError(t, err)
	}

	count, err := svc.GetUnreadCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// Opening the conversation marks the received messages read.
	_, err = svc.GetConversation(bob.ID, alice.ID, 50, 0)
	require.NoError(t, err)

	count, err = svc.GetUnreadCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestReactAddsReaction(t *testing.T) {
	svc, users, _, store := newMessageFixture()

	alice := users.add("alice")
	bob := users.add("bob")

	msg, err := svc.SendMessage(alice.ID, SendMessageRequest{
		ReceiverID: bob.ID,
		Content:    strptr("hey"),
	})
	require.NoError(t, err)

	result, err := svc.React(bob.ID, msg.ID, model.ReactionLove)
	require.NoError(t, err)
	assert.Equal(t, ReactionAdded, result.Outcome)
	require.NotNil(t, result.Reaction)
	assert.Equal(t, model.ReactionLove, result.Reaction.Kind)

	live, err := store.Reactions.FindByMessageID(msg.ID)
	require.NoError(t, err)
	assert.Len(t, live, 1)
}

func TestReactSameKindTogglesOff(t *testing.T) {
	svc, users, _, store := newMessageFixture()

	alice := users.add("alice")
	bob := users.add("bob")

	msg, err := svc.SendMessage(alice.ID, SendMessageRequest{
		ReceiverID: bob.ID,
		Content:    strptr("hey"),
	})
	require.NoError(t, err)

	_, err = svc.React(bob.ID, msg.ID, model.ReactionLike)
	require.NoError(t, err)

	result, err := svc.React(bob.ID, msg.ID, model.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, ReactionRemoved, result.Outcome)
	assert.Nil(t, result.Reaction)

	live, err := store.Reactions.FindByMessageID(msg.ID)
	require.NoError(t, err)
	assert.Empty(t, live)
}

func TestReactDifferentKindReplaces(t *testing.T) {
	svc, users, _, store := newMessageFixture()

	alice := users.add("alice")
	bob := users.add("bob")

	msg, err := svc.SendMessage(alice.ID, SendMessageRequest{
		ReceiverID: bob.ID,
		Content:    strptr("hey"),
	})
	require.NoError(t, err)

	_, err = svc.React(bob.ID, msg.ID, model.ReactionLike)
	require.NoError(t, err)

	result, err := svc.React(bob.ID, msg.ID, model.ReactionHaha)
	require.NoError(t, err)
	assert.Equal(t, ReactionAdded, result.Outcome)

	// Exactly one live reaction per (message, user), the latest kind.
	live, err := store.Reactions.FindByMessageID(msg.ID)
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, model.ReactionHaha, live[0].Kind)
}

func TestReactMultipleUsers(t *testing.T) {
	svc, users, _, store := newMessageFixture()

	alice := users.add("alice")
	bob := users.add("bob")

	msg, err := svc.SendMessage(alice.ID, SendMessageRequest{
		ReceiverID: bob.ID,
		Content:    strptr("hey"),
	})
	require.NoError(t, err)

	_, err = svc.React(alice.ID, msg.ID, model.ReactionLike)
	require.NoError(t, err)
	_, err = svc.React(bob.ID, msg.ID, model.ReactionWow)
	require.NoError(t, err)

	live, err := store.Reactions.FindByMessageID(msg.ID)
	require.NoError(t, err)
	assert.Len(t, live, 2)
}

func TestReactInvalidKind(t *testing.T) {
	svc, users, _, _ := newMessageFixture()

	alice := users.add("alice")
	bob := users.add("bob")

	msg, err := svc.SendMessage(alice.ID, SendMessageRequest{
		ReceiverID: bob.ID,
		Content:    strptr("hey"),
	})
	require.NoError(t, err)

	_, err = svc.React(bob.ID, msg.ID, "clap")
	assert.ErrorIs(t, err, ErrInvalidReaction)
}

func TestReactMissingMessage(t *testing.T) {
	svc, users, _, _ := newMessageFixture()

	bob := users.add("bob")

	_, err := svc.React(bob.ID, "no-such-message", model.ReactionLike)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}
