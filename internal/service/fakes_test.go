package service

import (
	"strings"
	"sync"

	"socialite/internal/model"
	"socialite/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They implement just enough of the storage
// contracts to exercise the services; WithTx returns the fake itself, and
// a Store built without a db handle runs Atomic callbacks directly.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) add(username string) *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &model.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    username + "@example.com",
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByPhone(phone string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Phone != nil && *u.Phone == phone {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) SearchUsers(keyword string, limit, offset int) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for _, u := range f.users {
		if strings.Contains(u.Username, keyword) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdatePassword(userID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(userID string) error { return nil }

type fakeFriendRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*model.FriendRequest
}

func newFakeFriendRequestRepo() *fakeFriendRequestRepo {
	return &fakeFriendRequestRepo{requests: make(map[string]*model.FriendRequest)}
}

func (f *fakeFriendRequestRepo) Create(request *model.FriendRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	cp := *request
	f.requests[request.ID] = &cp
	return nil
}

func (f *fakeFriendRequestRepo) FindByID(id string) (*model.FriendRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeFriendRequestRepo) FindPendingBySenderAndReceiver(senderID, receiverID string) (*model.FriendRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.SenderID == senderID && r.ReceiverID == receiverID && r.Status == model.FriendRequestStatusPending {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeFriendRequestRepo) FindPendingByReceiverID(receiverID string) ([]*model.FriendRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.FriendRequest
	for _, r := range f.requests {
		if r.ReceiverID == receiverID && r.Status == model.FriendRequestStatusPending {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeFriendRequestRepo) ExistsPendingBetween(userID1, userID2 string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.Status != model.FriendRequestStatusPending {
			continue
		}
		if (r.SenderID == userID1 && r.ReceiverID == userID2) ||
			(r.SenderID == userID2 && r.ReceiverID == userID1) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFriendRequestRepo) UpdateStatus(id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.Status = status
	return nil
}

func (f *fakeFriendRequestRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.requests[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.requests, id)
	return nil
}

func (f *fakeFriendRequestRepo) DeletePendingBetween(userID1, userID2 string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.requests {
		if r.Status != model.FriendRequestStatusPending {
			continue
		}
		if (r.SenderID == userID1 && r.ReceiverID == userID2) ||
			(r.SenderID == userID2 && r.ReceiverID == userID1) {
			delete(f.requests, id)
		}
	}
	return nil
}

func (f *fakeFriendRequestRepo) WithTx(tx *gorm.DB) repository.FriendRequestRepository { return f }

type fakeFriendshipRepo struct {
	mu    sync.Mutex
	edges map[string]*model.Friendship // keyed by userID + "/" + friendID
}

func newFakeFriendshipRepo() *fakeFriendshipRepo {
	return &fakeFriendshipRepo{edges: make(map[string]*model.Friendship)}
}

func edgeKey(userID, friendID string) string { return userID + "/" + friendID }

func (f *fakeFriendshipRepo) CreatePair(userID, friendID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.edges[edgeKey(userID, friendID)]; ok {
		return repository.ErrConflict
	}
	f.edges[edgeKey(userID, friendID)] = &model.Friendship{
		ID: uuid.New().String(), UserID: userID, FriendID: friendID,
	}
	f.edges[edgeKey(friendID, userID)] = &model.Friendship{
		ID: uuid.New().String(), UserID: friendID, FriendID: userID,
	}
	return nil
}

func (f *fakeFriendshipRepo) DeletePair(userID, friendID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.edges[edgeKey(userID, friendID)]; !ok {
		return repository.ErrNotFound
	}
	delete(f.edges, edgeKey(userID, friendID))
	delete(f.edges, edgeKey(friendID, userID))
	return nil
}

func (f *fakeFriendshipRepo) Exists(userID, friendID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.edges[edgeKey(userID, friendID)]
	return ok, nil
}

func (f *fakeFriendshipRepo) FindByUserID(userID string) ([]*model.Friendship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Friendship
	for _, e := range f.edges {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeFriendshipRepo) FindFriendIDs(userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.edges {
		if e.UserID == userID {
			out = append(out, e.FriendID)
		}
	}
	return out, nil
}

func (f *fakeFriendshipRepo) WithTx(tx *gorm.DB) repository.FriendshipRepository { return f }

type fakeBlockRepo struct {
	mu     sync.Mutex
	blocks map[string]*model.Block // keyed by blockerID + "/" + blockedID
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{blocks: make(map[string]*model.Block)}
}

func (f *fakeBlockRepo) Create(block *model.Block) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := edgeKey(block.BlockerID, block.BlockedID)
	if _, ok := f.blocks[key]; ok {
		return repository.ErrConflict
	}
	if block.ID == "" {
		block.ID = uuid.New().String()
	}
	f.blocks[key] = block
	return nil
}

func (f *fakeBlockRepo) Delete(blockerID, blockedID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := edgeKey(blockerID, blockedID)
	if _, ok := f.blocks[key]; !ok {
		return repository.ErrNotFound
	}
	delete(f.blocks, key)
	return nil
}

func (f *fakeBlockRepo) Exists(blockerID, blockedID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.blocks[edgeKey(blockerID, blockedID)]
	return ok, nil
}

func (f *fakeBlockRepo) ExistsBetween(userID1, userID2 string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.blocks[edgeKey(userID1, userID2)]; ok {
		return true, nil
	}
	_, ok := f.blocks[edgeKey(userID2, userID1)]
	return ok, nil
}

func (f *fakeBlockRepo) FindByBlockerID(blockerID string) ([]*model.Block, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Block
	for _, b := range f.blocks {
		if b.BlockerID == blockerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBlockRepo) WithTx(tx *gorm.DB) repository.BlockRepository { return f }

type fakeReactionRepo struct {
	mu        sync.Mutex
	reactions map[string]*model.MessageReaction
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{reactions: make(map[string]*model.MessageReaction)}
}

func (f *fakeReactionRepo) Create(reaction *model.MessageReaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reactions {
		if r.MessageID == reaction.MessageID && r.UserID == reaction.UserID && r.Kind == reaction.Kind {
			return repository.ErrConflict
		}
	}
	if reaction.ID == "" {
		reaction.ID = uuid.New().String()
	}
	cp := *reaction
	f.reactions[reaction.ID] = &cp
	return nil
}

func (f *fakeReactionRepo) FindByMessageAndUserAndKind(messageID, userID, kind string) (*model.MessageReaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reactions {
		if r.MessageID == messageID && r.UserID == userID && r.Kind == kind {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeReactionRepo) FindByMessageID(messageID string) ([]*model.MessageReaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.MessageReaction
	for _, r := range f.reactions {
		if r.MessageID == messageID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeReactionRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reactions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.reactions, id)
	return nil
}

func (f *fakeReactionRepo) DeleteByMessageAndUser(messageID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.reactions {
		if r.MessageID == messageID && r.UserID == userID {
			delete(f.reactions, id)
		}
	}
	return nil
}

func (f *fakeReactionRepo) WithTx(tx *gorm.DB) repository.ReactionRepository { return f }

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages map[string]*model.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[string]*model.Message)}
}

func (f *fakeMessageRepo) Create(msg *model.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	f.messages[msg.ID] = msg
	return nil
}

func (f *fakeMessageRepo) FindByID(id string) (*model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m, nil
}

func (f *fakeMessageRepo) GetConversation(userID, otherID string, limit, offset int) ([]*model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Message
	for _, m := range f.messages {
		if (m.SenderID == userID && m.ReceiverID == otherID) ||
			(m.SenderID == otherID && m.ReceiverID == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) MarkAsRead(receiverID, senderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.messages {
		if m.ReceiverID == receiverID && m.SenderID == senderID {
			m.IsRead = true
		}
	}
	return nil
}

func (f *fakeMessageRepo) GetUnreadCount(userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, m := range f.messages {
		if m.ReceiverID == userID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*model.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*model.Post)}
}

func (f *fakePostRepo) Create(post *model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) FindByID(id string) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePostRepo) FindByUserID(userID string, limit, offset int) ([]*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Post
	for _, p := range f.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) FindByUserIDs(userIDs []string, limit, offset int) ([]*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		ids[id] = true
	}
	var out []*model.Post
	for _, p := range f.posts {
		if ids[p.UserID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) FindPublic(limit, offset int) ([]*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Post
	for _, p := range f.posts {
		if p.Privacy == model.PrivacyPublic {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) Update(post *model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) CountByUserID(userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, p := range f.posts {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[string]*model.Like
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[string]*model.Like)}
}

func (f *fakeLikeRepo) Create(like *model.Like) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.likes {
		if l.PostID == like.PostID && l.UserID == like.UserID {
			return repository.ErrConflict
		}
	}
	if like.ID == "" {
		like.ID = uuid.New().String()
	}
	f.likes[like.ID] = like
	return nil
}

func (f *fakeLikeRepo) FindByPostAndUser(postID, userID string) (*model.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.likes {
		if l.PostID == postID && l.UserID == userID {
			return l, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeLikeRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.likes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.likes, id)
	return nil
}

func (f *fakeLikeRepo) CountByPostID(postID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, l := range f.likes {
		if l.PostID == postID {
			count++
		}
	}
	return count, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*model.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*model.Comment)}
}

func (f *fakeCommentRepo) Create(comment *model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) FindByID(id string) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeCommentRepo) FindByPostID(postID string, limit, offset int) ([]*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) CountByPostID(postID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, c := range f.comments {
		if c.PostID == postID {
			count++
		}
	}
	return count, nil
}

// newTestStore builds a store over the in-memory fakes. Without a db
// handle, Atomic runs its callback against the same store.
func newTestStore() *repository.Store {
	return &repository.Store{
		Requests:    newFakeFriendRequestRepo(),
		Friendships: newFakeFriendshipRepo(),
		Blocks:      newFakeBlockRepo(),
		Reactions:   newFakeReactionRepo(),
	}
}
