package service

import (
	"errors"
	"fmt"
	"strings"

	"socialite/internal/model"
	"socialite/internal/repository"
)

type PostService interface {
	CreatePost(userID string, req CreatePostRequest) (*model.Post, error)
	GetPostByID(postID, viewerID string) (*PostResponse, error)
	GetPostsByUserID(ownerID, viewerID string, limit, offset int) ([]*PostResponse, error)
	GetFeed(viewerID string, limit, offset int) ([]*PostResponse, error)
	GetExploreFeed(viewerID string, limit, offset int) ([]*PostResponse, error)
	UpdatePrivacy(userID, postID, privacy string) (*model.Post, error)
	DeletePost(userID, postID string) error
	LikePost(userID, postID string) error
	UnlikePost(userID, postID string) error
	AddComment(userID, postID, content string) (*model.Comment, error)
	GetComments(postID, viewerID string, limit, offset int) ([]*model.Comment, error)
}

type postService struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	friendships repository.FriendshipRepository
	visibility  VisibilityResolver
}

type CreatePostRequest struct {
	Caption  *string `json:"caption,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
	Privacy  string  `json:"privacy,omitempty"`
}

// PostResponse is a post plus its derived counts; the counts are computed
// per read, never stored.
type PostResponse struct {
	*model.Post
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
	LikedByMe    bool  `json:"liked_by_me"`
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	friendships repository.FriendshipRepository,
	visibility VisibilityResolver,
) PostService {
	return &postService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		friendships: friendships,
		visibility:  visibility,
	}
}

// CreatePost creates a post. Privacy defaults to public; an unrecognized
// value is rejected rather than silently downgraded.
func (s *postService) CreatePost(userID string, req CreatePostRequest) (*model.Post, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, ErrUserNotFound
	}

	privacy := strings.ToLower(req.Privacy)
	if privacy == "" {
		privacy = model.PrivacyPublic
	}
	if !model.ValidPrivacy(privacy) {
		return nil, ErrInvalidPrivacy
	}

	if (req.Caption == nil || *req.Caption == "") && (req.ImageURL == nil || *req.ImageURL == "") {
		return nil, invalidArgument("post must have a caption or an image")
	}

	post := &model.Post{
		UserID:   userID,
		Caption:  req.Caption,
		ImageURL: req.ImageURL,
		Privacy:  privacy,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// GetPostByID returns a post if the viewer may see it; a hidden post is
// indistinguishable from a missing one.
func (s *postService) GetPostByID(postID, viewerID string) (*PostResponse, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}

	visible, err := s.visibility.CanView(post.UserID, post.Privacy, viewerID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrPostNotFound
	}

	return s.toResponse(post, viewerID)
}

// GetPostsByUserID lists one user's posts filtered down to what the
// viewer may see.
func (s *postService) GetPostsByUserID(ownerID, viewerID string, limit, offset int) ([]*PostResponse, error) {
	posts, err := s.postRepo.FindByUserID(ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	return s.filterVisible(posts, viewerID)
}

// GetFeed builds the friends feed: candidates are restricted up front to
// posts owned by the viewer's friends, then each one still passes through
// the visibility predicate. The narrowing is an optimization; the
// predicate alone is what guarantees correctness.
func (s *postService) GetFeed(viewerID string, limit, offset int) ([]*PostResponse, error) {
	friendIDs, err := s.friendships.FindFriendIDs(viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load friend ids: %w", err)
	}
	if len(friendIDs) == 0 {
		return []*PostResponse{}, nil
	}

	posts, err := s.postRepo.FindByUserIDs(friendIDs, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed posts: %w", err)
	}
	return s.filterVisible(posts, viewerID)
}

// GetExploreFeed lists recent public posts.
func (s *postService) GetExploreFeed(viewerID string, limit, offset int) ([]*PostResponse, error) {
	posts, err := s.postRepo.FindPublic(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load public posts: %w", err)
	}
	return s.filterVisible(posts, viewerID)
}

// UpdatePrivacy changes a post's privacy level, owner only.
func (s *postService) UpdatePrivacy(userID, postID, privacy string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if post.UserID != userID {
		return nil, ErrNotPostOwner
	}

	privacy = strings.ToLower(privacy)
	if !model.ValidPrivacy(privacy) {
		return nil, ErrInvalidPrivacy
	}

	post.Privacy = privacy
	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// DeletePost removes a post, owner only.
func (s *postService) DeletePost(userID, postID string) error {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to load post: %w", err)
	}
	if post.UserID != userID {
		return ErrNotPostOwner
	}
	if err := s.postRepo.Delete(postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// LikePost records a like on a visible post; liking twice is a conflict.
func (s *postService) LikePost(userID, postID string) error {
	if _, err := s.GetPostByID(postID, userID); err != nil {
		return err
	}
	if _, err := s.likeRepo.FindByPostAndUser(postID, userID); err == nil {
		return conflict("post already liked")
	}
	if err := s.likeRepo.Create(&model.Like{PostID: postID, UserID: userID}); err != nil {
		return fmt.Errorf("failed to like post: %w", err)
	}
	return nil
}

// UnlikePost removes the caller's like.
func (s *postService) UnlikePost(userID, postID string) error {
	like, err := s.likeRepo.FindByPostAndUser(postID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("like not found")
		}
		return fmt.Errorf("failed to load like: %w", err)
	}
	if err := s.likeRepo.Delete(like.ID); err != nil {
		return fmt.Errorf("failed to unlike post: %w", err)
	}
	return nil
}

// AddComment comments on a visible post.
func (s *postService) AddComment(userID, postID, content string) (*model.Comment, error) {
	if content == "" {
		return nil, invalidArgument("comment content is required")
	}
	if _, err := s.GetPostByID(postID, userID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// GetComments lists a visible post's comments, oldest first.
func (s *postService) GetComments(postID, viewerID string, limit, offset int) ([]*model.Comment, error) {
	if _, err := s.GetPostByID(postID, viewerID); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByPostID(postID, limit, offset)
}

func (s *postService) filterVisible(posts []*model.Post, viewerID string) ([]*PostResponse, error) {
	visible := make([]*PostResponse, 0, len(posts))
	for _, post := range posts {
		ok, err := s.visibility.CanView(post.UserID, post.Privacy, viewerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		resp, err := s.toResponse(post, viewerID)
		if err != nil {
			return nil, err
		}
		visible = append(visible, resp)
	}
	return visible, nil
}

func (s *postService) toResponse(post *model.Post, viewerID string) (*PostResponse, error) {
	likeCount, err := s.likeRepo.CountByPostID(post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	commentCount, err := s.commentRepo.CountByPostID(post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	_, err = s.likeRepo.FindByPostAndUser(post.ID, viewerID)
	likedByMe := err == nil

	return &PostResponse{
		Post:         post,
		LikeCount:    likeCount,
		CommentCount: commentCount,
		LikedByMe:    likedByMe,
	}, nil
}
