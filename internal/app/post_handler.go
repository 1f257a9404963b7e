package app

import (
	"net/http"

	"socialite/internal/service"
	"socialite/internal/util"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService service.PostService
	cloudinary  *util.CloudinaryClient
}

func NewPostHandler(postService service.PostService, cloudinary *util.CloudinaryClient) *PostHandler {
	return &PostHandler{
		postService: postService,
		cloudinary:  cloudinary,
	}
}

// CreatePost creates a post; an image can be attached as a multipart file
// or given as a pre-uploaded URL in the JSON body.
// POST /api/v1/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	var req service.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.CreatePost(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Post created successfully", gin.H{"post": post})
}

// CreatePostWithImage creates a post from a multipart form, uploading the
// image before the post row is written.
// POST /api/v1/posts/upload
func (h *PostHandler) CreatePostWithImage(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	if h.cloudinary == nil {
		util.ErrorResponse(c, http.StatusServiceUnavailable, "Media uploads are disabled", nil)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		util.BadRequest(c, "Form file 'image' is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	url, err := h.cloudinary.UploadMedia(file, fileHeader.Filename)
	if err != nil {
		util.InternalError(c, "Failed to upload image")
		return
	}

	req := service.CreatePostRequest{
		ImageURL: &url,
		Privacy:  c.PostForm("privacy"),
	}
	if caption := c.PostForm("caption"); caption != "" {
		req.Caption = &caption
	}

	post, err := h.postService.CreatePost(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Post created successfully", gin.H{"post": post})
}

// GetPost returns one post if the viewer is allowed to see it
// GET /api/v1/posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	post, err := h.postService.GetPostByID(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Post retrieved successfully", gin.H{"post": post})
}

// GetPostsByUser returns another user's posts, filtered by visibility
// GET /api/v1/posts/user/:userID
func (h *PostHandler) GetPostsByUser(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	limit, offset := pagination(c)
	posts, err := h.postService.GetPostsByUserID(c.Param("userID"), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Posts retrieved successfully", gin.H{"posts": posts})
}

// GetFeed returns visible posts from the viewer's friends
// GET /api/v1/posts/feed
func (h *PostHandler) GetFeed(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	limit, offset := pagination(c)
	posts, err := h.postService.GetFeed(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Feed retrieved successfully", gin.H{"posts": posts})
}

// GetExploreFeed returns recent public posts
// GET /api/v1/posts/explore
func (h *PostHandler) GetExploreFeed(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	limit, offset := pagination(c)
	posts, err := h.postService.GetExploreFeed(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Explore feed retrieved successfully", gin.H{"posts": posts})
}

// UpdatePrivacy changes a post's privacy level
// PUT /api/v1/posts/:id/privacy
func (h *PostHandler) UpdatePrivacy(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	var req struct {
		Privacy string `json:"privacy" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.UpdatePrivacy(userID, c.Param("id"), req.Privacy)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Post privacy updated successfully", gin.H{"post": post})
}

// DeletePost removes a post owned by the authenticated user
// DELETE /api/v1/posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	if err := h.postService.DeletePost(userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Post deleted successfully", nil)
}

// LikePost likes a post
// POST /api/v1/posts/:id/like
func (h *PostHandler) LikePost(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	if err := h.postService.LikePost(userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Post liked successfully", nil)
}

// UnlikePost removes a like
// DELETE /api/v1/posts/:id/like
func (h *PostHandler) UnlikePost(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	if err := h.postService.UnlikePost(userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Post unliked successfully", nil)
}

// AddComment adds a comment to a visible post
// POST /api/v1/posts/:id/comments
func (h *PostHandler) AddComment(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required,max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	comment, err := h.postService.AddComment(userID, c.Param("id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Comment added successfully", gin.H{"comment": comment})
}

// GetComments lists a visible post's comments
// GET /api/v1/posts/:id/comments
func (h *PostHandler) GetComments(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	limit, offset := pagination(c)
	comments, err := h.postService.GetComments(c.Param("id"), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Comments retrieved successfully", gin.H{"comments": comments})
}
