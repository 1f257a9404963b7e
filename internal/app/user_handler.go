package app

import (
	"net/http"

	"socialite/internal/service"
	"socialite/internal/util"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
	cloudinary  *util.CloudinaryClient
}

func NewUserHandler(userService service.UserService, cloudinary *util.CloudinaryClient) *UserHandler {
	return &UserHandler{
		userService: userService,
		cloudinary:  cloudinary,
	}
}

// GetUser returns a user's public profile
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "User retrieved successfully", gin.H{"user": user})
}

// SearchUsers searches users by username or email keyword
// GET /api/v1/users/search?q=keyword
func (h *UserHandler) SearchUsers(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		util.BadRequest(c, "Query parameter 'q' is required")
		return
	}

	limit, offset := pagination(c)
	users, err := h.userService.SearchUsers(keyword, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Users retrieved successfully", gin.H{"users": users})
}

// SearchByPhone finds a user by exact phone number
// GET /api/v1/users/search/phone?phone=...
func (h *UserHandler) SearchByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		util.BadRequest(c, "Query parameter 'phone' is required")
		return
	}

	user, err := h.userService.SearchByPhone(phone)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "User retrieved successfully", gin.H{"user": user})
}

// UpdateProfile updates the authenticated user's profile fields
// PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Profile updated successfully", gin.H{"user": user})
}

// UploadAvatar uploads a new avatar image and stores its URL
// POST /api/v1/users/me/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	if h.cloudinary == nil {
		util.ErrorResponse(c, http.StatusServiceUnavailable, "Media uploads are disabled", nil)
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		util.BadRequest(c, "Form file 'avatar' is required")
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
		util.InternalError(c, "Failed to upload avatar")
		return
	}

	user, err := h.userService.UpdateProfile(userID, service.UpdateProfileRequest{AvatarURL: &url})
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Avatar updated successfully", gin.H{"user": user})
}
