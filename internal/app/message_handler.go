package app

import (
	"net/http"
	"path/filepath"
	"strings"

	"socialite/internal/service"
	"socialite/internal/util"

	"github.com/gin-gonic/gin"
)

func isVideoFilename(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp4", ".mov", ".webm":
		return true
	}
	return false
}

type MessageHandler struct {
	messageService service.MessageService
	cloudinary     *util.CloudinaryClient
}

func NewMessageHandler(messageService service.MessageService, cloudinary *util.CloudinaryClient) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		cloudinary:     cloudinary,
	}
}

// SendMessage sends a direct message
// POST /api/v1/messages
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	var req service.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	message, err := h.messageService.SendMessage(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Message sent successfully", gin.H{"message": message})
}

// SendMediaMessage uploads an attachment and sends it as a message
// POST /api/v1/messages/media
func (h *MessageHandler) SendMediaMessage(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	if h.cloudinary == nil {
		util.ErrorResponse(c, http.StatusServiceUnavailable, "Media uploads are disabled", nil)
		return
	}

	receiverID := c.PostForm("receiver_id")
	if receiverID == "" {
		util.BadRequest(c, "Form field 'receiver_id' is required")
		return
	}

	fileHeader, err := c.FormFile("media")
	if err != nil {
		util.BadRequest(c, "Form file 'media' is required")
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
		util.InternalError(c, "Failed to upload media")
		return
	}

	req := service.SendMessageRequest{ReceiverID: receiverID}
	if isVideoFilename(fileHeader.Filename) {
		req.VideoURL = &url
	} else {
		req.ImageURL = &url
	}
	if content := c.PostForm("content"); content != "" {
		req.Content = &content
	}

	message, err := h.messageService.SendMessage(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Message sent successfully", gin.H{"message": message})
}

// GetConversation returns messages between the authenticated user and another
// user, oldest first, and marks the other user's messages as read.
// GET /api/v1/messages/:userID
func (h *MessageHandler) GetConversation(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	limit, offset := pagination(c)
	messages, err := h.messageService.GetConversation(userID, c.Param("userID"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Conversation retrieved successfully", gin.H{"messages": messages})
}

// GetUnreadCount returns the number of unread messages
// GET /api/v1/messages/unread/count
func (h *MessageHandler) GetUnreadCount(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	count, err := h.messageService.GetUnreadCount(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Unread count retrieved successfully", gin.H{"count": count})
}

// React toggles a reaction on a message. Reacting with the kind already
// present removes it; a different kind replaces the previous one.
// POST /api/v1/messages/:id/reactions
func (h *MessageHandler) React(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	var req struct {
		Kind string `json:"kind" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := h.messageService.React(userID, c.Param("id"), req.Kind)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Reaction updated successfully", result)
}
