package app

import (
	"net/http"

	"socialite/internal/service"
	"socialite/internal/util"

	"github.com/gin-gonic/gin"
)

type FriendHandler struct {
	friendService service.FriendService
	blockService  service.BlockService
}

func NewFriendHandler(friendService service.FriendService, blockService service.BlockService) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
		blockService:  blockService,
	}
}

// SendRequest handles sending a friend request
// POST /api/v1/friends/requests
func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	var req struct {
		ReceiverID string `json:"receiver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	request, err := h.friendService.SendRequest(userID, req.ReceiverID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Friend request sent successfully", gin.H{"request": request})
}

// AcceptRequest handles accepting a friend request
// POST /api/v1/friends/requests/:id/accept
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	if err := h.friendService.AcceptRequest(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Friend request accepted", nil)
}

// RejectRequest handles rejecting a friend request
// POST /api/v1/friends/requests/:id/reject
func (h *FriendHandler) RejectRequest(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	if err := h.friendService.RejectRequest(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Friend request rejected", nil)
}

// CancelRequest withdraws a pending request the authenticated user sent
// DELETE /api/v1/friends/requests/:receiverID
func (h *FriendHandler) CancelRequest(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	if err := h.friendService.CancelRequest(userID, c.Param("receiverID")); err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Friend request cancelled", nil)
}

// GetPendingRequests lists requests awaiting the authenticated user's decision
// GET /api/v1/friends/requests
func (h *FriendHandler) GetPendingRequests(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	requests, err := h.friendService.GetPendingRequests(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Pending requests retrieved successfully", gin.H{"requests": requests})
}

// GetFriends lists the authenticated user's friends
// GET /api/v1/friends
func (h *FriendHandler) GetFriends(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	friends, err := h.friendService.GetFriends(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Friends retrieved successfully", gin.H{"friends": friends})
}

// GetFriendStatus reports whether the authenticated user is friends with another user
// GET /api/v1/friends/status/:userID
func (h *FriendHandler) GetFriendStatus(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	isFriend, err := h.friendService.IsFriend(userID, c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Friend status retrieved successfully", gin.H{"is_friend": isFriend})
}

// Unfriend removes an existing friendship
// DELETE /api/v1/friends/:userID
func (h *FriendHandler) Unfriend(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	if err := h.friendService.Unfriend(userID, c.Param("userID")); err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Friend removed successfully", nil)
}

// Block blocks another user, severing any friendship and pending requests
// POST /api/v1/friends/blocks
func (h *FriendHandler) Block(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := h.blockService.Block(userID, req.UserID); err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "User blocked successfully", nil)
}

// Unblock removes a block the authenticated user placed
// DELETE /api/v1/friends/blocks/:userID
func (h *FriendHandler) Unblock(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	if err := h.blockService.Unblock(userID, c.Param("userID")); err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "User unblocked successfully", nil)
}

// GetBlockedUsers lists users the authenticated user has blocked
// GET /api/v1/friends/blocks
func (h *FriendHandler) GetBlockedUsers(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	blocks, err := h.blockService.GetBlockedUsers(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Blocked users retrieved successfully", gin.H{"blocks": blocks})
}
