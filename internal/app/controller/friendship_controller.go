package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jwhan/playgrid-backend/internal/app/service"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/jwhan/playgrid-backend/internal/middleware"
)

type FriendshipController struct {
	friendshipService service.FriendshipService
}

func NewFriendshipController(friendshipService service.FriendshipService) *FriendshipController {
	return &FriendshipController{friendshipService: friendshipService}
}

type FriendRequestBody struct {
	FriendID uint `json:"friend_id" binding:"required"`
}

// ListFriendships returns the authenticated user's friendships
// GET /api/v1/friends
func (ctrl *FriendshipController) ListFriendships(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}

	friendships, err := ctrl.friendshipService.ListFriendships(userID)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"friendships": friendships,
		"count":       len(friendships),
	})
}

// SendRequest sends a friend request
// POST /api/v1/friends
func (ctrl *FriendshipController) SendRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}

	var req FriendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	friendship, err := ctrl.friendshipService.SendRequest(userID, req.FriendID)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"friendship": friendship})
}

// AcceptRequest accepts a pending friend request sent to the user
// POST /api/v1/friends/:friendId/accept
func (ctrl *FriendshipController) AcceptRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}
	friendID, ok := idParam(c, "friendId")
	if !ok {
		return
	}

	friendship, err := ctrl.friendshipService.AcceptRequest(userID, friendID)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"friendship": friendship})
}

// BlockUser blocks another user
// POST /api/v1/friends/:friendId/block
func (ctrl *FriendshipController) BlockUser(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}
	friendID, ok := idParam(c, "friendId")
	if !ok {
		return
	}

	friendship, err := ctrl.friendshipService.BlockUser(userID, friendID)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"friendship": friendship})
}

// RemoveFriendship deletes the relation from the user to friendId
// DELETE /api/v1/friends/:friendId
func (ctrl *FriendshipController) RemoveFriendship(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}
	friendID, ok := idParam(c, "friendId")
	if !ok {
		return
	}

	if err := ctrl.friendshipService.RemoveFriendship(userID, friendID); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "friendship removed"})
}
