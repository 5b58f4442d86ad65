package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jwhan/playgrid-backend/internal/app/service"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/jwhan/playgrid-backend/internal/middleware"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

type CreateUserWithSetupRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=50"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	Age             int    `json:"age" binding:"gte=0"`
	Region          string `json:"region"`
	WishlistGameIDs []uint `json:"wishlist_game_ids"`
	FriendIDs       []uint `json:"friend_ids"`
	AchievementIDs  []uint `json:"achievement_ids"`
}

type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Age      *int    `json:"age" binding:"omitempty,gte=0"`
	Region   *string `json:"region"`
}

// CreateWithSetup creates a user plus their initial wishlist, friend
// requests, and unlocks in one shot (Admin only)
// POST /api/v1/users/setup
func (ctrl *UserController) CreateWithSetup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateUserWithSetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid user setup request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	user, err := ctrl.userService.CreateUserWithInitialSetup(service.InitialSetupInput{
		User: service.UserInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Age:      req.Age,
			Region:   req.Region,
		},
		WishlistGameIDs: req.WishlistGameIDs,
		FriendIDs:       req.FriendIDs,
		AchievementIDs:  req.AchievementIDs,
	})
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// GetUser returns a user by ID
// GET /api/v1/users/:id
func (ctrl *UserController) GetUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	user, err := ctrl.userService.GetUserByID(id)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListUsers returns a page of users (Admin only)
// GET /api/v1/users
func (ctrl *UserController) ListUsers(c *gin.Context) {
	offset, limit := pagination(c)

	users, err := ctrl.userService.ListUsers(limit, offset)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// UpdateUser applies a partial profile update. Only the authenticated user
// or an admin may edit a profile.
// PATCH /api/v1/users/:id
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	callerID, _ := middleware.GetUserID(c)
	callerRole, _ := middleware.GetUserRole(c)
	if callerID != id && callerRole != "admin" {
		errors.Forbidden(c, "access denied")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	user, err := ctrl.userService.UpdateUser(id, service.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Age:      req.Age,
		Region:   req.Region,
	})
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes a user (Admin only)
// DELETE /api/v1/users/:id
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.userService.DeleteUser(id); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user " + strconv.FormatUint(uint64(id), 10) + " deleted"})
}
