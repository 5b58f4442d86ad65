package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jwhan/playgrid-backend/internal/app/service"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/jwhan/playgrid-backend/internal/middleware"
)

type AchievementController struct {
	achievementService *service.AchievementService
}

func NewAchievementController(achievementService *service.AchievementService) *AchievementController {
	return &AchievementController{achievementService: achievementService}
}

type CreateAchievementRequest struct {
	Title string `json:"title" binding:"required"`
	Icon  string `json:"icon"`
}

// ListGameAchievements returns a game's achievements
// GET /api/v1/games/:id/achievements
func (ctrl *AchievementController) ListGameAchievements(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}

	achievements, err := ctrl.achievementService.ListGameAchievements(gameID)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"achievements": achievements,
		"count":        len(achievements),
	})
}

// CreateAchievement adds an achievement to a game (Admin only)
// POST /api/v1/games/:id/achievements
func (ctrl *AchievementController) CreateAchievement(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req CreateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	achievement, err := ctrl.achievementService.CreateAchievement(gameID, req.Title, req.Icon)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"achievement": achievement})
}

// Unlock records an achievement unlock for the authenticated user
// POST /api/v1/achievements/:id/unlock
func (ctrl *AchievementController) Unlock(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}
	achievementID, ok := idParam(c, "id")
	if !ok {
		return
	}

	unlock, err := ctrl.achievementService.Unlock(userID, achievementID)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"unlock": unlock})
}

// RemoveUnlock deletes the authenticated user's unlock record
// DELETE /api/v1/achievements/:id/unlock
func (ctrl *AchievementController) RemoveUnlock(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}
	achievementID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.achievementService.RemoveUnlock(userID, achievementID); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unlock removed"})
}

// ListMyUnlocks returns the authenticated user's unlocked achievements
// GET /api/v1/achievements/unlocked
func (ctrl *AchievementController) ListMyUnlocks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}

	unlocks, err := ctrl.achievementService.ListUserUnlocks(userID)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"unlocks": unlocks,
		"count":   len(unlocks),
	})
}

// DeleteAchievement removes an achievement (Admin only)
// DELETE /api/v1/achievements/:id
func (ctrl *AchievementController) DeleteAchievement(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.achievementService.DeleteAchievement(id); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "achievement deleted"})
}
