package controller

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jwhan/playgrid-backend/internal/app/service"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/jwhan/playgrid-backend/internal/middleware"
)

type SaveController struct {
	saveService *service.SaveService
}

func NewSaveController(saveService *service.SaveService) *SaveController {
	return &SaveController{saveService: saveService}
}

type SaveDataRequest struct {
	Data string `json:"data" binding:"required"` // base64-encoded save blob
}

func (r SaveDataRequest) decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(r.Data)
}

// ListSaves returns the user's saves without their data blobs
// GET /api/v1/saves
func (ctrl *SaveController) ListSaves(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}

	saves, err := ctrl.saveService.ListSaves(userID)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"saves": saves,
		"count": len(saves),
	})
}

// GetSave returns the user's save for a game, including the data blob
// GET /api/v1/saves/:gameId
func (ctrl *SaveController) GetSave(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}
	gameID, ok := idParam(c, "gameId")
	if !ok {
		return
	}

	save, err := ctrl.saveService.GetSave(userID, gameID)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"save": save,
		"data": base64.StdEncoding.EncodeToString(save.Data),
	})
}

// CreateSave uploads the first save for a game
// POST /api/v1/saves/:gameId
func (ctrl *SaveController) CreateSave(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}
	gameID, ok := idParam(c, "gameId")
	if !ok {
		return
	}

	var req SaveDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}
	data, err := req.decode()
	if err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "save data must be base64")
		return
	}

	save, err := ctrl.saveService.CreateSave(userID, gameID, data)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"save": save})
}

// UpdateSave replaces the save blob for a game
// PUT /api/v1/saves/:gameId
func (ctrl *SaveController) UpdateSave(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}
	gameID, ok := idParam(c, "gameId")
	if !ok {
		return
	}

	var req SaveDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}
	data, err := req.decode()
	if err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "save data must be base64")
		return
	}

	save, err := ctrl.saveService.UpdateSave(userID, gameID, data)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"save": save})
}

// DeleteSave removes the user's save for a game
// DELETE /api/v1/saves/:gameId
func (ctrl *SaveController) DeleteSave(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}
	gameID, ok := idParam(c, "gameId")
	if !ok {
		return
	}

	if err := ctrl.saveService.DeleteSave(userID, gameID); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "save deleted"})
}
