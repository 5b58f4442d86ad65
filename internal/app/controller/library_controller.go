package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/service"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/jwhan/playgrid-backend/internal/middleware"
)

type LibraryController struct {
	libraryService service.LibraryService
}

func NewLibraryController(libraryService service.LibraryService) *LibraryController {
	return &LibraryController{libraryService: libraryService}
}

type AddToLibraryRequest struct {
	GameID    uint                `json:"game_id" binding:"required"`
	Ownership model.OwnershipType `json:"ownership" binding:"required,oneof=rented wishlist purchased"`
}

type UpdateLibraryEntryRequest struct {
	HoursPlayed    *float64              `json:"hours_played" binding:"omitempty,gte=0"`
	Ownership      *model.OwnershipType  `json:"ownership" binding:"omitempty,oneof=rented wishlist purchased"`
	DownloadStatus *model.DownloadStatus `json:"download_status" binding:"omitempty,oneof=not_downloaded downloading installed"`
}

// GetLibrary returns the authenticated user's library
// GET /api/v1/library
func (ctrl *LibraryController) GetLibrary(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}

	entries, err := ctrl.libraryService.GetLibrary(userID)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"library": entries,
		"count":   len(entries),
	})
}

// AddToLibrary adds a game to the authenticated user's library
// POST /api/v1/library
func (ctrl *LibraryController) AddToLibrary(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}

	var req AddToLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	entry, err := ctrl.libraryService.AddToLibrary(userID, req.GameID, req.Ownership)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// UpdateEntry applies a partial update to one of the user's library entries
// PATCH /api/v1/library/:gameId
func (ctrl *LibraryController) UpdateEntry(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}
	gameID, ok := idParam(c, "gameId")
	if !ok {
		return
	}

	var req UpdateLibraryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	entry, err := ctrl.libraryService.UpdateEntry(userID, gameID, service.LibraryUpdate{
		HoursPlayed:    req.HoursPlayed,
		Ownership:      req.Ownership,
		DownloadStatus: req.DownloadStatus,
	})
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// RemoveFromLibrary deletes one of the user's library entries
// DELETE /api/v1/library/:gameId
func (ctrl *LibraryController) RemoveFromLibrary(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}
	gameID, ok := idParam(c, "gameId")
	if !ok {
		return
	}

	if err := ctrl.libraryService.RemoveFromLibrary(userID, gameID); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "entry removed"})
}
