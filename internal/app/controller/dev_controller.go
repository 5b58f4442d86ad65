package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/service"
	"github.com/jwhan/playgrid-backend/internal/errors"
)

type DevController struct {
	devService *service.DevService
}

func NewDevController(devService *service.DevService) *DevController {
	return &DevController{devService: devService}
}

type CreateDevRequest struct {
	Name    string        `json:"name" binding:"required,max=100"`
	Type    model.DevType `json:"type" binding:"required,oneof=developer publisher both"`
	Website string        `json:"website"`
}

type UpdateDevRequest struct {
	Name    *string        `json:"name" binding:"omitempty,max=100"`
	Type    *model.DevType `json:"type" binding:"omitempty,oneof=developer publisher both"`
	Website *string        `json:"website"`
}

// ListDevs returns all studios, optionally filtered by type
// GET /api/v1/devs
func (ctrl *DevController) ListDevs(c *gin.Context) {
	var devType *model.DevType
	if raw := c.Query("type"); raw != "" {
		t := model.DevType(raw)
		devType = &t
	}

	devs, err := ctrl.devService.ListDevs(devType)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"devs":  devs,
		"count": len(devs),
	})
}

// GetDev returns a studio by ID
// GET /api/v1/devs/:id
func (ctrl *DevController) GetDev(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	dev, err := ctrl.devService.GetDevByID(id)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dev": dev})
}

// CreateDev creates a studio (Admin only)
// POST /api/v1/devs
func (ctrl *DevController) CreateDev(c *gin.Context) {
	var req CreateDevRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	dev, err := ctrl.devService.CreateDev(req.Name, req.Type, req.Website)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"dev": dev})
}

// UpdateDev applies a partial update (Admin only)
// PATCH /api/v1/devs/:id
func (ctrl *DevController) UpdateDev(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateDevRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	dev, err := ctrl.devService.UpdateDev(id, service.DevUpdate{
		Name:    req.Name,
		Type:    req.Type,
		Website: req.Website,
	})
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dev": dev})
}

// DeleteDev removes a studio (Admin only)
// DELETE /api/v1/devs/:id
func (ctrl *DevController) DeleteDev(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.devService.DeleteDev(id); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "dev deleted"})
}
