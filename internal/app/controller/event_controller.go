package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/service"
	"github.com/jwhan/playgrid-backend/internal/errors"
)

type EventController struct {
	eventService *service.EventService
}

func NewEventController(eventService *service.EventService) *EventController {
	return &EventController{eventService: eventService}
}

type CreateEventRequest struct {
	GameID    uint            `json:"game_id" binding:"required"`
	Type      model.EventType `json:"type" binding:"required,oneof=sale giveaway free_weekend"`
	StartDate time.Time       `json:"start_date" binding:"required"`
	EndDate   time.Time       `json:"end_date" binding:"required"`
}

type UpdateEventRequest struct {
	Type      *model.EventType `json:"type" binding:"omitempty,oneof=sale giveaway free_weekend"`
	StartDate *time.Time       `json:"start_date"`
	EndDate   *time.Time       `json:"end_date"`
	Active    *bool            `json:"active"`
}

// ListActiveEvents returns currently running promotions
// GET /api/v1/events
func (ctrl *EventController) ListActiveEvents(c *gin.Context) {
	events, err := ctrl.eventService.ListActiveEvents()
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// GetEvent returns an event by ID
// GET /api/v1/events/:id
func (ctrl *EventController) GetEvent(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	event, err := ctrl.eventService.GetEventByID(id)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// ListGameEvents returns all events for a game
// GET /api/v1/games/:id/events
func (ctrl *EventController) ListGameEvents(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}

	events, err := ctrl.eventService.ListGameEvents(gameID)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// CreateEvent schedules a promotion (Admin only)
// POST /api/v1/events
func (ctrl *EventController) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	event, err := ctrl.eventService.CreateEvent(req.GameID, req.Type, req.StartDate, req.EndDate)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// UpdateEvent applies a partial update (Admin only)
// PATCH /api/v1/events/:id
func (ctrl *EventController) UpdateEvent(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	event, err := ctrl.eventService.UpdateEvent(id, service.EventUpdate{
		Type:      req.Type,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Active:    req.Active,
	})
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent removes an event (Admin only)
// DELETE /api/v1/events/:id
func (ctrl *EventController) DeleteEvent(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.eventService.DeleteEvent(id); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}
