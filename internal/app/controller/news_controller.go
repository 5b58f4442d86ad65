package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jwhan/playgrid-backend/internal/app/service"
	"github.com/jwhan/playgrid-backend/internal/errors"
)

type NewsController struct {
	newsService *service.NewsService
}

func NewNewsController(newsService *service.NewsService) *NewsController {
	return &NewsController{newsService: newsService}
}

type PublishNewsRequest struct {
	Title       string    `json:"title" binding:"required"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"published_at"`
}

type UpdateNewsRequest struct {
	Title       *string    `json:"title"`
	Content     *string    `json:"content"`
	PublishedAt *time.Time `json:"published_at"`
}

// ListGameNews returns a page of announcements for a game
// GET /api/v1/games/:id/news
func (ctrl *NewsController) ListGameNews(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}
	offset, limit := pagination(c)

	news, total, err := ctrl.newsService.ListGameNews(gameID, offset, limit)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"news":  news,
		"total": total,
	})
}

// GetNews returns one announcement
// GET /api/v1/news/:id
func (ctrl *NewsController) GetNews(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	news, err := ctrl.newsService.GetNewsByID(id)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"news": news})
}

// PublishNews attaches an announcement to a game (Admin only)
// POST /api/v1/games/:id/news
func (ctrl *NewsController) PublishNews(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req PublishNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	news, err := ctrl.newsService.PublishNews(gameID, req.Title, req.Content, req.PublishedAt)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"news": news})
}

// UpdateNews applies a partial update (Admin only)
// PATCH /api/v1/news/:id
func (ctrl *NewsController) UpdateNews(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	news, err := ctrl.newsService.UpdateNews(id, service.NewsUpdate{
		Title:       req.Title,
		Content:     req.Content,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"news": news})
}

// DeleteNews removes an announcement (Admin only)
// DELETE /api/v1/news/:id
func (ctrl *NewsController) DeleteNews(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.newsService.DeleteNews(id); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "news deleted"})
}
