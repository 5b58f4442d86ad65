package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/app/service"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/jwhan/playgrid-backend/internal/middleware"
)

type GameController struct {
	gameService service.GameService
}

func NewGameController(gameService service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type CreateGameRequest struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description"`
	Price       float64   `json:"price" binding:"gte=0"`
	ReleaseDate time.Time `json:"release_date"`
	CoverURL    string    `json:"cover_url"`
	BaseGameID  *uint     `json:"base_game_id"`
}

type CreateCompleteGameRequest struct {
	CreateGameRequest
	TagIDs       []uint                `json:"tag_ids"`
	DevIDs       []uint                `json:"dev_ids"`
	Achievements []AchievementsPayload `json:"achievements"`
	InitialNews  NewsPayload           `json:"initial_news" binding:"required"`
}

type AchievementsPayload struct {
	Title string `json:"title" binding:"required"`
	Icon  string `json:"icon"`
}

type NewsPayload struct {
	Title       string    `json:"title" binding:"required"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"published_at"`
}

type UpdateGameRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=200"`
	Description *string    `json:"description"`
	Price       *float64   `json:"price" binding:"omitempty,gte=0"`
	ReleaseDate *time.Time `json:"release_date"`
	CoverURL    *string    `json:"cover_url"`
	BaseGameID  *uint      `json:"base_game_id"`
}

func (r CreateGameRequest) toInput() service.GameInput {
	return service.GameInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		ReleaseDate: r.ReleaseDate,
		CoverURL:    r.CoverURL,
		BaseGameID:  r.BaseGameID,
	}
}

// ListGames returns games matching the query filters
// GET /api/v1/games
func (ctrl *GameController) ListGames(c *gin.Context) {
	offset, limit := pagination(c)

	filter := repository.GameFilter{
		Search:        c.Query("search"),
		SortBy:        repository.GameSort(c.DefaultQuery("sort", "created_at")),
		SortAscending: c.DefaultQuery("order", "asc") == "asc",
		Limit:         limit,
		Offset:        offset,
	}
	if raw := c.Query("tag_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			tagID := uint(id)
			filter.TagID = &tagID
		}
	}
	if raw := c.Query("dev_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			devID := uint(id)
			filter.DevID = &devID
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &price
		}
	}

	games, err := ctrl.gameService.ListGames(filter)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"games": games,
		"count": len(games),
	})
}

// GetGame returns a game with its achievements, tags, devs, and news
// GET /api/v1/games/:id
func (ctrl *GameController) GetGame(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	game, err := ctrl.gameService.GetGameByID(id)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"game": game})
}

// CreateGame creates a bare game (Admin only)
// POST /api/v1/games
func (ctrl *GameController) CreateGame(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid game creation request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	game, err := ctrl.gameService.CreateGame(req.toInput())
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"game": game})
}

// CreateCompleteGame creates a game with achievements, tag and dev links,
// and initial news in one transaction (Admin only)
// POST /api/v1/games/complete
func (ctrl *GameController) CreateCompleteGame(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateCompleteGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid complete game request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	input := service.CompleteGameInput{
		Game:   req.toInput(),
		TagIDs: req.TagIDs,
		DevIDs: req.DevIDs,
		InitialNews: service.NewsInput{
			Title:       req.InitialNews.Title,
			Content:     req.InitialNews.Content,
			PublishedAt: req.InitialNews.PublishedAt,
		},
	}
	for _, a := range req.Achievements {
		input.Achievements = append(input.Achievements, service.AchievementInput{
			Title: a.Title,
			Icon:  a.Icon,
		})
	}

	game, err := ctrl.gameService.CreateCompleteGame(input)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"game": game})
}

// UpdateGame applies a partial update (Admin only)
// PATCH /api/v1/games/:id
func (ctrl *GameController) UpdateGame(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	game, err := ctrl.gameService.UpdateGame(id, service.GameUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ReleaseDate: req.ReleaseDate,
		CoverURL:    req.CoverURL,
		BaseGameID:  req.BaseGameID,
	})
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"game": game})
}

// DeleteGame removes a game (Admin only)
// DELETE /api/v1/games/:id
func (ctrl *GameController) DeleteGame(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.gameService.DeleteGame(id); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "game deleted"})
}

// AddTag links a tag to a game (Admin only)
// POST /api/v1/games/:id/tags/:tagId
func (ctrl *GameController) AddTag(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}
	tagID, ok := idParam(c, "tagId")
	if !ok {
		return
	}

	if err := ctrl.gameService.AddTag(gameID, tagID); err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "tag added"})
}

// RemoveTag unlinks a tag from a game (Admin only)
// DELETE /api/v1/games/:id/tags/:tagId
func (ctrl *GameController) RemoveTag(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}
	tagID, ok := idParam(c, "tagId")
	if !ok {
		return
	}

	if err := ctrl.gameService.RemoveTag(gameID, tagID); err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tag removed"})
}

// AddDev links a dev to a game (Admin only)
// POST /api/v1/games/:id/devs/:devId
func (ctrl *GameController) AddDev(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}
	devID, ok := idParam(c, "devId")
	if !ok {
		return
	}

	if err := ctrl.gameService.AddDev(gameID, devID); err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "dev added"})
}

// RemoveDev unlinks a dev from a game (Admin only)
// DELETE /api/v1/games/:id/devs/:devId
func (ctrl *GameController) RemoveDev(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}
	devID, ok := idParam(c, "devId")
	if !ok {
		return
	}

	if err := ctrl.gameService.RemoveDev(gameID, devID); err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "dev removed"})
}
