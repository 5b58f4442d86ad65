package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jwhan/playgrid-backend/internal/app/service"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/jwhan/playgrid-backend/internal/middleware"
)

type ReviewController struct {
	reviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Content string `json:"content"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Content *string `json:"content"`
}

// GetGameReviews returns a page of reviews for a game plus its average
// rating
// GET /api/v1/games/:id/reviews
func (ctrl *ReviewController) GetGameReviews(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}
	offset, limit := pagination(c)

	reviews, err := ctrl.reviewService.GetGameReviews(gameID, offset, limit)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// CreateReview writes the authenticated user's review of a game
// POST /api/v1/games/:id/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	review, err := ctrl.reviewService.CreateReview(userID, gameID, req.Rating, req.Content)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// UpdateReview applies a partial update to the user's review
// PATCH /api/v1/games/:id/reviews
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidInput, "invalid request data")
		return
	}

	review, err := ctrl.reviewService.UpdateReview(userID, gameID, service.ReviewUpdate{
		Rating:  req.Rating,
		Content: req.Content,
	})
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// DeleteReview removes the user's review of a game
// DELETE /api/v1/games/:id/reviews
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "login required")
		return
	}
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.reviewService.DeleteReview(userID, gameID); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}
