package service

import (
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/jwhan/playgrid-backend/pkg/logger"
	"gorm.io/gorm"
)

// ReviewUpdate is a field update set: nil means untouched.
type ReviewUpdate struct {
	Rating  *int
	Content *string
}

// GameReviews bundles a review page with the game's average rating.
type GameReviews struct {
	Reviews       []model.Review `json:"reviews"`
	Total         int64          `json:"total"`
	AverageRating float64        `json:"average_rating"`
}

type ReviewService struct {
	reviewRepo *repository.ReviewRepository
	db         *gorm.DB
}

func NewReviewService(reviewRepo *repository.ReviewRepository, gdb *gorm.DB) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, db: gdb}
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// CreateReview writes a user's review of a game. Rating must be 1-5, one
// review per (user, game), and the duplicate check runs before the
// existence checks.
func (s *ReviewService) CreateReview(userID, gameID uint, rating int, content string) (*model.Review, error) {
	if !validRating(rating) {
		return nil, errors.BadRequest(errors.ReviewInvalidRating, "rating must be between 1 and 5, got %d", rating)
	}

	var review *model.Review
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		free, err := pairFree(tx, &model.Review{}, "user_id", userID, "game_id", gameID)
		if err != nil {
			return errors.Classify(err, "review")
		}
		if !free {
			return errors.Conflict(errors.ReviewExists, "user %d already reviewed game %d", userID, gameID)
		}

		exists, err := recordExists(tx, &model.User{}, userID)
		if err != nil {
			return errors.Classify(err, "user")
		}
		if !exists {
			return errors.NotFound(errors.ResourceNotFound, "user %d not found", userID)
		}

		exists, err = recordExists(tx, &model.Game{}, gameID)
		if err != nil {
			return errors.Classify(err, "game")
		}
		if !exists {
			return errors.NotFound(errors.GameNotFound, "game %d not found", gameID)
		}

		created := &model.Review{
			UserID:  userID,
			GameID:  gameID,
			Rating:  rating,
			Content: content,
		}
		if err := tx.Create(created).Error; err != nil {
			return errors.Classify(err, "review")
		}
		review = created
		return nil
	})
	if err != nil {
		logger.Warn("Review creation failed", map[string]interface{}{
			"user_id": userID,
			"game_id": gameID,
			"error":   err.Error(),
		})
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) GetGameReviews(gameID uint, offset, limit int) (*GameReviews, error) {
	reviews, total, err := s.reviewRepo.FindByGameID(gameID, offset, limit)
	if err != nil {
		return nil, errors.Classify(err, "review")
	}

	average, err := s.reviewRepo.AverageRating(gameID)
	if err != nil {
		return nil, errors.Classify(err, "review")
	}

	return &GameReviews{
		Reviews:       reviews,
		Total:         total,
		AverageRating: average,
	}, nil
}

// UpdateReview applies a partial update to the caller's review of a game.
// A touched rating is re-validated; an untouched one is not.
func (s *ReviewService) UpdateReview(userID, gameID uint, update ReviewUpdate) (*model.Review, error) {
	if update.Rating != nil && !validRating(*update.Rating) {
		return nil, errors.BadRequest(errors.ReviewInvalidRating, "rating must be between 1 and 5, got %d", *update.Rating)
	}

	var updated *model.Review
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		var review model.Review
		err := tx.Where("user_id = ? AND game_id = ?", userID, gameID).First(&review).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NotFound(errors.ReviewNotFound, "user %d has no review for game %d", userID, gameID)
			}
			return errors.Classify(err, "review")
		}

		if update.Rating != nil {
			review.Rating = *update.Rating
		}
		if update.Content != nil {
			review.Content = *update.Content
		}

		if err := tx.Save(&review).Error; err != nil {
			return errors.Classify(err, "review")
		}
		updated = &review
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ReviewService) DeleteReview(userID, gameID uint) error {
	return db.RunAtomically(s.db, func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND game_id = ?", userID, gameID).Delete(&model.Review{})
		if result.Error != nil {
			return errors.Classify(result.Error, "review")
		}
		if result.RowsAffected == 0 {
			return errors.NotFound(errors.ReviewNotFound, "user %d has no review for game %d", userID, gameID)
		}
		return nil
	})
}
