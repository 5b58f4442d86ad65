package repository

import (
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.Preload("User").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) FindByUserAndGame(userID, gameID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.Where("user_id = ? AND game_id = ?", userID, gameID).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// FindByGameID lists reviews for a game, newest first.
func (r *ReviewRepository) FindByGameID(gameID uint, offset, limit int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	query := r.db.Model(&model.Review{}).Where("game_id = ?", gameID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// AverageRating returns the mean rating for a game, zero when unreviewed.
func (r *ReviewRepository) AverageRating(gameID uint) (float64, error) {
	var count int64
	if err := r.db.Model(&model.Review{}).Where("game_id = ?", gameID).Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	var avg float64
	err := r.db.Model(&model.Review{}).
		Where("game_id = ?", gameID).
		Select("AVG(rating)").
		Scan(&avg).Error
	return avg, err
}

func (r *ReviewRepository) Update(review *model.Review) error {
	return r.db.Save(review).Error
}

func (r *ReviewRepository) Delete(id uint) error {
	return r.db.Delete(&model.Review{}, id).Error
}
