package repository

import (
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"gorm.io/gorm"
)

type AchievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func (r *AchievementRepository) Create(achievement *model.Achievement) error {
	return r.db.Create(achievement).Error
}

func (r *AchievementRepository) FindByID(id uint) (*model.Achievement, error) {
	var achievement model.Achievement
	if err := r.db.First(&achievement, id).Error; err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (r *AchievementRepository) FindByIDs(ids []uint) ([]model.Achievement, error) {
	var achievements []model.Achievement
	if err := r.db.Where("id IN ?", ids).Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}

func (r *AchievementRepository) FindByGameID(gameID uint) ([]model.Achievement, error) {
	var achievements []model.Achievement
	if err := r.db.Where("game_id = ?", gameID).Order("id ASC").Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}

func (r *AchievementRepository) Update(achievement *model.Achievement) error {
	return r.db.Save(achievement).Error
}

func (r *AchievementRepository) Delete(id uint) error {
	return r.db.Delete(&model.Achievement{}, id).Error
}

// FindUnlocksByUserID lists a user's unlocked achievements.
func (r *AchievementRepository) FindUnlocksByUserID(userID uint) ([]model.UserAchievement, error) {
	var unlocks []model.UserAchievement
	err := r.db.Where("user_id = ?", userID).
		Preload("Achievement").
		Order("unlocked_at DESC").
		Find(&unlocks).Error
	if err != nil {
		return nil, err
	}
	return unlocks, nil
}
