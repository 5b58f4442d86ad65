package repository

import (
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"gorm.io/gorm"
)

type SaveRepository struct {
	db *gorm.DB
}

func NewSaveRepository(db *gorm.DB) *SaveRepository {
	return &SaveRepository{db: db}
}

func (r *SaveRepository) Create(save *model.GameSave) error {
	return r.db.Create(save).Error
}

func (r *SaveRepository) FindByUserAndGame(userID, gameID uint) (*model.GameSave, error) {
	var save model.GameSave
	err := r.db.Where("user_id = ? AND game_id = ?", userID, gameID).First(&save).Error
	if err != nil {
		return nil, err
	}
	return &save, nil
}

// FindByUserID lists a user's saves without the blob payload.
func (r *SaveRepository) FindByUserID(userID uint) ([]model.GameSave, error) {
	var saves []model.GameSave
	err := r.db.Where("user_id = ?", userID).
		Omit("data").
		Order("last_updated DESC").
		Find(&saves).Error
	if err != nil {
		return nil, err
	}
	return saves, nil
}

func (r *SaveRepository) Update(save *model.GameSave) error {
	return r.db.Save(save).Error
}

func (r *SaveRepository) Delete(userID, gameID uint) error {
	return r.db.Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&model.GameSave{}).Error
}
