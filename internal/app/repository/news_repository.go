package repository

import (
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"gorm.io/gorm"
)

type NewsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) Create(news *model.GameNews) error {
	return r.db.Create(news).Error
}

func (r *NewsRepository) FindByID(id uint) (*model.GameNews, error) {
	var news model.GameNews
	if err := r.db.First(&news, id).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

func (r *NewsRepository) FindByGameID(gameID uint, offset, limit int) ([]model.GameNews, int64, error) {
	var items []model.GameNews
	var total int64

	query := r.db.Model(&model.GameNews{}).Where("game_id = ?", gameID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("published_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *NewsRepository) Update(news *model.GameNews) error {
	return r.db.Save(news).Error
}

func (r *NewsRepository) Delete(id uint) error {
	return r.db.Delete(&model.GameNews{}, id).Error
}
