package repository

import (
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"gorm.io/gorm"
)

type DevRepository struct {
	db *gorm.DB
}

func NewDevRepository(db *gorm.DB) *DevRepository {
	return &DevRepository{db: db}
}

func (r *DevRepository) Create(dev *model.Dev) error {
	return r.db.Create(dev).Error
}

func (r *DevRepository) FindByID(id uint) (*model.Dev, error) {
	var dev model.Dev
	if err := r.db.First(&dev, id).Error; err != nil {
		return nil, err
	}
	return &dev, nil
}

// FindByIDs fetches every dev in ids; callers compare the count against
// len(ids) to detect dangling references.
func (r *DevRepository) FindByIDs(ids []uint) ([]model.Dev, error) {
	var devs []model.Dev
	if err := r.db.Where("id IN ?", ids).Find(&devs).Error; err != nil {
		return nil, err
	}
	return devs, nil
}

// FindAll lists devs, optionally filtered by type.
func (r *DevRepository) FindAll(devType *model.DevType) ([]model.Dev, error) {
	var devs []model.Dev
	query := r.db.Order("dev_name ASC")
	if devType != nil {
		query = query.Where("dev_type = ?", *devType)
	}
	if err := query.Find(&devs).Error; err != nil {
		return nil, err
	}
	return devs, nil
}

func (r *DevRepository) Update(dev *model.Dev) error {
	return r.db.Save(dev).Error
}

func (r *DevRepository) Delete(id uint) error {
	return r.db.Delete(&model.Dev{}, id).Error
}
