package service

import (
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"gorm.io/gorm"
)

// DevUpdate is a field update set: nil means untouched.
type DevUpdate struct {
	Name    *string
	Type    *model.DevType
	Website *string
}

type DevService struct {
	devRepo *repository.DevRepository
	db      *gorm.DB
}

func NewDevService(devRepo *repository.DevRepository, gdb *gorm.DB) *DevService {
	return &DevService{devRepo: devRepo, db: gdb}
}

func (s *DevService) CreateDev(name string, devType model.DevType, website string) (*model.Dev, error) {
	var dev *model.Dev
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		free, err := keyFree(tx, &model.Dev{}, "dev_name", name, 0)
		if err != nil {
			return errors.Classify(err, "dev")
		}
		if !free {
			return errors.Conflict(errors.DevNameExists, "dev %q already exists", name)
		}

		created := &model.Dev{Name: name, Type: devType, Website: website}
		if err := tx.Create(created).Error; err != nil {
			return errors.Classify(err, "dev")
		}
		dev = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dev, nil
}

func (s *DevService) GetDevByID(id uint) (*model.Dev, error) {
	dev, err := s.devRepo.FindByID(id)
	if err != nil {
		return nil, errors.Classify(err, "dev")
	}
	return dev, nil
}

func (s *DevService) ListDevs(devType *model.DevType) ([]model.Dev, error) {
	devs, err := s.devRepo.FindAll(devType)
	if err != nil {
		return nil, errors.Classify(err, "dev")
	}
	return devs, nil
}

// UpdateDev edits a studio. The name check excludes the dev's own row, so
// writing back the current name succeeds.
func (s *DevService) UpdateDev(id uint, update DevUpdate) (*model.Dev, error) {
	var updated *model.Dev
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		var dev model.Dev
		if err := tx.First(&dev, id).Error; err != nil {
			return errors.Classify(err, "dev")
		}

		if update.Name != nil {
			free, err := keyFree(tx, &model.Dev{}, "dev_name", *update.Name, dev.ID)
			if err != nil {
				return errors.Classify(err, "dev")
			}
			if !free {
				return errors.Conflict(errors.DevNameExists, "dev %q already exists", *update.Name)
			}
			dev.Name = *update.Name
		}
		if update.Type != nil {
			dev.Type = *update.Type
		}
		if update.Website != nil {
			dev.Website = *update.Website
		}

		if err := tx.Save(&dev).Error; err != nil {
			return errors.Classify(err, "dev")
		}
		updated = &dev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *DevService) DeleteDev(id uint) error {
	if _, err := s.devRepo.FindByID(id); err != nil {
		return errors.Classify(err, "dev")
	}
	if err := s.devRepo.Delete(id); err != nil {
		return errors.Classify(err, "dev")
	}
	return nil
}
