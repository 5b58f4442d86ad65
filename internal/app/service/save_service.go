package service

import (
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"gorm.io/gorm"
)

type SaveService struct {
	saveRepo *repository.SaveRepository
	db       *gorm.DB
}

func NewSaveService(saveRepo *repository.SaveRepository, gdb *gorm.DB) *SaveService {
	return &SaveService{saveRepo: saveRepo, db: gdb}
}

// CreateSave writes the first save for (user, game). One save per pair;
// later writes go through UpdateSave.
func (s *SaveService) CreateSave(userID, gameID uint, data []byte) (*model.GameSave, error) {
	var save *model.GameSave
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		free, err := pairFree(tx, &model.GameSave{}, "user_id", userID, "game_id", gameID)
		if err != nil {
			return errors.Classify(err, "game save")
		}
		if !free {
			return errors.Conflict(errors.SaveExists, "user %d already has a save for game %d", userID, gameID)
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

		created := &model.GameSave{
			UserID: userID,
			GameID: gameID,
			Data:   data,
		}
		if err := tx.Create(created).Error; err != nil {
			return errors.Classify(err, "game save")
		}
		save = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return save, nil
}

func (s *SaveService) GetSave(userID, gameID uint) (*model.GameSave, error) {
	save, err := s.saveRepo.FindByUserAndGame(userID, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound(errors.SaveNotFound, "user %d has no save for game %d", userID, gameID)
		}
		return nil, errors.Classify(err, "game save")
	}
	return save, nil
}

// ListSaves returns a user's saves without their data blobs.
func (s *SaveService) ListSaves(userID uint) ([]model.GameSave, error) {
	saves, err := s.saveRepo.FindByUserID(userID)
	if err != nil {
		return nil, errors.Classify(err, "game save")
	}
	return saves, nil
}

// UpdateSave replaces the save blob. LastUpdated refreshes on every write.
func (s *SaveService) UpdateSave(userID, gameID uint, data []byte) (*model.GameSave, error) {
	var updated *model.GameSave
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		var save model.GameSave
		err := tx.Where("user_id = ? AND game_id = ?", userID, gameID).First(&save).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NotFound(errors.SaveNotFound, "user %d has no save for game %d", userID, gameID)
			}
			return errors.Classify(err, "game save")
		}

		save.Data = data
		if err := tx.Save(&save).Error; err != nil {
			return errors.Classify(err, "game save")
		}
		updated = &save
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *SaveService) DeleteSave(userID, gameID uint) error {
	return db.RunAtomically(s.db, func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND game_id = ?", userID, gameID).Delete(&model.GameSave{})
		if result.Error != nil {
			return errors.Classify(result.Error, "game save")
		}
		if result.RowsAffected == 0 {
			return errors.NotFound(errors.SaveNotFound, "user %d has no save for game %d", userID, gameID)
		}
		return nil
	})
}
