package repository

import (
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/pkg/logger"
	"gorm.io/gorm"
)

type LibraryRepository interface {
	Create(entry *model.LibraryEntry) error
	FindByUserID(userID uint) ([]model.LibraryEntry, error)
	FindByUserAndGame(userID, gameID uint) (*model.LibraryEntry, error)
	Update(entry *model.LibraryEntry) error
	Delete(userID, gameID uint) error
}

type libraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) LibraryRepository {
	return &libraryRepository{db: db}
}

func (r *libraryRepository) Create(entry *model.LibraryEntry) error {
	logger.Debug("Creating library entry in database", map[string]interface{}{
		"user_id":   entry.UserID,
		"game_id":   entry.GameID,
		"ownership": entry.Ownership,
	})

	if err := r.db.Create(entry).Error; err != nil {
		logger.Error("Failed to create library entry in database", err, map[string]interface{}{
			"user_id": entry.UserID,
			"game_id": entry.GameID,
		})
		return err
	}
	return nil
}

func (r *libraryRepository) FindByUserID(userID uint) ([]model.LibraryEntry, error) {
	var entries []model.LibraryEntry
	err := r.db.Where("user_id = ?", userID).
		Preload("Game").
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		logger.Error("Failed to find library entries by user ID", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return entries, nil
}

func (r *libraryRepository) FindByUserAndGame(userID, gameID uint) (*model.LibraryEntry, error) {
	var entry model.LibraryEntry
	err := r.db.Where("user_id = ? AND game_id = ?", userID, gameID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *libraryRepository) Update(entry *model.LibraryEntry) error {
	logger.Debug("Updating library entry in database", map[string]interface{}{
		"entry_id":     entry.ID,
		"hours_played": entry.HoursPlayed,
	})

	if err := r.db.Save(entry).Error; err != nil {
		logger.Error("Failed to update library entry in database", err, map[string]interface{}{
			"entry_id": entry.ID,
		})
		return err
	}
	return nil
}

func (r *libraryRepository) Delete(userID, gameID uint) error {
	logger.Debug("Deleting library entry from database", map[string]interface{}{
		"user_id": userID,
		"game_id": gameID,
	})

	if err := r.db.Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&model.LibraryEntry{}).Error; err != nil {
		logger.Error("Failed to delete library entry from database", err, map[string]interface{}{
			"user_id": userID,
			"game_id": gameID,
		})
		return err
	}
	return nil
}
