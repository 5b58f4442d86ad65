package service

import (
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/jwhan/playgrid-backend/pkg/logger"
	"gorm.io/gorm"
)

// LibraryUpdate is a field update set: nil means untouched.
type LibraryUpdate struct {
	HoursPlayed    *float64
	Ownership      *model.OwnershipType
	DownloadStatus *model.DownloadStatus
}

type LibraryService interface {
	AddToLibrary(userID, gameID uint, ownership model.OwnershipType) (*model.LibraryEntry, error)
	GetLibrary(userID uint) ([]model.LibraryEntry, error)
	UpdateEntry(userID, gameID uint, update LibraryUpdate) (*model.LibraryEntry, error)
	RemoveFromLibrary(userID, gameID uint) error
}

type libraryService struct {
	libraryRepo repository.LibraryRepository
	db          *gorm.DB
}

func NewLibraryService(libraryRepo repository.LibraryRepository, gdb *gorm.DB) LibraryService {
	return &libraryService{
		libraryRepo: libraryRepo,
		db:          gdb,
	}
}

// AddToLibrary creates a library entry for (user, game). The duplicate-pair
// check runs before the existence checks, so adding an already-owned game
// reports Conflict even when other arguments would also fail.
func (s *libraryService) AddToLibrary(userID, gameID uint, ownership model.OwnershipType) (*model.LibraryEntry, error) {
	logger.Info("Adding game to library", map[string]interface{}{
		"user_id":   userID,
		"game_id":   gameID,
		"ownership": ownership,
	})

	var entry *model.LibraryEntry
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		free, err := pairFree(tx, &model.LibraryEntry{}, "user_id", userID, "game_id", gameID)
		if err != nil {
			return errors.Classify(err, "library entry")
		}
		if !free {
			return errors.Conflict(errors.LibraryEntryExists, "user %d already has game %d in their library", userID, gameID)
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

		created := &model.LibraryEntry{
			UserID:         userID,
			GameID:         gameID,
			Ownership:      ownership,
			DownloadStatus: model.DownloadNone,
		}
		if err := tx.Create(created).Error; err != nil {
			return errors.Classify(err, "library entry")
		}
		entry = created
		return nil
	})
	if err != nil {
		logger.Warn("Failed to add game to library", map[string]interface{}{
			"user_id": userID,
			"game_id": gameID,
			"error":   err.Error(),
		})
		return nil, err
	}
	return entry, nil
}

func (s *libraryService) GetLibrary(userID uint) ([]model.LibraryEntry, error) {
	entries, err := s.libraryRepo.FindByUserID(userID)
	if err != nil {
		return nil, errors.Classify(err, "library entry")
	}
	return entries, nil
}

// UpdateEntry applies a partial update to a library entry. Untouched fields
// keep their stored values and are not re-validated.
func (s *libraryService) UpdateEntry(userID, gameID uint, update LibraryUpdate) (*model.LibraryEntry, error) {
	var updated *model.LibraryEntry
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		var entry model.LibraryEntry
		err := tx.Where("user_id = ? AND game_id = ?", userID, gameID).First(&entry).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NotFound(errors.LibraryEntryNotFound, "user %d has no library entry for game %d", userID, gameID)
			}
			return errors.Classify(err, "library entry")
		}

		if update.HoursPlayed != nil {
			entry.HoursPlayed = *update.HoursPlayed
		}
		if update.Ownership != nil {
			entry.Ownership = *update.Ownership
		}
		if update.DownloadStatus != nil {
			entry.DownloadStatus = *update.DownloadStatus
		}

		if err := tx.Save(&entry).Error; err != nil {
			return errors.Classify(err, "library entry")
		}
		updated = &entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *libraryService) RemoveFromLibrary(userID, gameID uint) error {
	logger.Info("Removing game from library", map[string]interface{}{
		"user_id": userID,
		"game_id": gameID,
	})

	return db.RunAtomically(s.db, func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND game_id = ?", userID, gameID).Delete(&model.LibraryEntry{})
		if result.Error != nil {
			return errors.Classify(result.Error, "library entry")
		}
		if result.RowsAffected == 0 {
			return errors.NotFound(errors.LibraryEntryNotFound, "user %d has no library entry for game %d", userID, gameID)
		}
		return nil
	})
}
