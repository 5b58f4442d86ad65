package service

import (
	"time"

	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"gorm.io/gorm"
)

type AchievementService struct {
	achievementRepo *repository.AchievementRepository
	db              *gorm.DB
}

func NewAchievementService(achievementRepo *repository.AchievementRepository, gdb *gorm.DB) *AchievementService {
	return &AchievementService{achievementRepo: achievementRepo, db: gdb}
}

// CreateAchievement adds an achievement to an existing game.
func (s *AchievementService) CreateAchievement(gameID uint, title, icon string) (*model.Achievement, error) {
	var achievement *model.Achievement
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		exists, err := recordExists(tx, &model.Game{}, gameID)
		if err != nil {
			return errors.Classify(err, "game")
		}
		if !exists {
			return errors.NotFound(errors.GameNotFound, "game %d not found", gameID)
		}

		created := &model.Achievement{
			GameID: gameID,
			Title:  title,
			Icon:   icon,
		}
		if err := tx.Create(created).Error; err != nil {
			return errors.Classify(err, "achievement")
		}
		achievement = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return achievement, nil
}

func (s *AchievementService) GetAchievementByID(id uint) (*model.Achievement, error) {
	achievement, err := s.achievementRepo.FindByID(id)
	if err != nil {
		return nil, errors.Classify(err, "achievement")
	}
	return achievement, nil
}

func (s *AchievementService) ListGameAchievements(gameID uint) ([]model.Achievement, error) {
	achievements, err := s.achievementRepo.FindByGameID(gameID)
	if err != nil {
		return nil, errors.Classify(err, "achievement")
	}
	return achievements, nil
}

// Unlock records an achievement unlock for a user. Unlocking twice is a
// conflict; the duplicate check runs before the existence checks.
func (s *AchievementService) Unlock(userID, achievementID uint) (*model.UserAchievement, error) {
	var unlock *model.UserAchievement
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		free, err := pairFree(tx, &model.UserAchievement{}, "user_id", userID, "achievement_id", achievementID)
		if err != nil {
			return errors.Classify(err, "user achievement")
		}
		if !free {
			return errors.Conflict(errors.AchievementUnlocked, "user %d already unlocked achievement %d", userID, achievementID)
		}

		exists, err := recordExists(tx, &model.User{}, userID)
		if err != nil {
			return errors.Classify(err, "user")
		}
		if !exists {
			return errors.NotFound(errors.ResourceNotFound, "user %d not found", userID)
		}

		exists, err = recordExists(tx, &model.Achievement{}, achievementID)
		if err != nil {
			return errors.Classify(err, "achievement")
		}
		if !exists {
			return errors.NotFound(errors.AchievementNotFound, "achievement %d not found", achievementID)
		}

		created := &model.UserAchievement{
			UserID:        userID,
			AchievementID: achievementID,
			UnlockedAt:    time.Now(),
		}
		if err := tx.Create(created).Error; err != nil {
			return errors.Classify(err, "user achievement")
		}
		unlock = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return unlock, nil
}

// RemoveUnlock deletes a user's unlock record, e.g. after a progress reset.
func (s *AchievementService) RemoveUnlock(userID, achievementID uint) error {
	return db.RunAtomically(s.db, func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND achievement_id = ?", userID, achievementID).Delete(&model.UserAchievement{})
		if result.Error != nil {
			return errors.Classify(result.Error, "user achievement")
		}
		if result.RowsAffected == 0 {
			return errors.NotFound(errors.AchievementNotFound, "user %d has not unlocked achievement %d", userID, achievementID)
		}
		return nil
	})
}

func (s *AchievementService) ListUserUnlocks(userID uint) ([]model.UserAchievement, error) {
	unlocks, err := s.achievementRepo.FindUnlocksByUserID(userID)
	if err != nil {
		return nil, errors.Classify(err, "user achievement")
	}
	return unlocks, nil
}

func (s *AchievementService) DeleteAchievement(id uint) error {
	if _, err := s.achievementRepo.FindByID(id); err != nil {
		return errors.Classify(err, "achievement")
	}
	if err := s.achievementRepo.Delete(id); err != nil {
		return errors.Classify(err, "achievement")
	}
	return nil
}
