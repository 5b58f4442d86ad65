package service

import (
	"time"

	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/jwhan/playgrid-backend/pkg/logger"
	"github.com/jwhan/playgrid-backend/pkg/util"
	"gorm.io/gorm"
)

// UserInput carries the fields for a new user account. Password is the
// plaintext credential; it is hashed before anything touches storage.
type UserInput struct {
	Username string
	Email    string
	Password string
	Age      int
	Region   string
}

// UserUpdate is a field update set: nil means untouched.
type UserUpdate struct {
	Username *string
	Email    *string
	Age      *int
	Region   *string
}

// InitialSetupInput is the full aggregate for CreateUserWithInitialSetup:
// a new account plus its starting wishlist, outgoing friend requests, and
// pre-unlocked achievements.
type InitialSetupInput struct {
	User            UserInput
	WishlistGameIDs []uint
	FriendIDs       []uint
	AchievementIDs  []uint
}

type UserService interface {
	CreateUserWithInitialSetup(input InitialSetupInput) (*model.User, error)
	GetUserByID(id uint) (*model.User, error)
	ListUsers(limit, offset int) ([]model.User, error)
	UpdateUser(id uint, update UserUpdate) (*model.User, error)
	DeleteUser(id uint) error
}

type userService struct {
	userRepo repository.UserRepository
	db       *gorm.DB
}

func NewUserService(userRepo repository.UserRepository, gdb *gorm.DB) UserService {
	return &userService{
		userRepo: userRepo,
		db:       gdb,
	}
}

// CreateUserWithInitialSetup creates a user together with wishlist library
// entries, pending friendships, and achievement unlocks as one
// all-or-nothing unit of work. A single bad reference persists nothing.
func (s *userService) CreateUserWithInitialSetup(input InitialSetupInput) (*model.User, error) {
	logger.Info("Creating user with initial setup", map[string]interface{}{
		"username":          input.User.Username,
		"wishlist_count":    len(input.WishlistGameIDs),
		"friend_count":      len(input.FriendIDs),
		"achievement_count": len(input.AchievementIDs),
	})

	hash, err := util.HashPassword(input.User.Password)
	if err != nil {
		return nil, errors.Internal(err, "failed to hash password")
	}

	var created *model.User
	err = db.RunAtomically(s.db, func(tx *gorm.DB) error {
		free, err := keyFree(tx, &model.User{}, "username", input.User.Username, 0)
		if err != nil {
			return errors.Classify(err, "user")
		}
		if !free {
			return errors.Conflict(errors.AuthUsernameExists, "username %q is already taken", input.User.Username)
		}

		free, err = keyFree(tx, &model.User{}, "email", input.User.Email, 0)
		if err != nil {
			return errors.Classify(err, "user")
		}
		if !free {
			return errors.Conflict(errors.AuthEmailExists, "email %q is already registered", input.User.Email)
		}

		var games []model.Game
		if err := tx.Where("id IN ?", input.WishlistGameIDs).Find(&games).Error; err != nil {
			return errors.Classify(err, "game")
		}
		if len(games) != len(input.WishlistGameIDs) {
			found := make(map[uint]bool, len(games))
			for _, g := range games {
				found[g.ID] = true
			}
			return errors.NotFound(errors.GameNotFound, "games %v not found", missingIDs(input.WishlistGameIDs, found))
		}

		for _, friendID := range input.FriendIDs {
			exists, err := recordExists(tx, &model.User{}, friendID)
			if err != nil {
				return errors.Classify(err, "user")
			}
			if !exists {
				return errors.NotFound(errors.ResourceNotFound, "user %d not found", friendID)
			}
		}

		var achievements []model.Achievement
		if err := tx.Where("id IN ?", input.AchievementIDs).Find(&achievements).Error; err != nil {
			return errors.Classify(err, "achievement")
		}
		if len(achievements) != len(input.AchievementIDs) {
			found := make(map[uint]bool, len(achievements))
			for _, a := range achievements {
				found[a.ID] = true
			}
			return errors.NotFound(errors.AchievementNotFound, "achievements %v not found", missingIDs(input.AchievementIDs, found))
		}

		user := &model.User{
			Username:     input.User.Username,
			Email:        input.User.Email,
			PasswordHash: hash,
			Age:          input.User.Age,
			Region:       input.User.Region,
			Role:         model.RoleUser,
		}
		if err := tx.Create(user).Error; err != nil {
			return errors.Classify(err, "user")
		}

		for _, gameID := range input.WishlistGameIDs {
			entry := model.LibraryEntry{
				UserID:         user.ID,
				GameID:         gameID,
				Ownership:      model.OwnershipWishlist,
				DownloadStatus: model.DownloadNone,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return errors.Classify(err, "library entry")
			}
		}

		for _, friendID := range input.FriendIDs {
			friendship := model.Friendship{
				UserID:   user.ID,
				FriendID: friendID,
				Status:   model.FriendshipPending,
			}
			if err := tx.Create(&friendship).Error; err != nil {
				return errors.Classify(err, "friendship")
			}
		}

		for _, achievementID := range input.AchievementIDs {
			unlock := model.UserAchievement{
				UserID:        user.ID,
				AchievementID: achievementID,
				UnlockedAt:    time.Now(),
			}
			if err := tx.Create(&unlock).Error; err != nil {
				return errors.Classify(err, "user achievement")
			}
		}

		var loaded model.User
		err = tx.
			Preload("Library").
			Preload("Friendships").
			Preload("Achievements").
			First(&loaded, user.ID).Error
		if err != nil {
			return errors.Classify(err, "user")
		}
		created = &loaded
		return nil
	})
	if err != nil {
		logger.Warn("User setup failed, nothing persisted", map[string]interface{}{
			"username": input.User.Username,
			"error":    err.Error(),
		})
		return nil, err
	}

	logger.Info("User created with initial setup", map[string]interface{}{
		"user_id":           created.ID,
		"username":          created.Username,
		"wishlist_count":    len(created.Library),
		"friend_count":      len(created.Friendships),
		"achievement_count": len(created.Achievements),
	})
	return created, nil
}

func (s *userService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.Classify(err, "user")
	}
	return user, nil
}

func (s *userService) ListUsers(limit, offset int) ([]model.User, error) {
	users, err := s.userRepo.FindAll(limit, offset)
	if err != nil {
		return nil, errors.Classify(err, "user")
	}
	return users, nil
}

// UpdateUser re-validates only the touched fields. Username and email
// uniqueness checks exclude the user's own row, so writing back the current
// value succeeds.
func (s *userService) UpdateUser(id uint, update UserUpdate) (*model.User, error) {
	var updated *model.User
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, id).Error; err != nil {
			return errors.Classify(err, "user")
		}

		if update.Username != nil {
			free, err := keyFree(tx, &model.User{}, "username", *update.Username, user.ID)
			if err != nil {
				return errors.Classify(err, "user")
			}
			if !free {
				return errors.Conflict(errors.AuthUsernameExists, "username %q is already taken", *update.Username)
			}
			user.Username = *update.Username
		}

		if update.Email != nil {
			free, err := keyFree(tx, &model.User{}, "email", *update.Email, user.ID)
			if err != nil {
				return errors.Classify(err, "user")
			}
			if !free {
				return errors.Conflict(errors.AuthEmailExists, "email %q is already registered", *update.Email)
			}
			user.Email = *update.Email
		}

		if update.Age != nil {
			user.Age = *update.Age
		}
		if update.Region != nil {
			user.Region = *update.Region
		}

		if err := tx.Save(&user).Error; err != nil {
			return errors.Classify(err, "user")
		}
		updated = &user
		return nil
	})
	if err != nil {
		logger.Warn("User update failed", map[string]interface{}{
			"user_id": id,
			"error":   err.Error(),
		})
		return nil, err
	}

	logger.Info("User updated successfully", map[string]interface{}{
		"user_id": updated.ID,
	})
	return updated, nil
}

func (s *userService) DeleteUser(id uint) error {
	logger.Info("Deleting user", map[string]interface{}{
		"user_id": id,
	})

	if _, err := s.userRepo.FindByID(id); err != nil {
		return errors.Classify(err, "user")
	}
	if err := s.userRepo.Delete(id); err != nil {
		return errors.Classify(err, "user")
	}
	return nil
}
