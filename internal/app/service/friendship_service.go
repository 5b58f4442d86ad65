package service

import (
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/app/repository"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/jwhan/playgrid-backend/internal/realtime"
	"github.com/jwhan/playgrid-backend/pkg/logger"
	"gorm.io/gorm"
)

type FriendshipService interface {
	SendRequest(userID, friendID uint) (*model.Friendship, error)
	AcceptRequest(userID, friendID uint) (*model.Friendship, error)
	BlockUser(userID, friendID uint) (*model.Friendship, error)
	ListFriendships(userID uint) ([]model.Friendship, error)
	RemoveFriendship(userID, friendID uint) error
}

type friendshipService struct {
	friendshipRepo repository.FriendshipRepository
	db             *gorm.DB
	hub            *realtime.Hub
}

func NewFriendshipService(friendshipRepo repository.FriendshipRepository, gdb *gorm.DB, hub *realtime.Hub) FriendshipService {
	return &friendshipService{
		friendshipRepo: friendshipRepo,
		db:             gdb,
		hub:            hub,
	}
}

// SendRequest creates a pending friendship from userID to friendID. The
// self-reference check runs first: befriending yourself is a bad request
// even when every other check would also fail.
func (s *friendshipService) SendRequest(userID, friendID uint) (*model.Friendship, error) {
	logger.Info("Sending friend request", map[string]interface{}{
		"user_id":   userID,
		"friend_id": friendID,
	})

	if !notSelfReference(userID, friendID) {
		return nil, errors.BadRequest(errors.FriendshipSelf, "user %d cannot befriend themselves", userID)
	}

	var friendship *model.Friendship
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		free, err := pairFree(tx, &model.Friendship{}, "user_id", userID, "friend_id", friendID)
		if err != nil {
			return errors.Classify(err, "friendship")
		}
		if !free {
			return errors.Conflict(errors.FriendshipExists, "friendship from %d to %d already exists", userID, friendID)
		}

		exists, err := recordExists(tx, &model.User{}, userID)
		if err != nil {
			return errors.Classify(err, "user")
		}
		if !exists {
			return errors.NotFound(errors.ResourceNotFound, "user %d not found", userID)
		}

		exists, err = recordExists(tx, &model.User{}, friendID)
		if err != nil {
			return errors.Classify(err, "user")
		}
		if !exists {
			return errors.NotFound(errors.ResourceNotFound, "user %d not found", friendID)
		}

		created := &model.Friendship{
			UserID:   userID,
			FriendID: friendID,
			Status:   model.FriendshipPending,
		}
		if err := tx.Create(created).Error; err != nil {
			return errors.Classify(err, "friendship")
		}
		friendship = created
		return nil
	})
	if err != nil {
		logger.Warn("Friend request failed", map[string]interface{}{
			"user_id":   userID,
			"friend_id": friendID,
			"error":     err.Error(),
		})
		return nil, err
	}

	if s.hub != nil {
		s.hub.Notify(friendID, realtime.Notification{
			Type:   realtime.NotifFriendRequest,
			UserID: userID,
		})
	}
	return friendship, nil
}

// AcceptRequest marks the pending request from friendID to userID accepted.
func (s *friendshipService) AcceptRequest(userID, friendID uint) (*model.Friendship, error) {
	var friendship *model.Friendship
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		var existing model.Friendship
		err := tx.Where("user_id = ? AND friend_id = ?", friendID, userID).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NotFound(errors.FriendshipNotFound, "no friend request from %d to %d", friendID, userID)
			}
			return errors.Classify(err, "friendship")
		}
		if existing.Status != model.FriendshipPending {
			return errors.Conflict(errors.FriendshipExists, "friendship from %d to %d is already %s", friendID, userID, existing.Status)
		}

		existing.Status = model.FriendshipAccepted
		if err := tx.Save(&existing).Error; err != nil {
			return errors.Classify(err, "friendship")
		}
		friendship = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Notify(friendID, realtime.Notification{
			Type:   realtime.NotifFriendAccepted,
			UserID: userID,
		})
	}
	return friendship, nil
}

// BlockUser sets the relation from userID to friendID to blocked, creating
// it if it does not exist yet.
func (s *friendshipService) BlockUser(userID, friendID uint) (*model.Friendship, error) {
	if !notSelfReference(userID, friendID) {
		return nil, errors.BadRequest(errors.FriendshipSelf, "user %d cannot block themselves", userID)
	}

	var friendship *model.Friendship
	err := db.RunAtomically(s.db, func(tx *gorm.DB) error {
		var existing model.Friendship
		err := tx.Where("user_id = ? AND friend_id = ?", userID, friendID).First(&existing).Error
		if err == nil {
			existing.Status = model.FriendshipBlocked
			if err := tx.Save(&existing).Error; err != nil {
				return errors.Classify(err, "friendship")
			}
			friendship = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Classify(err, "friendship")
		}

		exists, err := recordExists(tx, &model.User{}, friendID)
		if err != nil {
			return errors.Classify(err, "user")
		}
		if !exists {
			return errors.NotFound(errors.ResourceNotFound, "user %d not found", friendID)
		}

		created := &model.Friendship{
			UserID:   userID,
			FriendID: friendID,
			Status:   model.FriendshipBlocked,
		}
		if err := tx.Create(created).Error; err != nil {
			return errors.Classify(err, "friendship")
		}
		friendship = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return friendship, nil
}

func (s *friendshipService) ListFriendships(userID uint) ([]model.Friendship, error) {
	friendships, err := s.friendshipRepo.FindByUserID(userID)
	if err != nil {
		return nil, errors.Classify(err, "friendship")
	}
	return friendships, nil
}

func (s *friendshipService) RemoveFriendship(userID, friendID uint) error {
	return db.RunAtomically(s.db, func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND friend_id = ?", userID, friendID).Delete(&model.Friendship{})
		if result.Error != nil {
			return errors.Classify(result.Error, "friendship")
		}
		if result.RowsAffected == 0 {
			return errors.NotFound(errors.FriendshipNotFound, "no friendship from %d to %d", userID, friendID)
		}
		return nil
	})
}
