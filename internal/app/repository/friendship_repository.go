package repository

import (
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/pkg/logger"
	"gorm.io/gorm"
)

type FriendshipRepository interface {
	Create(friendship *model.Friendship) error
	FindByUserID(userID uint) ([]model.Friendship, error)
	FindByPair(userID, friendID uint) (*model.Friendship, error)
	Update(friendship *model.Friendship) error
	Delete(userID, friendID uint) error
}

type friendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) Create(friendship *model.Friendship) error {
	logger.Debug("Creating friendship in database", map[string]interface{}{
		"user_id":   friendship.UserID,
		"friend_id": friendship.FriendID,
		"status":    friendship.Status,
	})

	if err := r.db.Create(friendship).Error; err != nil {
		logger.Error("Failed to create friendship in database", err, map[string]interface{}{
			"user_id":   friendship.UserID,
			"friend_id": friendship.FriendID,
		})
		return err
	}
	return nil
}

func (r *friendshipRepository) FindByUserID(userID uint) ([]model.Friendship, error) {
	var friendships []model.Friendship
	err := r.db.Where("user_id = ?", userID).
		Preload("Friend").
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		logger.Error("Failed to find friendships by user ID", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return friendships, nil
}

// FindByPair looks up the directional pair (user -> friend).
func (r *friendshipRepository) FindByPair(userID, friendID uint) (*model.Friendship, error) {
	var friendship model.Friendship
	err := r.db.Where("user_id = ? AND friend_id = ?", userID, friendID).First(&friendship).Error
	if err != nil {
		return nil, err
	}
	return &friendship, nil
}

func (r *friendshipRepository) Update(friendship *model.Friendship) error {
	logger.Debug("Updating friendship in database", map[string]interface{}{
		"friendship_id": friendship.ID,
		"status":        friendship.Status,
	})

	if err := r.db.Save(friendship).Error; err != nil {
		logger.Error("Failed to update friendship in database", err, map[string]interface{}{
			"friendship_id": friendship.ID,
		})
		return err
	}
	return nil
}

func (r *friendshipRepository) Delete(userID, friendID uint) error {
	logger.Debug("Deleting friendship from database", map[string]interface{}{
		"user_id":   userID,
		"friend_id": friendID,
	})

	if err := r.db.Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&model.Friendship{}).Error; err != nil {
		logger.Error("Failed to delete friendship from database", err, map[string]interface{}{
			"user_id":   userID,
			"friend_id": friendID,
		})
		return err
	}
	return nil
}
