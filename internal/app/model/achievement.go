package model

import (
	"time"

	"gorm.io/gorm"
)

type Achievement struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	GameID    uint           `gorm:"not null;index" json:"game_id"`
	Title     string         `gorm:"not null" json:"title"`
	Icon      string         `json:"icon"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Game Game `gorm:"foreignKey:GameID" json:"-"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement records an achievement unlocked by a user.
type UserAchievement struct {
	UserID        uint      `gorm:"primaryKey;index" json:"user_id"`
	AchievementID uint      `gorm:"primaryKey;index" json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`

	User        User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Achievement Achievement `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"achievement,omitempty"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
