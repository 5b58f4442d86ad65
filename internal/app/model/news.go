package model

import (
	"time"

	"gorm.io/gorm"
)

// GameNews is an announcement attached to a game.
type GameNews struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	GameID      uint           `gorm:"not null;index" json:"game_id"`
	Title       string         `gorm:"not null" json:"title"`
	Content     string         `gorm:"type:text" json:"content"`
	PublishedAt time.Time      `json:"published_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Game Game `gorm:"foreignKey:GameID" json:"-"`
}

func (GameNews) TableName() string {
	return "game_news"
}
