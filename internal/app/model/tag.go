package model

import (
	"time"

	"gorm.io/gorm"
)

// Tag is a genre/feature label that can be attached to games.
type Tag struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"column:tag_name;type:varchar(50);uniqueIndex;not null" json:"tag_name"`
	Category  string         `gorm:"type:varchar(20)" json:"category"` // e.g. "genre", "feature"
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}

// GameTag is the many-to-many junction between games and tags.
type GameTag struct {
	GameID    uint      `gorm:"primaryKey;index" json:"game_id"`
	TagID     uint      `gorm:"primaryKey;index" json:"tag_id"`
	Game      Game      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Tag       Tag       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (GameTag) TableName() string {
	return "game_tags"
}
