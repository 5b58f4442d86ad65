package model

import (
	"time"

	"gorm.io/gorm"
)

type Game struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"uniqueIndex;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	ReleaseDate time.Time      `json:"release_date"`
	CoverURL    string         `json:"cover_url"`
	BaseGameID  *uint          `gorm:"index" json:"base_game_id,omitempty"` // set for DLC/expansions
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	BaseGame     *Game         `gorm:"foreignKey:BaseGameID" json:"base_game,omitempty"`
	Achievements []Achievement `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"achievements,omitempty"`
	TagLinks     []GameTag     `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"tag_links,omitempty"`
	DevLinks     []GameDev     `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"dev_links,omitempty"`
	News         []GameNews    `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"news,omitempty"`
	Events       []Event       `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"events,omitempty"`
}

func (Game) TableName() string {
	return "games"
}
