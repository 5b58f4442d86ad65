package model

import (
	"time"

	"gorm.io/gorm"
)

type DevType string

const (
	DevTypeDeveloper DevType = "developer"
	DevTypePublisher DevType = "publisher"
	DevTypeBoth      DevType = "both"
)

// Dev is a studio acting as developer, publisher, or both.
type Dev struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"column:dev_name;type:varchar(100);uniqueIndex;not null" json:"dev_name"`
	Type      DevType        `gorm:"column:dev_type;type:varchar(20);not null" json:"dev_type"`
	Website   string         `json:"website"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Dev) TableName() string {
	return "devs"
}

// GameDev is the many-to-many junction between games and devs.
type GameDev struct {
	GameID    uint      `gorm:"primaryKey;index" json:"game_id"`
	DevID     uint      `gorm:"primaryKey;index" json:"dev_id"`
	Game      Game      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Dev       Dev       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"dev,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (GameDev) TableName() string {
	return "game_devs"
}
