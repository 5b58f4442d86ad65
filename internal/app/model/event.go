package model

import (
	"time"

	"gorm.io/gorm"
)

type EventType string

const (
	EventSale        EventType = "sale"
	EventGiveaway    EventType = "giveaway"
	EventFreeWeekend EventType = "free_weekend"
)

// Event is a time-boxed promotion for a game. EndDate is always strictly
// after StartDate.
type Event struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	GameID    uint           `gorm:"not null;index" json:"game_id"`
	Type      EventType      `gorm:"type:varchar(20);not null" json:"type"`
	StartDate time.Time      `gorm:"not null" json:"start_date"`
	EndDate   time.Time      `gorm:"not null" json:"end_date"`
	Active    bool           `gorm:"default:true" json:"active"` // cleared by the scheduler once EndDate passes
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Game Game `gorm:"foreignKey:GameID" json:"-"`
}

func (Event) TableName() string {
	return "events"
}
