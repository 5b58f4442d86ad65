package model

import "time"

// GameSave holds a user's save blob for a game. One save per (user, game);
// LastUpdated is refreshed on every data change.
type GameSave struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_save_user_game,unique" json:"user_id"`
	GameID      uint      `gorm:"not null;index:idx_save_user_game,unique" json:"game_id"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `gorm:"column:last_updated;autoUpdateTime" json:"last_updated"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Game Game `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (GameSave) TableName() string {
	return "game_saves"
}
