package model

import "time"

// Review is a user's rating of a game. One review per (user, game).
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_review_user_game,unique" json:"user_id"`
	GameID    uint      `gorm:"not null;index:idx_review_user_game,unique" json:"game_id"`
	Rating    int       `gorm:"not null" json:"rating"` // 1-5
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
	Game Game `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
