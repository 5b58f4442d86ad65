package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Age          int            `json:"age"`
	Region       string         `gorm:"type:varchar(50)" json:"region"`
	Role         UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Library      []LibraryEntry    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"library,omitempty"`
	Friendships  []Friendship      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"friendships,omitempty"`
	Reviews      []Review          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Saves        []GameSave        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"saves,omitempty"`
	Achievements []UserAchievement `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"achievements,omitempty"`
}

func (User) TableName() string {
	return "users"
}
