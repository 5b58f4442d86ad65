package model

import "time"

type OwnershipType string
type DownloadStatus string

const (
	OwnershipRented    OwnershipType = "rented"
	OwnershipWishlist  OwnershipType = "wishlist"
	OwnershipPurchased OwnershipType = "purchased"

	DownloadNone       DownloadStatus = "not_downloaded"
	DownloadInProgress DownloadStatus = "downloading"
	DownloadInstalled  DownloadStatus = "installed"
)

// LibraryEntry links a user to a game they own, rent, or wishlist.
// One entry per (user, game); rows are hard-deleted so a re-add never
// collides with a tombstone.
type LibraryEntry struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `gorm:"not null;index:idx_library_user_game,unique" json:"user_id"`
	GameID         uint           `gorm:"not null;index:idx_library_user_game,unique" json:"game_id"`
	HoursPlayed    float64        `gorm:"default:0" json:"hours_played"`
	Ownership      OwnershipType  `gorm:"type:varchar(20);not null" json:"ownership"`
	DownloadStatus DownloadStatus `gorm:"type:varchar(20);default:'not_downloaded'" json:"download_status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Game Game `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"game,omitempty"`
}

func (LibraryEntry) TableName() string {
	return "library_entries"
}
