package models

import "time"

// Link maps a short code to a destination URL.
// ShortCode is globally unique; Clicks is only ever incremented by the
// redirect pipeline or reset explicitly by the owner.
type Link struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ShortCode     string `gorm:"uniqueIndex;not null" json:"short_code"`
	LongURL       string `gorm:"not null" json:"long_url"`
	UserID        string `gorm:"index;not null" json:"user_id"`
	Clicks        int64  `gorm:"default:0" json:"clicks"`
	OnLeaderboard bool   `gorm:"default:false" json:"on_leaderboard"`
	// CustomSlug records whether the code was user-chosen. Uniqueness
	// conflicts are only reported to the user for custom slugs; random
	// ones are silently regenerated.
	CustomSlug bool `gorm:"default:false" json:"custom_slug"`
	// Password is a bcrypt hash when the owner protected the link.
	Password *string `json:"-"`
}
