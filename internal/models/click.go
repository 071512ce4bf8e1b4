package models

import "time"

// LinkClick is one immutable record of a redirect traversal. Rows are only
// ever inserted; retention is handled outside this service.
type LinkClick struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LinkID    string    `gorm:"index;not null" json:"link_id"`
	IPAddress string    `json:"ip_address"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	Device    string    `json:"device"`
	OS        string    `json:"os"`
	Browser   string    `json:"browser"`
	UserAgent string    `json:"user_agent"`
	Referrer  string    `json:"referrer"`
	ClickedAt time.Time `gorm:"index" json:"clicked_at"`
}
