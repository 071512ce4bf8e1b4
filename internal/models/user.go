package models

import "time"

// User is created and refreshed by the OAuth callback; the rest of the app
// only ever reads it to scope link ownership.
type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// SlackID is the identity provider's subject for this user.
	SlackID   string  `gorm:"uniqueIndex;not null" json:"slackId"`
	Email     string  `gorm:"uniqueIndex" json:"email"`
	Name      string  `json:"name"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`

	Links []Link `gorm:"foreignKey:UserID" json:"-"`
}

// DisplayName prefers "First Last", falling back to name, then email.
func (u *User) DisplayName() string {
	if u.FirstName != nil && u.LastName != nil && *u.FirstName != "" && *u.LastName != "" {
		return *u.FirstName + " " + *u.LastName
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
