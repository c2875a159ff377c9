package models

import (
	"strings"
	"time"
)

type User struct {
	BaseUUIDModel
	Email    string  `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Password string  `gorm:"type:text;not null"             json:"-"`
	Name     *string `gorm:"type:text"                      json:"name"`

	// Relationships
	Preference *Preference    `gorm:"foreignKey:UserID" json:"preference,omitempty"`
	Presets    []CustomPreset `gorm:"foreignKey:UserID" json:"presets,omitempty"`
}

// UserProfile is the public shape of a user, with the credential stripped.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// NormalizeEmail lowercases and trims an email address so lookups and the
// unique index agree on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
