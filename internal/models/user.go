package models

import "time"

// User represents application user.
type User struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Email     string    `gorm:"size:128;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	LastLogin time.Time `json:"last_login"`

	// PasswordHash is stored at sign-up but only checked when the
	// credential-check seam is enabled (see session.WithCredentialCheck).
	PasswordHash string `gorm:"size:255" json:"-"`
}
