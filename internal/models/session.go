package models

import "time"

// Session stores user login sessions. Only the SHA-256 of the opaque
// token is persisted; the raw token is returned once to the caller.
type Session struct {
	ID          string    `gorm:"primaryKey;size:64"` // UUID
	UserID      uint      `gorm:"index;not null"`
	TokenSHA256 string    `gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt   time.Time `gorm:"index;not null"`
	CreatedAt   time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
