package models

import "time"

// User roles. Anything else is rejected at the manager boundary.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an application account.
type User struct {
	ID           uint    `gorm:"primaryKey"`
	Username     string  `gorm:"size:64;uniqueIndex;not null"`
	Email        *string `gorm:"size:128;uniqueIndex"` // optional, used by the auth subsystem only
	PasswordHash string  `gorm:"size:255;not null"`
	Role         string  `gorm:"size:16;not null;default:user"`
	IsActive     bool    `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	FailedAttempts int        `gorm:"not null;default:0"` // consecutive failed logins
	LockedUntil    *time.Time `gorm:"index"`              // lockout deadline, nil when unlocked
}
