package models

import "time"

// Audit actions recorded on the auth path.
const (
	ActionLogin          = "login"
	ActionLogout         = "logout"
	ActionFailedLogin    = "failed_login"
	ActionPasswordChange = "password_change"
	ActionPasswordReset  = "password_reset"
)

// AccessLog is an append-only audit row for authentication events.
// Rows are never updated or deleted.
type AccessLog struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    *uint  `gorm:"index"`             // nil when the attempted user does not exist
	UserRef   string `gorm:"size:128"`          // username or email as presented by the caller
	Action    string `gorm:"size:32;index;not null"`
	Success   bool   `gorm:"not null"`
	Reason    string `gorm:"size:255"`
	CreatedAt time.Time
}
