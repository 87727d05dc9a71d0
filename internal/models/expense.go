package models

import "time"

// Expense is a single spending record owned by one user.
// Date is stored as "YYYY-MM-DD" text so range filters and ordering
// work with plain string comparison.
type Expense struct {
	ID         uint    `gorm:"primaryKey"`
	UserID     uint    `gorm:"index;not null"`
	Title      string  `gorm:"size:128;not null"`
	Price      float64 `gorm:"not null"`
	Date       string  `gorm:"size:10;index;not null"`
	Category   string  `gorm:"size:64"` // legacy free-text category
	CategoryID *uint   `gorm:"index"`   // weak reference, validated at write time only
	CreatedAt  time.Time
}
