package models

import "time"

// Category is a per-user expense category. Name is unique per user.
// Expenses keep a weak reference to it: deleting a category never
// touches the expenses that point at it.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index:idx_categories_user_name,unique;not null"`
	Name        string `gorm:"size:64;index:idx_categories_user_name,unique;not null"`
	Description string `gorm:"size:255"`
	Color       string `gorm:"size:16"`
	Icon        string `gorm:"size:32"`
	CreatedAt   time.Time
}
