package models

import "time"

// Contact is a per-user address-book entry used to tag transactions.
// It is not itself a financial entity.
type Contact struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index:idx_contacts_user_name,unique;not null"`
	Name      string `gorm:"size:128;index:idx_contacts_user_name,unique;not null"`
	CreatedAt time.Time
}
