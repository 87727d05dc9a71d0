package models

import "time"

// Transaction types.
const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

// Transaction is a peer-to-peer credit/debit between two distinct users.
// ContactID is a weak reference to a contact owned by the sender.
type Transaction struct {
	ID          uint    `gorm:"primaryKey"`
	FromUserID  uint    `gorm:"index;not null"`
	ToUserID    uint    `gorm:"index;not null"`
	Type        string  `gorm:"size:16;not null"`
	Amount      float64 `gorm:"not null"`
	Date        string  `gorm:"size:10;index;not null"`
	Description string  `gorm:"type:text"`
	ContactID   *uint   `gorm:"index"`
	CreatedAt   time.Time
}
