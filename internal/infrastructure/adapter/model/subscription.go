package model

import "time"

// Subscription is the database model for access grants. The unique index on
// TransactionID enforces one activation per transaction at the storage layer,
// backing up the engine's idempotency check.
type Subscription struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	UserID        uint64    `gorm:"not null;index"`
	TransactionID uint64    `gorm:"uniqueIndex;not null"`
	PlanCode      string    `gorm:"not null;size:100"`
	Status        string    `gorm:"not null;size:50;index"`
	StartsAt      time.Time `gorm:"not null"`
	EndsAt        time.Time `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"not null"`

	User        *User        `gorm:"foreignKey:UserID;references:ID"`
	Transaction *Transaction `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName specifies the table name for Subscription
func (Subscription) TableName() string {
	return "subscriptions"
}
