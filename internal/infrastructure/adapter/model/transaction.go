package model

import (
	"time"

	"gorm.io/datatypes"
)

// Transaction is the database model for payment transactions. Rows are never
// deleted; they are the financial audit trail.
type Transaction struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	GatewayID  string `gorm:"uniqueIndex;not null;size:255"`
	ExternalID string `gorm:"uniqueIndex;not null;size:255"`
	Amount     int64  `gorm:"not null"` // minor currency units
	Status     string `gorm:"not null;size:50;index"`
	Method     string `gorm:"not null;size:50"`
	PlanCode   string `gorm:"not null;size:100"`
	PlanTitle  string `gorm:"not null;size:255"`

	// Buyer snapshot, immutable after creation
	BuyerName     string `gorm:"not null;size:255"`
	BuyerEmail    string `gorm:"not null;size:255"`
	BuyerDocument string `gorm:"not null;size:20"`
	BuyerPhone    string `gorm:"not null;size:20"`

	// Gateway-specific payment payload (PIX code, QR image, URL)
	PaymentData datatypes.JSON

	UserID    *uint64   `gorm:"index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	User *User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
