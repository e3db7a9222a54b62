package model

import "time"

// User is the database model for the minimal identity records
type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Username  string    `gorm:"uniqueIndex;not null;size:100"`
	Email     string    `gorm:"uniqueIndex;not null;size:255"`
	Password  string    `gorm:"not null;size:255"`
	Name      string    `gorm:"size:255"`
	Document  string    `gorm:"size:20"`
	Phone     string    `gorm:"size:20"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
