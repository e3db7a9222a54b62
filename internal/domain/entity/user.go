package entity

import "time"

// User is the minimal identity holder subscriptions key on. Authentication is
// out of scope; transactions may reference a user or carry none at all.
type User struct {
	ID        uint64
	Username  string
	Email     string
	Password  string // stored hash, never the raw value
	Name      string
	Document  string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
