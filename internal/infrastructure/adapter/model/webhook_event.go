package model

import (
	"time"
)

// WebhookEvent is the database model for inbound gateway notifications. The
// raw payload is preserved verbatim for replay and audit, stored as bytes so
// a malformed body is kept exactly as received. Gateways may send the same
// notification more than once, so there is no unique index on the gateway id.
type WebhookEvent struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	Provider   string    `gorm:"not null;size:50;index"`
	EventType  string    `gorm:"not null;size:100"`
	GatewayID  string    `gorm:"size:255;index"`
	RawPayload []byte    `gorm:"type:bytea;not null"`
	Processed  bool      `gorm:"not null;default:false;index"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for WebhookEvent
func (WebhookEvent) TableName() string {
	return "webhook_events"
}
