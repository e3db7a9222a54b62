package database

import (
	"errors"
	"fmt"
	"strings"

	domainErr "github.com/perna2k6/pernateste/internal/domain/error"
	"gorm.io/gorm"
)

// EntityType represents the type of entity for error mapping
type EntityType string

const (
	// EntityTypeUser represents the user entity
	EntityTypeUser EntityType = "user"
	// EntityTypeTransaction represents the transaction entity
	EntityTypeTransaction EntityType = "transaction"
	// EntityTypeSubscription represents the subscription entity
	EntityTypeSubscription EntityType = "subscription"
	// EntityTypeWebhookEvent represents the webhook event entity
	EntityTypeWebhookEvent EntityType = "webhook_event"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error to a domain error. Anything the storage
// layer cannot express as a more specific sentinel becomes ErrStorage so
// callers surface it as a server error instead of dropping the record.
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	errMsg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint"):
		if strings.Contains(errMsg, "transactions") {
			return domainErr.ErrDuplicateTransaction
		}
		if strings.Contains(errMsg, "users") {
			return domainErr.ErrDuplicateUser
		}
		return fmt.Errorf("%w: duplicate key during %s: %s", domainErr.ErrStorage, operation, err.Error())

	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "deadline exceeded"):
		return fmt.Errorf("%w: %s: %s", domainErr.ErrStorage, operation, err.Error())

	default:
		return fmt.Errorf("%w: %s: %s", domainErr.ErrStorage, operation, err.Error())
	}
}

// MapNotFoundError maps record-not-found to the entity-specific sentinel
func (m *ErrorMapper) MapNotFoundError(err error, entityType EntityType) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		switch entityType {
		case EntityTypeUser:
			return domainErr.ErrUserNotFound
		case EntityTypeTransaction:
			return domainErr.ErrTransactionNotFound
		case EntityTypeSubscription:
			return domainErr.ErrSubscriptionNotFound
		default:
			return fmt.Errorf("%w: %s not found", domainErr.ErrStorage, entityType)
		}
	}

	return m.MapError(err, string(entityType))
}
