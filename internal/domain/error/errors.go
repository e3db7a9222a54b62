package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation          = 4001
	CodeGatewayRejected     = 4002
	CodeInvalidPlan         = 4003
	CodeDuplicateUser       = 4005
	CodeTransactionNotFound = 4040
	CodeUserNotFound        = 4041
	CodeSubscriptionMissing = 4042

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeStorage            = 5001
	CodeGatewayUnreachable = 5020
)

// Base error types
var (
	// ErrValidation is returned when the checkout form fails field validation
	ErrValidation = errors.New("invalid checkout form")

	// ErrGatewayUnreachable is returned on transport failures reaching the payment gateway
	ErrGatewayUnreachable = errors.New("payment gateway unreachable")

	// ErrGatewayRejected is returned when the gateway reports a non-success response
	ErrGatewayRejected = errors.New("payment gateway rejected the request")

	// ErrTransactionNotFound is returned when a status update references an unknown gateway id
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned when trying to create a user that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrDuplicateTransaction is returned when a gateway id is persisted twice
	ErrDuplicateTransaction = errors.New("transaction with this gateway id already exists")

	// ErrSubscriptionNotFound is returned when a user has no current active subscription
	ErrSubscriptionNotFound = errors.New("no active subscription")

	// ErrStorage is returned when the store fails; a financial record must never be
	// dropped silently, so callers surface this as a server error
	ErrStorage = errors.New("storage failure")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrGatewayRejected):
		return CodeGatewayRejected
	case errors.Is(err, ErrGatewayUnreachable):
		return CodeGatewayUnreachable
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrSubscriptionNotFound):
		return CodeSubscriptionMissing
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrStorage), errors.Is(err, ErrDuplicateTransaction):
		return CodeStorage
	default:
		return CodeInternalServer
	}
}

// ValidationError carries field-level messages for a rejected checkout form
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout validation failed for %d field(s)", len(e.Fields))
}

// Is checks if the target error is an ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "validation_error",
		"error_code": CodeValidation,
	}
	for name, msg := range e.Fields {
		fields["field_"+name] = msg
	}
	return fields
}

// NewValidationError creates a validation error from field messages
func NewValidationError(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

// GatewayError wraps a gateway client failure with enough context to diagnose
// which operation and transaction were involved. Credentials never appear here.
type GatewayError struct {
	Operation string
	GatewayID string
	Provider  string
	Message   string
	Err       error
}

// Error implements the error interface for GatewayError
func (e *GatewayError) Error() string {
	if e.GatewayID == "" {
		return fmt.Sprintf("gateway %s failed during %s: %s: %v", e.Provider, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("gateway %s failed during %s for transaction %s: %s: %v",
		e.Provider, e.Operation, e.GatewayID, e.Message, e.Err)
}

// Unwrap returns the underlying error
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *GatewayError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "gateway_error",
		"operation":  e.Operation,
		"gateway_id": e.GatewayID,
		"provider":   e.Provider,
		"message":    e.Message,
		"error_code": ErrorCode(e.Err),
	}
}

// NewGatewayError creates a gateway error wrapping one of the gateway sentinels
func NewGatewayError(provider, operation, gatewayID, message string, err error) error {
	return &GatewayError{
		Provider:  provider,
		Operation: operation,
		GatewayID: gatewayID,
		Message:   message,
		Err:       err,
	}
}

// IsValidationError checks if the error represents rejected checkout input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsGatewayError checks if the error came from the payment gateway, either
// transport-level or a provider-side rejection
func IsGatewayError(err error) bool {
	return errors.Is(err, ErrGatewayUnreachable) || errors.Is(err, ErrGatewayRejected)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrSubscriptionNotFound)
}

// IsDuplicateError checks if the error is a uniqueness violation
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicateUser) || errors.Is(err, ErrDuplicateTransaction)
}

// IsStorageError checks if the error came from the persistence layer
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorage)
}
