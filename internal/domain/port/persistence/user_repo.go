package persistence

import (
	"context"

	"github.com/perna2k6/pernateste/internal/domain/entity"
)

// UserRepository defines storage for the minimal identity records
// subscriptions key on.
type UserRepository interface {
	// Create persists a new user.
	//
	// Possible errors:
	// - ErrDuplicateUser: username or email already taken
	// - ErrStorage
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by primary key.
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrStorage
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByUsername retrieves a user by username.
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrStorage
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// GetByEmail retrieves a user by email.
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrStorage
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
