package repository

import (
	"context"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	coreport "github.com/perna2k6/pernateste/internal/domain/port/core"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/database"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// UserRepository implements the user storage port using GORM
type UserRepository struct {
	db          *gorm.DB
	logger      coreport.Logger
	errorMapper *database.ErrorMapper
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:          db,
		logger:      logger,
		errorMapper: database.NewErrorMapper(),
	}
}

func (r *UserRepository) entityToModel(user *entity.User) model.User {
	return model.User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.Password,
		Name:      user.Name,
		Document:  user.Document,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func (r *UserRepository) modelToEntity(m *model.User) *entity.User {
	return &entity.User{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		Password:  m.Password,
		Name:      m.Name,
		Document:  m.Document,
		Phone:     m.Phone,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Create persists a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := r.entityToModel(user)

	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		r.logger.Error("Failed to create user", map[string]any{
			"username": user.Username,
			"error":    result.Error.Error(),
		})
		return r.errorMapper.MapError(result.Error, "create user")
	}

	user.ID = userModel.ID
	r.logger.Info("User created", map[string]any{
		"id":       user.ID,
		"username": user.Username,
	})
	return nil
}

// GetByID retrieves a user by primary key
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	err := r.db.WithContext(ctx).First(&userModel, id).Error
	if err != nil {
		return nil, r.errorMapper.MapNotFoundError(err, database.EntityTypeUser)
	}
	return r.modelToEntity(&userModel), nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userModel model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&userModel).Error
	if err != nil {
		return nil, r.errorMapper.MapNotFoundError(err, database.EntityTypeUser)
	}
	return r.modelToEntity(&userModel), nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel).Error
	if err != nil {
		return nil, r.errorMapper.MapNotFoundError(err, database.EntityTypeUser)
	}
	return r.modelToEntity(&userModel), nil
}
