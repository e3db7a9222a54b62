package repository

import (
	"context"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	coreport "github.com/perna2k6/pernateste/internal/domain/port/core"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/database"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// SubscriptionRepository implements the subscription storage port using GORM
type SubscriptionRepository struct {
	db           *gorm.DB
	logger       coreport.Logger
	errorMapper  *database.ErrorMapper
	timeProvider coreport.TimeProvider
}

// NewSubscriptionRepository creates a new SubscriptionRepository instance
func NewSubscriptionRepository(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *SubscriptionRepository {
	return &SubscriptionRepository{
		db:           db,
		logger:       logger,
		errorMapper:  database.NewErrorMapper(),
		timeProvider: timeProvider,
	}
}

func (r *SubscriptionRepository) entityToModel(sub *entity.Subscription) model.Subscription {
	return model.Subscription{
		ID:            sub.ID,
		UserID:        sub.UserID,
		TransactionID: sub.TransactionID,
		PlanCode:      sub.PlanCode,
		Status:        string(sub.Status),
		StartsAt:      sub.StartsAt,
		EndsAt:        sub.EndsAt,
		CreatedAt:     sub.CreatedAt,
	}
}

func (r *SubscriptionRepository) modelToEntity(m *model.Subscription) *entity.Subscription {
	return &entity.Subscription{
		ID:            m.ID,
		UserID:        m.UserID,
		TransactionID: m.TransactionID,
		PlanCode:      m.PlanCode,
		Status:        entity.SubscriptionStatus(m.Status),
		StartsAt:      m.StartsAt,
		EndsAt:        m.EndsAt,
		CreatedAt:     m.CreatedAt,
	}
}

// Create persists a new subscription. The unique index on transaction_id
// rejects a second activation for the same source transaction.
func (r *SubscriptionRepository) Create(ctx context.Context, sub *entity.Subscription) error {
	subModel := r.entityToModel(sub)

	result := r.db.WithContext(ctx).Create(&subModel)
	if result.Error != nil {
		r.logger.Error("Failed to create subscription", map[string]any{
			"user_id":        sub.UserID,
			"transaction_id": sub.TransactionID,
			"error":          result.Error.Error(),
		})
		return r.errorMapper.MapError(result.Error, "create subscription")
	}

	sub.ID = subModel.ID
	r.logger.Info("Subscription created", map[string]any{
		"id":        sub.ID,
		"user_id":   sub.UserID,
		"plan_code": sub.PlanCode,
		"ends_at":   sub.EndsAt,
	})
	return nil
}

// GetActiveByUserID returns the user's current subscription: status active
// and an end strictly in the future. Rows whose period elapsed but whose
// status was never swept to expired do not match.
func (r *SubscriptionRepository) GetActiveByUserID(ctx context.Context, userID uint64) (*entity.Subscription, error) {
	var subModel model.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND ends_at > ?", userID, string(entity.SubscriptionActive), r.timeProvider.Now()).
		Order("ends_at DESC").
		First(&subModel).Error
	if err != nil {
		return nil, r.errorMapper.MapNotFoundError(err, database.EntityTypeSubscription)
	}
	return r.modelToEntity(&subModel), nil
}

// GetByTransactionID returns the subscription a transaction already produced
func (r *SubscriptionRepository) GetByTransactionID(ctx context.Context, transactionID uint64) (*entity.Subscription, error) {
	var subModel model.Subscription
	err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&subModel).Error
	if err != nil {
		return nil, r.errorMapper.MapNotFoundError(err, database.EntityTypeSubscription)
	}
	return r.modelToEntity(&subModel), nil
}
