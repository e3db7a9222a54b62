package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	errs "github.com/perna2k6/pernateste/internal/domain/error"
	coreport "github.com/perna2k6/pernateste/internal/domain/port/core"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/database"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionRepository implements the transaction storage port using GORM
type TransactionRepository struct {
	db           *gorm.DB
	logger       coreport.Logger
	errorMapper  *database.ErrorMapper
	timeProvider coreport.TimeProvider
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *TransactionRepository {
	return &TransactionRepository{
		db:           db,
		logger:       logger,
		errorMapper:  database.NewErrorMapper(),
		timeProvider: timeProvider,
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(txn *entity.Transaction) (model.Transaction, error) {
	m := model.Transaction{
		ID:            txn.ID,
		GatewayID:     txn.GatewayID,
		ExternalID:    txn.ExternalID,
		Amount:        txn.Amount,
		Status:        string(txn.Status),
		Method:        txn.Method,
		PlanCode:      txn.PlanCode,
		PlanTitle:     txn.PlanTitle,
		BuyerName:     txn.Buyer.Name,
		BuyerEmail:    txn.Buyer.Email,
		BuyerDocument: txn.Buyer.Document,
		BuyerPhone:    txn.Buyer.Phone,
		UserID:        txn.UserID,
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.UpdatedAt,
	}
	if txn.PaymentData != nil {
		raw, err := json.Marshal(txn.PaymentData)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("%w: marshal payment data: %s", errs.ErrStorage, err.Error())
		}
		m.PaymentData = datatypes.JSON(raw)
	}
	return m, nil
}

// modelToEntity converts a database model to a transaction entity
func (r *TransactionRepository) modelToEntity(m *model.Transaction) (*entity.Transaction, error) {
	txn := &entity.Transaction{
		ID:         m.ID,
		GatewayID:  m.GatewayID,
		ExternalID: m.ExternalID,
		Amount:     m.Amount,
		Status:     entity.TransactionStatus(m.Status),
		Method:     m.Method,
		PlanCode:   m.PlanCode,
		PlanTitle:  m.PlanTitle,
		Buyer: entity.Buyer{
			Name:     m.BuyerName,
			Email:    m.BuyerEmail,
			Document: m.BuyerDocument,
			Phone:    m.BuyerPhone,
		},
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if len(m.PaymentData) > 0 {
		var pd entity.PaymentData
		if err := json.Unmarshal(m.PaymentData, &pd); err != nil {
			return nil, fmt.Errorf("%w: unmarshal payment data: %s", errs.ErrStorage, err.Error())
		}
		txn.PaymentData = &pd
	}
	return txn, nil
}

// Create saves a new transaction and copies back the assigned identity
func (r *TransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	r.logger.Debug("Creating transaction", map[string]any{
		"gateway_id":  txn.GatewayID,
		"external_id": txn.ExternalID,
	})

	txnModel, err := r.entityToModel(txn)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Create(&txnModel)
	if result.Error != nil {
		r.logger.Error("Failed to create transaction", map[string]any{
			"gateway_id": txn.GatewayID,
			"error":      result.Error.Error(),
		})
		return r.errorMapper.MapError(result.Error, "create transaction")
	}

	txn.ID = txnModel.ID
	r.logger.Info("Transaction created", map[string]any{
		"id":         txn.ID,
		"gateway_id": txn.GatewayID,
		"status":     txn.Status,
	})
	return nil
}

// GetByGatewayID retrieves a transaction by the provider's transaction id
func (r *TransactionRepository) GetByGatewayID(ctx context.Context, gatewayID string) (*entity.Transaction, error) {
	var txnModel model.Transaction
	err := r.db.WithContext(ctx).Where("gateway_id = ?", gatewayID).First(&txnModel).Error
	if err != nil {
		return nil, r.errorMapper.MapNotFoundError(err, database.EntityTypeTransaction)
	}
	return r.modelToEntity(&txnModel)
}

// GetByExternalID retrieves a transaction by the caller-generated token
func (r *TransactionRepository) GetByExternalID(ctx context.Context, externalID string) (*entity.Transaction, error) {
	var txnModel model.Transaction
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&txnModel).Error
	if err != nil {
		return nil, r.errorMapper.MapNotFoundError(err, database.EntityTypeTransaction)
	}
	return r.modelToEntity(&txnModel)
}

// UpdateStatus writes a new status inside a row-locked transaction so that
// concurrent updates for the same gateway id serialize at the database, one
// after the other, instead of interleaving.
func (r *TransactionRepository) UpdateStatus(
	ctx context.Context,
	gatewayID string,
	status entity.TransactionStatus,
	patch *entity.PaymentData,
) (*entity.Transaction, error) {
	var txnModel model.Transaction

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("gateway_id = ?", gatewayID).
			First(&txnModel).Error; err != nil {
			return err
		}

		now := r.timeProvider.Now()
		updates := map[string]any{
			"status":     string(status),
			"updated_at": now,
		}
		if patch != nil {
			raw, err := json.Marshal(patch)
			if err != nil {
				return fmt.Errorf("marshal payment data: %w", err)
			}
			updates["payment_data"] = datatypes.JSON(raw)
			txnModel.PaymentData = datatypes.JSON(raw)
		}

		if err := tx.Model(&txnModel).Updates(updates).Error; err != nil {
			return err
		}
		txnModel.Status = string(status)
		txnModel.UpdatedAt = now
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		r.logger.Error("Failed to update transaction status", map[string]any{
			"gateway_id": gatewayID,
			"status":     status,
			"error":      err.Error(),
		})
		return nil, r.errorMapper.MapError(err, "update transaction status")
	}

	r.logger.Info("Transaction status updated", map[string]any{
		"gateway_id": gatewayID,
		"status":     status,
	})
	return r.modelToEntity(&txnModel)
}
