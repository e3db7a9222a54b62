package repository

import (
	"context"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	coreport "github.com/perna2k6/pernateste/internal/domain/port/core"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/database"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// WebhookEventRepository implements the webhook event storage port using GORM
type WebhookEventRepository struct {
	db          *gorm.DB
	logger      coreport.Logger
	errorMapper *database.ErrorMapper
}

// NewWebhookEventRepository creates a new WebhookEventRepository instance
func NewWebhookEventRepository(db *gorm.DB, logger coreport.Logger) *WebhookEventRepository {
	return &WebhookEventRepository{
		db:          db,
		logger:      logger,
		errorMapper: database.NewErrorMapper(),
	}
}

func (r *WebhookEventRepository) modelToEntity(m *model.WebhookEvent) *entity.WebhookEvent {
	return &entity.WebhookEvent{
		ID:         m.ID,
		Provider:   m.Provider,
		EventType:  m.EventType,
		GatewayID:  m.GatewayID,
		RawPayload: m.RawPayload,
		Processed:  m.Processed,
		CreatedAt:  m.CreatedAt,
	}
}

// Create persists an event record immediately on receipt. This write is the
// durability guarantee the webhook handler depends on; nothing else about the
// event matters if it fails.
func (r *WebhookEventRepository) Create(ctx context.Context, event *entity.WebhookEvent) error {
	eventModel := model.WebhookEvent{
		Provider:   event.Provider,
		EventType:  event.EventType,
		GatewayID:  event.GatewayID,
		RawPayload: event.RawPayload,
		Processed:  event.Processed,
		CreatedAt:  event.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&eventModel)
	if result.Error != nil {
		r.logger.Error("Failed to persist webhook event", map[string]any{
			"provider":   event.Provider,
			"gateway_id": event.GatewayID,
			"error":      result.Error.Error(),
		})
		return r.errorMapper.MapError(result.Error, "create webhook event")
	}

	event.ID = eventModel.ID
	return nil
}

// ListUnprocessed returns all events whose processed flag is still unset,
// oldest first so replay applies notifications in arrival order.
func (r *WebhookEventRepository) ListUnprocessed(ctx context.Context) ([]*entity.WebhookEvent, error) {
	var eventModels []model.WebhookEvent
	err := r.db.WithContext(ctx).
		Where("processed = ?", false).
		Order("id ASC").
		Find(&eventModels).Error
	if err != nil {
		return nil, r.errorMapper.MapError(err, "list unprocessed webhook events")
	}

	events := make([]*entity.WebhookEvent, 0, len(eventModels))
	for i := range eventModels {
		events = append(events, r.modelToEntity(&eventModels[i]))
	}
	return events, nil
}

// MarkProcessed flips the processed flag after processing completed
func (r *WebhookEventRepository) MarkProcessed(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Model(&model.WebhookEvent{}).
		Where("id = ?", id).
		Update("processed", true)
	if result.Error != nil {
		r.logger.Error("Failed to mark webhook event processed", map[string]any{
			"event_id": id,
			"error":    result.Error.Error(),
		})
		return r.errorMapper.MapError(result.Error, "mark webhook event processed")
	}
	return nil
}
