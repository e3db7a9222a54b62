package migration

import (
	"context"
	"errors"

	coreport "github.com/perna2k6/pernateste/internal/domain/port/core"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// CurrentSchemaVersion represents the current database schema version
const CurrentSchemaVersion = "1.0.0"

// MigrationManager manages database migrations
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// MigrateAll brings the schema to the current version
func (m *MigrationManager) MigrateAll() error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	if err := m.db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		return err
	}

	currentVersion, err := m.GetCurrentVersion(context.Background())
	if err != nil {
		return err
	}
	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	if err := m.db.AutoMigrate(
		&model.User{},
		&model.Transaction{},
		&model.Subscription{},
		&model.WebhookEvent{},
	); err != nil {
		m.logger.Error("Failed to auto-migrate models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := m.recordVersion(); err != nil {
		return err
	}

	m.logger.Info("Database migrations completed", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// GetCurrentVersion returns the most recently applied schema version
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	var record model.MigrationVersion
	err := m.db.WithContext(ctx).Order("id DESC").First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return record.Version, nil
}

func (m *MigrationManager) recordVersion() error {
	return m.db.Create(&model.MigrationVersion{
		Version:   CurrentSchemaVersion,
		AppliedAt: m.timeProvider.Now(),
	}).Error
}
