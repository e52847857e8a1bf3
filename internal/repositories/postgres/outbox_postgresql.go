package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/notes-service/internal/models"
	"github.com/SAP-F-2025/notes-service/internal/repositories"
)

// OutboxPostgreSQL persists notification outbox entries. Entries are written
// in the same transaction as the state change they announce.
type OutboxPostgreSQL struct {
	db *gorm.DB
}

func NewOutboxPostgreSQL(db *gorm.DB) repositories.OutboxRepository {
	return &OutboxPostgreSQL{db: db}
}

func (o *OutboxPostgreSQL) Create(ctx context.Context, entry *models.NotificationOutbox) error {
	if err := o.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create outbox entry: %w", err)
	}
	return nil
}
