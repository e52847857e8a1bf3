package repositories

import (
	"context"

	"github.com/SAP-F-2025/notes-service/internal/models"
)

// NoteRepository owns the note store.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error

	GetByID(ctx context.Context, id string) (*models.Note, error)

	List(ctx context.Context, filters NoteFilters) ([]*models.Note, error)

	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id string) error

	// IncrementDownloads bumps the counter atomically in the store, so
	// concurrent calls never lose updates.
	IncrementDownloads(ctx context.Context, id string) error

	// Metadata returns the sorted distinct department/year/subject sets.
	Metadata(ctx context.Context) (*models.Metadata, error)
}

// OutboxRepository records published domain events.
type OutboxRepository interface {
	Create(ctx context.Context, entry *models.NotificationOutbox) error
}
