package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/notes-service/internal/cache"
	"github.com/SAP-F-2025/notes-service/internal/models"
	"github.com/SAP-F-2025/notes-service/internal/repositories"
)

type NotePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewNotePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.NoteRepository {
	return &NotePostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (n *NotePostgreSQL) Create(ctx context.Context, note *models.Note) error {
	if err := n.db.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	cache.InvalidateNoteCache(ctx, n.cacheManager, note.ID)
	return nil
}

// GetByID retrieves a note by ID with caching
func (n *NotePostgreSQL) GetByID(ctx context.Context, id string) (*models.Note, error) {
	cacheKey := fmt.Sprintf("id:%s", id)
	var note models.Note

	err := n.cacheManager.Note.CacheOrExecute(ctx, cacheKey, &note, cache.NoteCacheConfig.TTL, func() (interface{}, error) {
		var dbNote models.Note
		if err := n.db.WithContext(ctx).First(&dbNote, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return &dbNote, nil
	})
	if err != nil {
		return nil, err
	}

	return &note, nil
}

func (n *NotePostgreSQL) List(ctx context.Context, filters repositories.NoteFilters) ([]*models.Note, error) {
	query := n.db.WithContext(ctx).Model(&models.Note{})
	query = n.applyFilters(query, filters)
	query = n.applySort(query, filters.SortBy)

	var notes []*models.Note
	if err := query.Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (n *NotePostgreSQL) applyFilters(query *gorm.DB, filters repositories.NoteFilters) *gorm.DB {
	if filters.Department != "" {
		query = query.Where("department = ?", filters.Department)
	}
	if filters.Year != "" {
		query = query.Where("year = ?", filters.Year)
	}
	if filters.Subject != "" {
		query = query.Where("subject = ?", filters.Subject)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	return query
}

func (n *NotePostgreSQL) applySort(query *gorm.DB, sortBy string) *gorm.DB {
	switch sortBy {
	case repositories.SortNewest:
		return query.Order("timestamp DESC")
	case repositories.SortOldest:
		return query.Order("timestamp ASC")
	case repositories.SortTitle:
		return query.Order("title ASC")
	default:
		// Store order: insertion order
		return query.Order("timestamp ASC, id ASC")
	}
}

func (n *NotePostgreSQL) Update(ctx context.Context, note *models.Note) error {
	result := n.db.WithContext(ctx).
		Model(&models.Note{}).
		Where("id = ?", note.ID).
		Updates(map[string]interface{}{
			"title":       note.Title,
			"description": note.Description,
			"department":  note.Department,
			"year":        note.Year,
			"subject":     note.Subject,
			"updated_at":  note.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update note: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateNoteCache(ctx, n.cacheManager, note.ID)
	return nil
}

func (n *NotePostgreSQL) Delete(ctx context.Context, id string) error {
	result := n.db.WithContext(ctx).Delete(&models.Note{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete note: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateNoteCache(ctx, n.cacheManager, id)
	return nil
}

// IncrementDownloads bumps the counter with a single SQL expression so
// concurrent downloads cannot lose updates.
func (n *NotePostgreSQL) IncrementDownloads(ctx context.Context, id string) error {
	result := n.db.WithContext(ctx).
		Model(&models.Note{}).
		Where("id = ?", id).
		UpdateColumn("downloads", gorm.Expr("downloads + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment downloads: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.SafeDelete(ctx, n.cacheManager.Note, fmt.Sprintf("id:%s", id))
	return nil
}

// Metadata returns the sorted distinct department/year/subject sets, cached.
func (n *NotePostgreSQL) Metadata(ctx context.Context) (*models.Metadata, error) {
	var meta models.Metadata

	err := n.cacheManager.Metadata.CacheOrExecute(ctx, "all", &meta, cache.MetadataCacheConfig.TTL, func() (interface{}, error) {
		result := &models.Metadata{
			Departments: []string{},
			Years:       []string{},
			Subjects:    []string{},
		}

		if err := n.distinct(ctx, "department", &result.Departments); err != nil {
			return nil, err
		}
		if err := n.distinct(ctx, "year", &result.Years); err != nil {
			return nil, err
		}
		if err := n.distinct(ctx, "subject", &result.Subjects); err != nil {
			return nil, err
		}

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return &meta, nil
}

func (n *NotePostgreSQL) distinct(ctx context.Context, column string, dest *[]string) error {
	err := n.db.WithContext(ctx).
		Model(&models.Note{}).
		Distinct(column).
		Order(column + " ASC").
		Pluck(column, dest).Error
	if err != nil {
		return fmt.Errorf("failed to collect distinct %s values: %w", column, err)
	}
	return nil
}
