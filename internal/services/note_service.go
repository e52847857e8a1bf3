package services

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/notes-service/internal/events"
	"github.com/SAP-F-2025/notes-service/internal/models"
	"github.com/SAP-F-2025/notes-service/internal/repositories"
	"github.com/SAP-F-2025/notes-service/internal/storage"
	"github.com/SAP-F-2025/notes-service/internal/validator"
)

type noteService struct {
	repo      repositories.Repository
	files     *storage.FileStore
	notifier  *NotificationEventService
	validator *validator.Validator
	logger    *slog.Logger
}

func NewNoteService(
	repo repositories.Repository,
	files *storage.FileStore,
	notifier *NotificationEventService,
	v *validator.Validator,
	logger *slog.Logger,
) NoteService {
	return &noteService{
		repo:      repo,
		files:     files,
		notifier:  notifier,
		validator: v,
		logger:    logger,
	}
}

func (s *noteService) List(ctx context.Context, filters repositories.NoteFilters) ([]*models.Note, error) {
	notes, err := s.repo.Note().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (s *noteService) GetByID(ctx context.Context, id string) (*models.Note, error) {
	note, err := s.repo.Note().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to load note: %w", err)
	}
	return note, nil
}

// Upload stores a file note. The blob lands on disk before the metadata
// is validated; a validation failure removes it again so no orphan blob
// survives a rejected request.
func (s *noteService) Upload(ctx context.Context, uploader models.SessionUser, req *NoteUploadRequest, file *multipart.FileHeader) (*models.Note, error) {
	if uploader.Role != models.RoleTeacher {
		return nil, NewPermissionError(uploader.ID, "upload", "note")
	}

	if file == nil {
		return nil, ValidationErrors{{
			Field:   "file",
			Message: "file is required",
			Rule:    "required",
		}}
	}

	storedName, err := s.files.GenerateName(file.Filename)
	if err != nil {
		if err == storage.ErrUnsupportedFileType {
			return nil, ValidationErrors{{
				Field:   "file",
				Message: "file type not supported",
				Value:   filepath.Ext(file.Filename),
				Rule:    "filetype",
			}}
		}
		return nil, fmt.Errorf("failed to name file: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	size, err := s.files.Save(storedName, src)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	s.trimUploadFields(req)
	if errs := s.validator.GetBusinessValidator().ValidateNoteUpload(req); len(errs) > 0 {
		if rmErr := s.files.Remove(storedName); rmErr != nil {
			s.logger.Error("failed to remove rejected upload", "error", rmErr, "file", storedName)
		}
		return nil, errs
	}

	note := &models.Note{
		ID:               uuid.NewString(),
		Title:            req.Title,
		Description:      req.Description,
		Department:       req.Department,
		Year:             req.Year,
		Subject:          req.Subject,
		FileType:         strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), "."),
		FileName:         storedName,
		OriginalFileName: file.Filename,
		FileSize:         size,
		UploadedBy:       uploader.ID,
		UploadedByName:   uploader.FullName,
	}

	event := events.NewEvent(events.TypeNoteUploaded, map[string]interface{}{
		"noteId":     note.ID,
		"title":      note.Title,
		"department": note.Department,
		"year":       note.Year,
		"subject":    note.Subject,
		"uploadedBy": uploader.ID,
	})

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Note().Create(ctx, note); err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}
		return s.notifier.Record(ctx, tx, event)
	})
	if err != nil {
		if rmErr := s.files.Remove(storedName); rmErr != nil {
			s.logger.Error("failed to remove orphaned upload", "error", rmErr, "file", storedName)
		}
		return nil, err
	}

	s.logger.Info("note uploaded",
		"note_id", note.ID,
		"uploaded_by", uploader.ID,
		"file_type", note.FileType)

	s.notifier.Publish(event)

	return note, nil
}

// UploadLink stores a link note. An empty platform defaults to "other".
func (s *noteService) UploadLink(ctx context.Context, uploader models.SessionUser, req *LinkUploadRequest) (*models.Note, error) {
	if uploader.Role != models.RoleTeacher {
		return nil, NewPermissionError(uploader.ID, "upload", "note")
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Department = strings.TrimSpace(req.Department)
	req.Year = strings.TrimSpace(req.Year)
	req.Subject = strings.TrimSpace(req.Subject)
	req.LinkURL = strings.TrimSpace(req.LinkURL)

	if errs := s.validator.GetBusinessValidator().ValidateLinkUpload(req); len(errs) > 0 {
		return nil, errs
	}

	platform := req.LinkPlatform
	if platform == "" {
		platform = "other"
	}

	note := &models.Note{
		ID:             uuid.NewString(),
		Title:          req.Title,
		Description:    req.Description,
		Department:     req.Department,
		Year:           req.Year,
		Subject:        req.Subject,
		LinkURL:        req.LinkURL,
		LinkPlatform:   platform,
		UploadedBy:     uploader.ID,
		UploadedByName: uploader.FullName,
	}

	event := events.NewEvent(events.TypeNoteUploaded, map[string]interface{}{
		"noteId":     note.ID,
		"title":      note.Title,
		"department": note.Department,
		"year":       note.Year,
		"subject":    note.Subject,
		"uploadedBy": uploader.ID,
		"link":       true,
	})

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Note().Create(ctx, note); err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}
		return s.notifier.Record(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("link note created",
		"note_id", note.ID,
		"uploaded_by", uploader.ID,
		"platform", platform)

	s.notifier.Publish(event)

	return note, nil
}

// Update applies a partial edit. Only the uploader may edit their note.
func (s *noteService) Update(ctx context.Context, actor models.SessionUser, id string, req *NoteUpdateRequest) (*models.Note, error) {
	if errs := s.validator.GetBusinessValidator().ValidateNoteUpdate(req); len(errs) > 0 {
		return nil, errs
	}

	note, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if note.UploadedBy != actor.ID {
		return nil, NewPermissionError(actor.ID, "update", "note")
	}

	if req.Title != nil {
		note.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		note.Description = strings.TrimSpace(*req.Description)
	}
	if req.Department != nil {
		note.Department = strings.TrimSpace(*req.Department)
	}
	if req.Year != nil {
		note.Year = strings.TrimSpace(*req.Year)
	}
	if req.Subject != nil {
		note.Subject = strings.TrimSpace(*req.Subject)
	}
	now := time.Now().UTC()
	note.UpdatedAt = &now

	if err := s.repo.Note().Update(ctx, note); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// Delete removes a note and its stored blob. Only the uploader may delete
// their note. The blob is removed best-effort after the record is gone.
func (s *noteService) Delete(ctx context.Context, actor models.SessionUser, id string) error {
	note, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if note.UploadedBy != actor.ID {
		return NewPermissionError(actor.ID, "delete", "note")
	}

	event := events.NewEvent(events.TypeNoteDeleted, map[string]interface{}{
		"noteId":    id,
		"deletedBy": actor.ID,
	})

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Note().Delete(ctx, id); err != nil {
			return err
		}
		return s.notifier.Record(ctx, tx, event)
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if note.FileName != "" {
		if err := s.files.Remove(note.FileName); err != nil {
			s.logger.Error("failed to remove note file", "error", err, "file", note.FileName)
		}
	}

	s.logger.Info("note deleted",
		"note_id", id,
		"deleted_by", actor.ID)

	s.notifier.Publish(event)

	return nil
}

// Download resolves a note to its blob and counts the download. The
// counter moves before the blob is checked, so link notes and notes with a
// missing blob still register interest.
func (s *noteService) Download(ctx context.Context, id string) (*DownloadResult, error) {
	note, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Note().IncrementDownloads(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to count download: %w", err)
	}

	if note.IsLink() {
		return &DownloadResult{LinkURL: note.LinkURL}, nil
	}

	if note.FileName == "" || !s.files.Exists(note.FileName) {
		return nil, ErrFileNotFound
	}

	return &DownloadResult{
		Path:             filepath.Join(s.files.Dir(), filepath.Base(note.FileName)),
		OriginalFileName: note.OriginalFileName,
	}, nil
}

func (s *noteService) Metadata(ctx context.Context) (*models.Metadata, error) {
	meta, err := s.repo.Note().Metadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect metadata: %w", err)
	}
	return meta, nil
}

func (s *noteService) trimUploadFields(req *NoteUploadRequest) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Department = strings.TrimSpace(req.Department)
	req.Year = strings.TrimSpace(req.Year)
	req.Subject = strings.TrimSpace(req.Subject)
}
