package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/SAP-F-2025/notes-service/internal/config"
	"github.com/SAP-F-2025/notes-service/internal/events"
	"github.com/SAP-F-2025/notes-service/internal/models"
	"github.com/SAP-F-2025/notes-service/internal/repositories"
	"github.com/SAP-F-2025/notes-service/internal/sessions"
	"github.com/SAP-F-2025/notes-service/internal/storage"
	"github.com/SAP-F-2025/notes-service/internal/validator"
)

type serviceManager struct {
	cfg       *config.Config
	repo      repositories.Repository
	store     sessions.Store
	files     *storage.FileStore
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger

	notifier *NotificationEventService
	auth     AuthService
	approval ApprovalService
	notes    NoteService
	reports  ReportService
}

func NewServiceManager(
	cfg *config.Config,
	repo repositories.Repository,
	store sessions.Store,
	files *storage.FileStore,
	publisher events.EventPublisher,
	v *validator.Validator,
	logger *slog.Logger,
) ServiceManager {
	return &serviceManager{
		cfg:       cfg,
		repo:      repo,
		store:     store,
		files:     files,
		publisher: publisher,
		validator: v,
		logger:    logger,
	}
}

// Initialize builds all services and seeds the bootstrap admin account.
func (m *serviceManager) Initialize(ctx context.Context) error {
	m.notifier = NewNotificationEventService(m.publisher, m.logger)
	m.auth = NewAuthService(m.repo, m.store, m.notifier, m.validator, m.logger)
	m.approval = NewApprovalService(m.repo, m.notifier, m.logger)
	m.notes = NewNoteService(m.repo, m.files, m.notifier, m.validator, m.logger)
	m.reports = NewReportService(m.repo, m.logger)

	if err := m.seedAdmin(ctx); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	m.logger.Info("services initialized")
	return nil
}

// seedAdmin creates a pre-approved admin from configuration when no admin
// exists yet. Without one the approval chain has no root and nobody could
// ever log in.
func (m *serviceManager) seedAdmin(ctx context.Context) error {
	if m.cfg.AdminEmail == "" || m.cfg.AdminPassword == "" {
		return nil
	}

	count, err := m.repo.User().CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(m.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(m.cfg.AdminEmail),
		FullName:     m.cfg.AdminName,
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
		Approved:     true,
	}
	if admin.FullName == "" {
		admin.FullName = "Administrator"
	}

	if err := m.repo.User().Create(ctx, admin); err != nil {
		return err
	}

	m.logger.Info("seeded admin account", "email", admin.Email)
	return nil
}

func (m *serviceManager) GetAuthService() AuthService         { return m.auth }
func (m *serviceManager) GetApprovalService() ApprovalService { return m.approval }
func (m *serviceManager) GetNoteService() NoteService         { return m.notes }
func (m *serviceManager) GetReportService() ReportService     { return m.reports }

func (m *serviceManager) Shutdown() error {
	if m.publisher != nil {
		if err := m.publisher.Close(); err != nil {
			return fmt.Errorf("failed to close event publisher: %w", err)
		}
	}
	return nil
}
