package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/SAP-F-2025/notes-service/internal/config"
	"github.com/SAP-F-2025/notes-service/internal/events"
	"github.com/SAP-F-2025/notes-service/internal/models"
	"github.com/SAP-F-2025/notes-service/internal/sessions"
	"github.com/SAP-F-2025/notes-service/internal/storage"
	"github.com/SAP-F-2025/notes-service/internal/validator"
)

func newTestServiceManager(t *testing.T, repo *mockRepository, cfg *config.Config) ServiceManager {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := events.NewMockEventPublisher(logger)
	store := sessions.NewMemoryStore(time.Hour)

	files, err := storage.NewFileStore(t.TempDir(), 1<<20)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	return NewServiceManager(cfg, repo, store, files, publisher, validator.New(), logger)
}

func TestServiceManager_Initialize(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds approved admin on first start", func(t *testing.T) {
		repo := newMockRepository()
		manager := newTestServiceManager(t, repo, &config.Config{
			AdminEmail:    "Admin@Example.com",
			AdminPassword: "bootstrap1",
			AdminName:     "Root Admin",
		})

		if err := manager.Initialize(ctx); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}

		admin, err := repo.User().GetByEmail(ctx, "admin@example.com")
		if err != nil {
			t.Fatalf("Seeded admin not found: %v", err)
		}
		if !admin.Approved {
			t.Error("Seeded admin must be pre-approved")
		}
		if admin.Role != models.RoleAdmin {
			t.Errorf("Expected admin role, got %s", admin.Role)
		}
		if admin.PasswordHash == "bootstrap1" {
			t.Error("Seed password must be stored hashed")
		}

		// Seeded credentials must actually work
		result, err := manager.GetAuthService().Login(ctx, &LoginRequest{
			Email:    "admin@example.com",
			Password: "bootstrap1",
		})
		if err != nil {
			t.Fatalf("Login with seeded credentials failed: %v", err)
		}
		if result.User.Role != models.RoleAdmin {
			t.Errorf("Expected admin session, got %s", result.User.Role)
		}
	})

	t.Run("does not reseed when an admin exists", func(t *testing.T) {
		repo := newMockRepository()
		seedUser(t, repo, models.RoleAdmin, true)

		manager := newTestServiceManager(t, repo, &config.Config{
			AdminEmail:    "second@example.com",
			AdminPassword: "bootstrap1",
		})
		if err := manager.Initialize(ctx); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}

		count, err := repo.User().CountByRole(ctx, models.RoleAdmin)
		if err != nil {
			t.Fatalf("CountByRole failed: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 admin, got %d", count)
		}
	})

	t.Run("skips seeding without credentials", func(t *testing.T) {
		repo := newMockRepository()
		manager := newTestServiceManager(t, repo, &config.Config{})

		if err := manager.Initialize(ctx); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}

		count, _ := repo.User().CountByRole(ctx, models.RoleAdmin)
		if count != 0 {
			t.Errorf("Expected no seeded admin, got %d", count)
		}
	})

	t.Run("exposes all services", func(t *testing.T) {
		repo := newMockRepository()
		manager := newTestServiceManager(t, repo, &config.Config{})
		if err := manager.Initialize(ctx); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}

		if manager.GetAuthService() == nil ||
			manager.GetApprovalService() == nil ||
			manager.GetNoteService() == nil ||
			manager.GetReportService() == nil {
			t.Error("All services must be available after Initialize")
		}

		if err := manager.Shutdown(); err != nil {
			t.Errorf("Shutdown failed: %v", err)
		}
	})
}
