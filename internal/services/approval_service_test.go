package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/notes-service/internal/events"
	"github.com/SAP-F-2025/notes-service/internal/models"
)

func newTestApprovalService(repo *mockRepository) (ApprovalService, *events.MockEventPublisher) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := events.NewMockEventPublisher(logger)
	notifier := NewNotificationEventService(publisher, logger)
	return NewApprovalService(repo, notifier, logger), publisher
}

func seedUser(t *testing.T, repo *mockRepository, role models.UserRole, approved bool) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        uuid.NewString()[:8] + "@example.com",
		FullName:     "Seeded User",
		Role:         role,
		PasswordHash: "x",
		Approved:     approved,
	}
	if err := repo.User().Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}

func sessionFor(u *models.User) models.SessionUser {
	return models.SessionUserFrom(u)
}

func TestApprovalService_ListPending(t *testing.T) {
	ctx := context.Background()

	t.Run("admin sees pending teachers only", func(t *testing.T) {
		repo := newMockRepository()
		svc, _ := newTestApprovalService(repo)

		admin := seedUser(t, repo, models.RoleAdmin, true)
		pendingTeacher := seedUser(t, repo, models.RoleTeacher, false)
		seedUser(t, repo, models.RoleTeacher, true)
		seedUser(t, repo, models.RoleStudent, false)

		users, err := svc.ListPending(ctx, sessionFor(admin))
		if err != nil {
			t.Fatalf("ListPending failed: %v", err)
		}
		if len(users) != 1 || users[0].ID != pendingTeacher.ID {
			t.Errorf("Expected only the pending teacher, got %d users", len(users))
		}
	})

	t.Run("teacher sees pending students only", func(t *testing.T) {
		repo := newMockRepository()
		svc, _ := newTestApprovalService(repo)

		teacher := seedUser(t, repo, models.RoleTeacher, true)
		pendingStudent := seedUser(t, repo, models.RoleStudent, false)
		seedUser(t, repo, models.RoleTeacher, false)

		users, err := svc.ListPending(ctx, sessionFor(teacher))
		if err != nil {
			t.Fatalf("ListPending failed: %v", err)
		}
		if len(users) != 1 || users[0].ID != pendingStudent.ID {
			t.Errorf("Expected only the pending student, got %d users", len(users))
		}
	})

	t.Run("student may not list anyone", func(t *testing.T) {
		repo := newMockRepository()
		svc, _ := newTestApprovalService(repo)

		student := seedUser(t, repo, models.RoleStudent, true)

		if _, err := svc.ListPending(ctx, sessionFor(student)); !errors.Is(err, ErrForbidden) {
			t.Errorf("Expected ErrForbidden, got %v", err)
		}
	})
}

func TestApprovalService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("admin approves a teacher", func(t *testing.T) {
		repo := newMockRepository()
		svc, publisher := newTestApprovalService(repo)

		admin := seedUser(t, repo, models.RoleAdmin, true)
		teacher := seedUser(t, repo, models.RoleTeacher, false)

		approved, err := svc.Approve(ctx, sessionFor(admin), teacher.ID)
		if err != nil {
			t.Fatalf("Approve failed: %v", err)
		}
		if !approved.Approved {
			t.Error("User should be approved")
		}

		stored, err := repo.User().GetByID(ctx, teacher.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if !stored.Approved {
			t.Error("Approval was not persisted")
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.TypeUserApproved {
			t.Fatalf("Expected one %s event, got %v", events.TypeUserApproved, published)
		}
	})

	t.Run("admin may not approve a student", func(t *testing.T) {
		repo := newMockRepository()
		svc, _ := newTestApprovalService(repo)

		admin := seedUser(t, repo, models.RoleAdmin, true)
		student := seedUser(t, repo, models.RoleStudent, false)

		_, err := svc.Approve(ctx, sessionFor(admin), student.ID)
		var permErr *PermissionError
		if !errors.As(err, &permErr) {
			t.Errorf("Expected PermissionError, got %v", err)
		}
	})

	t.Run("teacher may not approve a teacher", func(t *testing.T) {
		repo := newMockRepository()
		svc, _ := newTestApprovalService(repo)

		teacher := seedUser(t, repo, models.RoleTeacher, true)
		other := seedUser(t, repo, models.RoleTeacher, false)

		_, err := svc.Approve(ctx, sessionFor(teacher), other.ID)
		var permErr *PermissionError
		if !errors.As(err, &permErr) {
			t.Errorf("Expected PermissionError, got %v", err)
		}
	})

	t.Run("student may not approve anyone", func(t *testing.T) {
		repo := newMockRepository()
		svc, _ := newTestApprovalService(repo)

		student := seedUser(t, repo, models.RoleStudent, true)
		other := seedUser(t, repo, models.RoleStudent, false)

		if _, err := svc.Approve(ctx, sessionFor(student), other.ID); !errors.Is(err, ErrForbidden) {
			t.Errorf("Expected ErrForbidden, got %v", err)
		}
	})

	t.Run("unknown user yields not found", func(t *testing.T) {
		repo := newMockRepository()
		svc, _ := newTestApprovalService(repo)

		admin := seedUser(t, repo, models.RoleAdmin, true)

		if _, err := svc.Approve(ctx, sessionFor(admin), "missing-id"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("approving twice is a no-op", func(t *testing.T) {
		repo := newMockRepository()
		svc, publisher := newTestApprovalService(repo)

		admin := seedUser(t, repo, models.RoleAdmin, true)
		teacher := seedUser(t, repo, models.RoleTeacher, false)

		if _, err := svc.Approve(ctx, sessionFor(admin), teacher.ID); err != nil {
			t.Fatalf("First approve failed: %v", err)
		}
		publisher.ClearEvents()

		if _, err := svc.Approve(ctx, sessionFor(admin), teacher.ID); err != nil {
			t.Fatalf("Second approve failed: %v", err)
		}
		if published := publisher.GetPublishedEvents(); len(published) != 0 {
			t.Errorf("No event expected for an idempotent approve, got %d", len(published))
		}
	})
}
