package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/notes-service/internal/events"
	"github.com/SAP-F-2025/notes-service/internal/models"
	"github.com/SAP-F-2025/notes-service/internal/repositories"
)

// approvalPolicy maps an approver role to the single role it may approve.
// Admins approve teachers, teachers approve students. Students approve
// nobody.
var approvalPolicy = map[models.UserRole]models.UserRole{
	models.RoleAdmin:   models.RoleTeacher,
	models.RoleTeacher: models.RoleStudent,
}

type approvalService struct {
	repo     repositories.Repository
	notifier *NotificationEventService
	logger   *slog.Logger
}

func NewApprovalService(repo repositories.Repository, notifier *NotificationEventService, logger *slog.Logger) ApprovalService {
	return &approvalService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// ListPending returns the unapproved users the approver is responsible
// for, oldest registration first.
func (s *approvalService) ListPending(ctx context.Context, approver models.SessionUser) ([]*models.User, error) {
	target, ok := approvalPolicy[approver.Role]
	if !ok {
		return nil, ErrForbidden
	}

	users, err := s.repo.User().ListPendingByRole(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending users: %w", err)
	}

	return users, nil
}

// Approve grants login to a pending user. Only the role the approver is
// responsible for can be approved; approving an already approved user is
// a no-op.
func (s *approvalService) Approve(ctx context.Context, approver models.SessionUser, userID string) (*models.User, error) {
	target, ok := approvalPolicy[approver.Role]
	if !ok {
		return nil, ErrForbidden
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.Role != target {
		return nil, NewPermissionError(approver.ID, "approve", string(user.Role))
	}

	if user.Approved {
		return user, nil
	}

	event := events.NewEvent(events.TypeUserApproved, map[string]interface{}{
		"userId":     user.ID,
		"email":      user.Email,
		"role":       user.Role,
		"approvedBy": approver.ID,
	})

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().SetApproved(ctx, userID); err != nil {
			return err
		}
		return s.notifier.Record(ctx, tx, event)
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to approve user: %w", err)
	}
	user.Approved = true

	s.logger.Info("user approved",
		"user_id", user.ID,
		"role", user.Role,
		"approved_by", approver.ID)

	s.notifier.Publish(event)

	return user, nil
}
