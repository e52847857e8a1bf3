package repositories

import (
	"context"

	"github.com/SAP-F-2025/notes-service/internal/models"
)

// UserRepository owns the user store.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// ListPendingByRole returns unapproved users of the given role in
	// store (insertion) order.
	ListPendingByRole(ctx context.Context, role models.UserRole) ([]*models.User, error)

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	// SetApproved flips the one-way approved flag.
	SetApproved(ctx context.Context, id string) error

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
}
