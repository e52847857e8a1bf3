package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/notes-service/internal/validator"
)

// Sentinel errors returned by services. Handlers map these to HTTP status
// codes.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPendingApproval    = errors.New("account pending approval")
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrFileNotFound       = errors.New("file not found")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("operation not permitted")
)

// ValidationErrors re-exported so callers match on one package.
type (
	ValidationError  = validator.ValidationError
	ValidationErrors = validator.ValidationErrors
)

// PermissionError carries which action was denied and for whom.
type PermissionError struct {
	UserID   string
	Action   string
	Resource string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %s is not permitted to %s %s", e.UserID, e.Action, e.Resource)
}

func NewPermissionError(userID, action, resource string) *PermissionError {
	return &PermissionError{UserID: userID, Action: action, Resource: resource}
}
