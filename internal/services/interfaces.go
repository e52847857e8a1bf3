package services

import (
	"context"
	"mime/multipart"

	"github.com/SAP-F-2025/notes-service/internal/models"
	"github.com/SAP-F-2025/notes-service/internal/repositories"
	"github.com/SAP-F-2025/notes-service/internal/validator"
)

// ===== REQUEST TYPES =====

type (
	RegisterRequest   = validator.RegisterRequest
	LoginRequest      = validator.LoginRequest
	NoteUploadRequest = validator.NoteUploadRequest
	LinkUploadRequest = validator.LinkUploadRequest
	NoteUpdateRequest = validator.NoteUpdateRequest
)

// LoginResult pairs the authenticated identity with its session token.
type LoginResult struct {
	User  models.SessionUser
	Token string
}

// DownloadResult resolves a note to the blob served for it, or to the
// external URL for link notes.
type DownloadResult struct {
	Path             string
	OriginalFileName string
	LinkURL          string
}

// ===== SERVICE INTERFACES =====

// AuthService owns registration, login and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*models.SessionUser, error)
}

// ApprovalService owns the hierarchical approval workflow.
type ApprovalService interface {
	ListPending(ctx context.Context, approver models.SessionUser) ([]*models.User, error)
	Approve(ctx context.Context, approver models.SessionUser, userID string) (*models.User, error)
}

// NoteService owns the note catalog.
type NoteService interface {
	List(ctx context.Context, filters repositories.NoteFilters) ([]*models.Note, error)
	GetByID(ctx context.Context, id string) (*models.Note, error)
	Upload(ctx context.Context, uploader models.SessionUser, req *NoteUploadRequest, file *multipart.FileHeader) (*models.Note, error)
	UploadLink(ctx context.Context, uploader models.SessionUser, req *LinkUploadRequest) (*models.Note, error)
	Update(ctx context.Context, actor models.SessionUser, id string, req *NoteUpdateRequest) (*models.Note, error)
	Delete(ctx context.Context, actor models.SessionUser, id string) error
	Download(ctx context.Context, id string) (*DownloadResult, error)
	Metadata(ctx context.Context) (*models.Metadata, error)
}

// ReportService builds xlsx exports for administrators.
type ReportService interface {
	NotesCatalog(ctx context.Context) ([]byte, error)
	UserRoster(ctx context.Context) ([]byte, error)
}

// ServiceManager wires all services over shared infrastructure.
type ServiceManager interface {
	Initialize(ctx context.Context) error

	GetAuthService() AuthService
	GetApprovalService() ApprovalService
	GetNoteService() NoteService
	GetReportService() ReportService

	Shutdown() error
}
