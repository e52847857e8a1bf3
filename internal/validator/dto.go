package validator

import "github.com/SAP-F-2025/notes-service/internal/models"

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Email    string          `json:"email" validate:"required,email,max=255"`
	Password string          `json:"password" validate:"required,min=6,max=128"`
	FullName string          `json:"fullName" validate:"required,min=1,max=100"`
	Role     models.UserRole `json:"role" validate:"required,oneof=admin teacher student"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// NoteUploadRequest carries the metadata fields of a file upload. The file
// itself arrives as multipart content alongside these fields.
type NoteUploadRequest struct {
	Title       string `form:"title" json:"title" validate:"required,max=200"`
	Description string `form:"description" json:"description" validate:"required,max=2000"`
	Department  string `form:"department" json:"department" validate:"required,max=100"`
	Year        string `form:"year" json:"year" validate:"required,max=20"`
	Subject     string `form:"subject" json:"subject" validate:"required,max=100"`
}

// LinkUploadRequest is the payload for link notes.
type LinkUploadRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"required,max=2000"`
	Department   string `json:"department" validate:"required,max=100"`
	Year         string `json:"year" validate:"required,max=20"`
	Subject      string `json:"subject" validate:"required,max=100"`
	LinkURL      string `json:"linkUrl" validate:"required,url,max=2000"`
	LinkPlatform string `json:"linkPlatform" validate:"omitempty,max=50"`
}

// NoteUpdateRequest applies partial updates; nil fields are retained.
type NoteUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,min=1,max=2000"`
	Department  *string `json:"department" validate:"omitempty,min=1,max=100"`
	Year        *string `json:"year" validate:"omitempty,min=1,max=20"`
	Subject     *string `json:"subject" validate:"omitempty,min=1,max=100"`
}
