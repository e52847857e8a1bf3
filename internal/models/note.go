package models

import (
	"time"
)

// Note is a shared resource tagged by department/year/subject. Exactly one
// of the two variants is populated: a stored file (FileName set) or an
// external link (LinkURL set).
type Note struct {
	ID          string `json:"id" gorm:"primaryKey;size:255"`
	Title       string `json:"title" gorm:"not null;size:200"`
	Description string `json:"description" gorm:"not null;size:2000"`
	Department  string `json:"department" gorm:"not null;size:100;index"`
	Year        string `json:"year" gorm:"not null;size:20;index"`
	Subject     string `json:"subject" gorm:"not null;size:100;index"`

	// File variant
	FileType         string `json:"fileType,omitempty" gorm:"size:20"`
	FileName         string `json:"fileName,omitempty" gorm:"size:255"`
	OriginalFileName string `json:"originalFileName,omitempty" gorm:"size:255"`
	FileSize         int64  `json:"fileSize,omitempty"`

	// Link variant
	LinkURL      string `json:"linkUrl,omitempty" gorm:"size:2000"`
	LinkPlatform string `json:"linkPlatform,omitempty" gorm:"size:50"`

	UploadedBy     string `json:"uploadedBy" gorm:"not null;size:255;index"`
	UploadedByName string `json:"uploadedByName" gorm:"not null;size:100"`

	Downloads int `json:"downloads" gorm:"not null;default:0"`

	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime;index"`

	// Set only by explicit edits, never by gorm's update callbacks, so a
	// note that was never edited carries no updatedAt.
	UpdatedAt *time.Time `json:"updatedAt,omitempty" gorm:"autoUpdateTime:false"`
}

func (Note) TableName() string {
	return "notes"
}

// IsLink reports whether the note is the link variant.
func (n *Note) IsLink() bool {
	return n.LinkURL != ""
}
