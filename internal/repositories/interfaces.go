package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

// Sort orders accepted by note listing. Empty keeps insertion order.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortTitle  = "title"
)

// NoteFilters narrows note listing. Department/Year/Subject are exact
// matches; Search is a case-insensitive substring match against title or
// description. All provided filters AND together.
type NoteFilters struct {
	Department string `json:"department"`
	Year       string `json:"year"`
	Subject    string `json:"subject"`
	Search     string `json:"search"`
	SortBy     string `json:"sort_by"`
}

// UserFilters narrows user listing.
type UserFilters struct {
	Query  string // Search query for name or email
	Limit  int
	Offset int
}

// IsNotFoundError reports whether err is a record-not-found failure.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
