package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// ValidRole reports whether the role is one of the registerable roles.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:255"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	FullName string   `json:"fullName" gorm:"not null;size:100"`
	Role     UserRole `json:"role" gorm:"not null;size:20;index"`

	// Bcrypt hash, never serialized.
	PasswordHash string `json:"-" gorm:"not null;size:255"`

	// Approved gates login: admins approve teachers, teachers approve students.
	Approved bool `json:"approved" gorm:"not null;default:false;index"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// SessionUser is the identity bound to a session after login.
type SessionUser struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"fullName"`
	Role     UserRole `json:"role"`
}

// SessionUserFrom strips a user down to the fields carried in the session.
func SessionUserFrom(u *User) SessionUser {
	return SessionUser{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
