package validator

import (
	"testing"

	"github.com/SAP-F-2025/notes-service/internal/models"
)

func hasField(errs ValidationErrors, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidator_Register(t *testing.T) {
	v := New()

	t.Run("valid request passes", func(t *testing.T) {
		errs := v.GetBusinessValidator().ValidateRegister(&RegisterRequest{
			Email:    "teacher@example.com",
			Password: "secret123",
			FullName: "Taylor Teacher",
			Role:     models.RoleTeacher,
		})
		if len(errs) != 0 {
			t.Errorf("Expected no errors, got %v", errs)
		}
	})

	t.Run("whitespace-only full name is rejected", func(t *testing.T) {
		errs := v.GetBusinessValidator().ValidateRegister(&RegisterRequest{
			Email:    "teacher@example.com",
			Password: "secret123",
			FullName: "   ",
			Role:     models.RoleTeacher,
		})
		if !hasField(errs, "fullname") {
			t.Errorf("Expected a fullname failure, got %v", errs)
		}
	})

	t.Run("collects all field failures", func(t *testing.T) {
		errs := v.GetBusinessValidator().ValidateRegister(&RegisterRequest{
			Email:    "not-an-email",
			Password: "123",
			FullName: "",
			Role:     "principal",
		})
		for _, field := range []string{"email", "password", "fullname", "role"} {
			if !hasField(errs, field) {
				t.Errorf("Expected a failure for %s, got %v", field, errs)
			}
		}
	})
}

func TestValidator_LinkUpload(t *testing.T) {
	v := New()

	base := func() *LinkUploadRequest {
		return &LinkUploadRequest{
			Title:       "Playlist",
			Description: "Videos",
			Department:  "CS",
			Year:        "2",
			Subject:     "Algorithms",
			LinkURL:     "https://example.com/videos",
		}
	}

	t.Run("valid link passes", func(t *testing.T) {
		if errs := v.GetBusinessValidator().ValidateLinkUpload(base()); len(errs) != 0 {
			t.Errorf("Expected no errors, got %v", errs)
		}
	})

	t.Run("relative URL is rejected", func(t *testing.T) {
		req := base()
		req.LinkURL = "/videos/lecture1"
		if errs := v.GetBusinessValidator().ValidateLinkUpload(req); !hasField(errs, "linkurl") {
			t.Errorf("Expected a linkurl failure, got %v", errs)
		}
	})

	t.Run("missing required fields are reported", func(t *testing.T) {
		req := base()
		req.Title = ""
		req.Subject = ""
		errs := v.GetBusinessValidator().ValidateLinkUpload(req)
		if !hasField(errs, "title") || !hasField(errs, "subject") {
			t.Errorf("Expected title and subject failures, got %v", errs)
		}
	})
}

func TestValidator_NoteUpdate(t *testing.T) {
	v := New()

	t.Run("empty update passes", func(t *testing.T) {
		if errs := v.GetBusinessValidator().ValidateNoteUpdate(&NoteUpdateRequest{}); len(errs) != 0 {
			t.Errorf("Expected no errors for an empty update, got %v", errs)
		}
	})

	t.Run("blank title is rejected", func(t *testing.T) {
		empty := ""
		errs := v.GetBusinessValidator().ValidateNoteUpdate(&NoteUpdateRequest{Title: &empty})
		if !hasField(errs, "title") {
			t.Errorf("Expected a title failure, got %v", errs)
		}
	})
}
