package models

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

func TestNoteSchema_Timestamps(t *testing.T) {
	s, err := schema.Parse(&Note{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("Failed to parse schema: %v", err)
	}

	t.Run("timestamp is stamped on create", func(t *testing.T) {
		field := s.LookUpField("Timestamp")
		if field == nil {
			t.Fatal("Timestamp field not found")
		}
		if field.AutoCreateTime == 0 {
			t.Error("Timestamp must be stamped automatically on create")
		}
	})

	t.Run("updatedAt is not stamped automatically", func(t *testing.T) {
		field := s.LookUpField("UpdatedAt")
		if field == nil {
			t.Fatal("UpdatedAt field not found")
		}
		if field.AutoUpdateTime != 0 {
			t.Error("UpdatedAt must be set only by explicit edits, not by gorm callbacks")
		}
		if field.AutoCreateTime != 0 {
			t.Error("UpdatedAt must stay nil for a freshly created note")
		}
	})
}

func TestNote_IsLink(t *testing.T) {
	file := &Note{FileName: "stored.pdf"}
	if file.IsLink() {
		t.Error("File notes are not link notes")
	}

	link := &Note{LinkURL: "https://example.com"}
	if !link.IsLink() {
		t.Error("Notes with a URL are link notes")
	}
}
