package services

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/notes-service/internal/models"
)

func TestReportService_NotesCatalog(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	svc := NewReportService(repo, logger)

	notes := []*models.Note{
		{ID: uuid.NewString(), Title: "Calculus I", Department: "Math", Year: "1", Subject: "Calculus", UploadedByName: "Taylor", FileName: "a.pdf"},
		{ID: uuid.NewString(), Title: "Playlist", Department: "CS", Year: "2", Subject: "Algorithms", UploadedByName: "Jordan", LinkURL: "https://example.com"},
	}
	for _, n := range notes {
		if err := repo.Note().Create(ctx, n); err != nil {
			t.Fatalf("Seed failed: %v", err)
		}
	}

	data, err := svc.NotesCatalog(ctx)
	if err != nil {
		t.Fatalf("NotesCatalog failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Export is not a valid workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Notes")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Title" {
		t.Errorf("Expected Title header, got %s", rows[0][0])
	}
}

func TestReportService_UserRoster(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	svc := NewReportService(repo, logger)

	seedUser(t, repo, models.RoleStudent, false)
	seedUser(t, repo, models.RoleAdmin, true)
	seedUser(t, repo, models.RoleTeacher, true)

	data, err := svc.UserRoster(ctx)
	if err != nil {
		t.Fatalf("UserRoster failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Export is not a valid workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Users")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d", len(rows))
	}

	// Rows are grouped by role: admins, then teachers, then students
	if rows[1][2] != "admin" || rows[2][2] != "teacher" || rows[3][2] != "student" {
		t.Errorf("Expected role grouping admin/teacher/student, got %s/%s/%s", rows[1][2], rows[2][2], rows[3][2])
	}
}
