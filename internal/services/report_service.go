package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/notes-service/internal/models"
	"github.com/SAP-F-2025/notes-service/internal/repositories"
)

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// NotesCatalog exports every note as an xlsx workbook.
func (s *reportService) NotesCatalog(ctx context.Context) ([]byte, error) {
	notes, err := s.repo.Note().List(ctx, repositories.NoteFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Notes"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Title", "Description", "Department", "Year", "Subject", "Type", "Uploaded By", "Downloads", "Uploaded At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, note := range notes {
		kind := "file"
		if note.IsLink() {
			kind = "link"
		}
		values := []interface{}{
			note.Title,
			note.Description,
			note.Department,
			note.Year,
			note.Subject,
			kind,
			note.UploadedByName,
			note.Downloads,
			note.Timestamp.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("notes catalog exported", "note_count", len(notes))
	return buf.Bytes(), nil
}

// UserRoster exports every registered user, grouped by role.
func (s *reportService) UserRoster(ctx context.Context) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Users"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Full Name", "Email", "Role", "Approved", "Registered At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	users, _, err := s.repo.User().List(ctx, repositories.UserFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	row := 2
	for _, role := range []models.UserRole{models.RoleAdmin, models.RoleTeacher, models.RoleStudent} {
		for _, u := range users {
			if u.Role != role {
				continue
			}
			values := []interface{}{
				u.FullName,
				u.Email,
				string(u.Role),
				u.Approved,
				u.CreatedAt.Format("2006-01-02 15:04:05"),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("user roster exported", "user_count", len(users))
	return buf.Bytes(), nil
}
