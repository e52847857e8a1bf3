package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/notes-service/internal/services"
	"github.com/SAP-F-2025/notes-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	BaseHandler
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   NewBaseHandler(logger),
		reportService: reportService,
	}
}

// NotesCatalog exports all notes as xlsx
// @Summary Export notes catalog
// @Description Exports every note as an xlsx workbook; admins only
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200
// @Failure 403 {object} ErrorResponse
// @Router /reports/notes [get]
func (h *ReportHandler) NotesCatalog(c *gin.Context) {
	data, err := h.reportService.NotesCatalog(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("notes-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// UserRoster exports all users as xlsx
// @Summary Export user roster
// @Description Exports every registered user as an xlsx workbook; admins only
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200
// @Failure 403 {object} ErrorResponse
// @Router /reports/users [get]
func (h *ReportHandler) UserRoster(c *gin.Context) {
	data, err := h.reportService.UserRoster(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("users-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
