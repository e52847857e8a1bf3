package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/notes-service/internal/repositories"
	"github.com/SAP-F-2025/notes-service/internal/services"
	"github.com/SAP-F-2025/notes-service/internal/utils"
	"github.com/SAP-F-2025/notes-service/internal/validator"
)

type NoteHandler struct {
	BaseHandler
	noteService services.NoteService
	validator   *validator.Validator
}

func NewNoteHandler(
	noteService services.NoteService,
	validator *validator.Validator,
	logger utils.Logger,
) *NoteHandler {
	return &NoteHandler{
		BaseHandler: NewBaseHandler(logger),
		noteService: noteService,
		validator:   validator,
	}
}

// ListNotes lists notes with optional filters
// @Summary List notes
// @Description Lists notes filtered by department, year, subject and search text
// @Tags notes
// @Produce json
// @Param department query string false "Department filter"
// @Param year query string false "Year filter"
// @Param subject query string false "Subject filter"
// @Param search query string false "Search in title and description"
// @Param sortBy query string false "Sort order: newest, oldest, title"
// @Success 200 {array} models.Note
// @Failure 401 {object} ErrorResponse
// @Router /notes [get]
func (h *NoteHandler) ListNotes(c *gin.Context) {
	filters := repositories.NoteFilters{
		Department: c.Query("department"),
		Year:       c.Query("year"),
		Subject:    c.Query("subject"),
		Search:     c.Query("search"),
		SortBy:     c.Query("sortBy"),
	}

	notes, err := h.noteService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notes)
}

// GetNote retrieves a note by ID
// @Summary Get note
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} models.Note
// @Failure 404 {object} ErrorResponse
// @Router /notes/{id} [get]
func (h *NoteHandler) GetNote(c *gin.Context) {
	note, err := h.noteService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// UploadNote uploads a file note
// @Summary Upload note
// @Description Uploads a file with its metadata; teachers only
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Note file"
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param department formData string true "Department"
// @Param year formData string true "Year"
// @Param subject formData string true "Subject"
// @Success 201 {object} models.Note
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /notes [post]
func (h *NoteHandler) UploadNote(c *gin.Context) {
	uploader, ok := GetSessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication required",
		})
		return
	}

	req := services.NoteUploadRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Department:  c.PostForm("department"),
		Year:        c.PostForm("year"),
		Subject:     c.PostForm("subject"),
	}

	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	note, err := h.noteService.Upload(c.Request.Context(), uploader, &req, file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Note uploaded", "note_id", note.ID)

	c.JSON(http.StatusCreated, note)
}

// UploadLink creates a link note
// @Summary Upload link note
// @Description Creates a note that points to an external URL; teachers only
// @Tags notes
// @Accept json
// @Produce json
// @Param note body services.LinkUploadRequest true "Link note data"
// @Success 201 {object} models.Note
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /notes/link [post]
func (h *NoteHandler) UploadLink(c *gin.Context) {
	uploader, ok := GetSessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication required",
		})
		return
	}

	var req services.LinkUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	note, err := h.noteService.UploadLink(c.Request.Context(), uploader, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Link note created", "note_id", note.ID)

	c.JSON(http.StatusCreated, note)
}

// UpdateNote applies a partial edit to a note
// @Summary Update note
// @Description Edits a note's metadata; only the uploader may edit
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param note body services.NoteUpdateRequest true "Fields to update"
// @Success 200 {object} models.Note
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /notes/{id} [put]
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	actor, ok := GetSessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication required",
		})
		return
	}

	var req services.NoteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// DeleteNote removes a note
// @Summary Delete note
// @Description Deletes a note and its stored file; only the uploader may delete
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	actor, ok := GetSessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication required",
		})
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Note deleted",
	})
}

// DownloadNote serves a note's file and counts the download
// @Summary Download note
// @Description Serves the stored file as an attachment; link notes redirect to their URL
// @Tags notes
// @Produce octet-stream
// @Param id path string true "Note ID"
// @Success 200
// @Failure 404 {object} ErrorResponse
// @Router /notes/{id}/download [get]
func (h *NoteHandler) DownloadNote(c *gin.Context) {
	result, err := h.noteService.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if result.LinkURL != "" {
		c.Redirect(http.StatusFound, result.LinkURL)
		return
	}

	c.FileAttachment(result.Path, result.OriginalFileName)
}

// GetMetadata returns the distinct filter values
// @Summary Get metadata
// @Description Returns the sorted distinct departments, years and subjects
// @Tags notes
// @Produce json
// @Success 200 {object} models.Metadata
// @Router /metadata [get]
func (h *NoteHandler) GetMetadata(c *gin.Context) {
	meta, err := h.noteService.Metadata(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, meta)
}
