package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/notes-service/internal/services"
	"github.com/SAP-F-2025/notes-service/internal/utils"
)

type ApprovalHandler struct {
	BaseHandler
	approvalService services.ApprovalService
}

func NewApprovalHandler(approvalService services.ApprovalService, logger utils.Logger) *ApprovalHandler {
	return &ApprovalHandler{
		BaseHandler:     NewBaseHandler(logger),
		approvalService: approvalService,
	}
}

// ListPending lists users awaiting the caller's approval
// @Summary List pending users
// @Description Lists unapproved users the caller is responsible for
// @Tags approvals
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /approvals/pending [get]
func (h *ApprovalHandler) ListPending(c *gin.Context) {
	approver, ok := GetSessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication required",
		})
		return
	}

	users, err := h.approvalService.ListPending(c.Request.Context(), approver)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Approve grants login to a pending user
// @Summary Approve user
// @Description Approves a pending user the caller is responsible for
// @Tags approvals
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /approvals/{id} [post]
func (h *ApprovalHandler) Approve(c *gin.Context) {
	approver, ok := GetSessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication required",
		})
		return
	}

	userID := c.Param("id")

	user, err := h.approvalService.Approve(c.Request.Context(), approver, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "User approved", "user_id", user.ID, "approved_by", approver.ID)

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "User approved",
		Data:    user,
	})
}
