package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/notes-service/internal/config"
	"github.com/SAP-F-2025/notes-service/internal/models"
	"github.com/SAP-F-2025/notes-service/internal/services"
	"github.com/SAP-F-2025/notes-service/internal/utils"
	"github.com/SAP-F-2025/notes-service/internal/validator"
)

type HandlerManager struct {
	authHandler     *AuthHandler
	approvalHandler *ApprovalHandler
	noteHandler     *NoteHandler
	reportHandler   *ReportHandler
	authMiddleware  *SessionAuthMiddleware

	uploadDir string
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	cfg *config.Config,
	logger utils.Logger,
) *HandlerManager {
	authMiddleware := NewSessionAuthMiddleware(serviceManager.GetAuthService())

	return &HandlerManager{
		authHandler:     NewAuthHandler(serviceManager.GetAuthService(), validator, cfg.SessionTTL, logger),
		approvalHandler: NewApprovalHandler(serviceManager.GetApprovalService(), logger),
		noteHandler:     NewNoteHandler(serviceManager.GetNoteService(), validator, logger),
		reportHandler:   NewReportHandler(serviceManager.GetReportService(), logger),
		authMiddleware:  authMiddleware,
		uploadDir:       cfg.UploadDir,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "notes-service",
		})
	})

	// Stored note files served directly
	router.Static("/uploads", hm.uploadDir)

	v1 := router.Group("/api/v1")
	{
		// Auth routes, registration and login are public
		auth := v1.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/login", hm.authHandler.Login)
			auth.POST("/logout", hm.authHandler.Logout)
			auth.GET("/me", hm.authMiddleware.AuthMiddleware(), hm.authHandler.Me)
		}

		// Approval routes - admins approve teachers, teachers approve students
		approvals := v1.Group("/approvals")
		approvals.Use(hm.authMiddleware.AuthMiddleware())
		{
			approvals.GET("/pending", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin, models.RoleTeacher), hm.approvalHandler.ListPending)
			approvals.POST("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin, models.RoleTeacher), hm.approvalHandler.Approve)
		}

		// Note routes - all authenticated users can browse and download
		notes := v1.Group("/notes")
		notes.Use(hm.authMiddleware.AuthMiddleware())
		{
			notes.GET("", hm.noteHandler.ListNotes)
			notes.GET("/:id", hm.noteHandler.GetNote)

			// GET serves the blob; POST counts an access without a body,
			// which link notes use when the client opens the URL itself
			notes.GET("/:id/download", hm.noteHandler.DownloadNote)
			notes.POST("/:id/download", hm.noteHandler.DownloadNote)

			// Mutations - teachers only
			notes.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.noteHandler.UploadNote)
			notes.POST("/link", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.noteHandler.UploadLink)
			notes.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.noteHandler.UpdateNote)
			notes.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.noteHandler.DeleteNote)
		}

		// Metadata for filter dropdowns, open so the landing page can
		// populate before login
		v1.GET("/metadata", hm.noteHandler.GetMetadata)

		// Reports - admins only
		reports := v1.Group("/reports")
		reports.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			reports.GET("/notes", hm.reportHandler.NotesCatalog)
			reports.GET("/users", hm.reportHandler.UserRoster)
		}
	}
}
