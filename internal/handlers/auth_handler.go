package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/notes-service/internal/services"
	"github.com/SAP-F-2025/notes-service/internal/utils"
	"github.com/SAP-F-2025/notes-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	validator   *validator.Validator
	sessionTTL  time.Duration
}

func NewAuthHandler(
	authService services.AuthService,
	validator *validator.Validator,
	sessionTTL time.Duration,
	logger utils.Logger,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		validator:   validator,
		sessionTTL:  sessionTTL,
	}
}

// Register creates a new pending account
// @Summary Register
// @Description Creates an account that awaits approval before it can log in
// @Tags auth
// @Accept json
// @Produce json
// @Param user body services.RegisterRequest true "Registration data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "User registered", "user_id", user.ID, "role", user.Role)

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Registration successful. Your account is pending approval.",
		Data:    user,
	})
}

// Login authenticates credentials and opens a session
// @Summary Login
// @Description Authenticates a user and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginRequest true "Credentials"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.SetCookie(SessionCookieName, result.Token, int(h.sessionTTL.Seconds()), "/", "", false, true)

	h.LogRequest(c, "User logged in", "user_id", result.User.ID)

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Login successful",
		Data:    result.User,
	})
}

// Logout destroys the session
// @Summary Logout
// @Description Destroys the current session and clears the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(SessionCookieName)

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Logged out",
	})
}

// Me returns the authenticated identity
// @Summary Current user
// @Description Returns the identity bound to the session
// @Tags auth
// @Produce json
// @Success 200 {object} models.SessionUser
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := GetSessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication required",
		})
		return
	}

	c.JSON(http.StatusOK, user)
}
