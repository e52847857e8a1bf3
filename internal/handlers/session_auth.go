package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/notes-service/internal/models"
	"github.com/SAP-F-2025/notes-service/internal/services"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "notes_session"

// SessionAuthMiddleware resolves the session cookie to a user identity.
type SessionAuthMiddleware struct {
	authService services.AuthService
}

func NewSessionAuthMiddleware(authService services.AuthService) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{authService: authService}
}

// AuthMiddleware rejects requests without a valid session and attaches the
// identity to the gin context.
func (m *SessionAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		user, err := m.authService.CurrentUser(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", *user)
		c.Set("user_role", user.Role)
		c.Set("session_token", token)

		c.Next()
	}
}

// RequireRoleMiddleware restricts a route to the given roles. It must run
// after AuthMiddleware.
func (m *SessionAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("user_role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		role, ok := roleValue.(models.UserRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Message: "Operation not permitted",
		})
	}
}

// GetSessionUser returns the authenticated identity from the gin context.
func GetSessionUser(c *gin.Context) (models.SessionUser, bool) {
	v, exists := c.Get("user")
	if !exists {
		return models.SessionUser{}, false
	}
	user, ok := v.(models.SessionUser)
	return user, ok
}
