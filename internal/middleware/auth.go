package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fileupload/internal/domain"
	"fileupload/internal/service"
)

const ContextKeySession = "session"

// AuthMiddleware returns Gin middleware that resolves the caller's session
// from a Bearer token or, failing that, the session cookie. Requests
// without a valid session are aborted with 401 before any handler runs.
func AuthMiddleware(authService service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" && cookieName != "" {
			token, _ = c.Cookie(cookieName)
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		session, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil || session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(ContextKeySession, session)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// GetSession extracts the caller's session from the Gin context.
func GetSession(c *gin.Context) (*domain.Session, error) {
	val, exists := c.Get(ContextKeySession)
	if !exists {
		return nil, domain.ErrUnauthorized
	}
	session, ok := val.(*domain.Session)
	if !ok || session == nil {
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}
