package middleware

import (
	"net/http"
	"strings"

	"panditseva/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionKey = "session"

// SessionVerifier turns a bearer token into a session.
type SessionVerifier interface {
	SessionFromToken(token string) (models.Session, error)
}

// JWTAuthMiddleware requires a valid bearer token and stores the session it
// carries on the gin context.
func JWTAuthMiddleware(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		session, err := verifier.SessionFromToken(tokenString)
		if err != nil {
			zap.L().Debug("Rejected session token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequireRole lets through only sessions with the given role. It must run
// after JWTAuthMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := SessionFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		if s.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "This action requires the " + string(role) + " role"})
			return
		}
		c.Next()
	}
}

// SessionFrom returns the session set by JWTAuthMiddleware.
func SessionFrom(c *gin.Context) (models.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return models.Session{}, false
	}
	s, ok := v.(models.Session)
	return s, ok
}

// WithSession stores a session on the context. Used by tests and by callers
// that authenticate by other means.
func WithSession(c *gin.Context, s models.Session) {
	c.Set(sessionKey, s)
}
