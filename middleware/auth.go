package middleware

import (
	"errors"
	"net/http"

	apperrors "storefront/errors"
	"storefront/models"
	"storefront/repository"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the session cookie.
const SessionCookie = "session_id"

// Context keys set by RequireAuth.
const (
	SessionIDKey = "sessionID"
	SessionKey   = "session"
	UserIDKey    = "userID"
	RoleKey      = "role"
)

// RequireAuth resolves the session cookie against the session store and
// stores the caller's identity in the request context. Requests without
// a live session are rejected.
func RequireAuth(sessions repository.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required."})
			return
		}

		session, err := sessions.Get(c.Request.Context(), sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": apperrors.ErrInternalServer.Message})
			return
		}
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrSessionExpired.Message})
			return
		}

		c.Set(SessionIDKey, sessionID)
		c.Set(SessionKey, session)
		c.Set(UserIDKey, session.UserID)
		c.Set(RoleKey, session.Role)
		c.Next()
	}
}

// RequireAdmin gates a route on the admin role. Must run after
// RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(RoleKey)
		if !exists || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": apperrors.ErrForbidden.Message})
			return
		}
		c.Next()
	}
}

// GetSession returns the session and its ID placed by RequireAuth.
func GetSession(c *gin.Context) (string, *models.Session, error) {
	id, ok := c.Get(SessionIDKey)
	if !ok {
		return "", nil, errors.New("session ID not found in context")
	}
	val, ok := c.Get(SessionKey)
	if !ok {
		return "", nil, errors.New("session not found in context")
	}
	session, ok := val.(*models.Session)
	if !ok {
		return "", nil, errors.New("session has unexpected type")
	}
	return id.(string), session, nil
}
