package handlers

import (
	"net/http"
	"strings"

	"wiki_system/internal/session"

	"github.com/gin-gonic/gin"
)

const ctxSessionKey = "session"

// sessionMiddleware resolves the bearer token to a live session.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	sessionID, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	s, err := h.sessions.Get(sessionID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "session not found",
		})
		return
	}

	c.Set(ctxSessionKey, s)
	c.Next()
}

// currentSession returns the session stored by sessionMiddleware.
func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(ctxSessionKey).(*session.Session)
}
