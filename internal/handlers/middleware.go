package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// userIDKey is the gin context key holding the authenticated user id.
const userIDKey = "userId"

// sessionMiddleware resolves the session cookie. No cookie, an expired
// record, or a tampered value all leave the request anonymous, which on
// protected routes means 401 before any service is touched.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	value, err := c.Cookie(sessionCookieName)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMsgAuthRequired})
		return
	}

	userID, err := h.services.Sessions.Resolve(c.Request.Context(), value)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMsgAuthRequired})
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}

// currentUserID returns the user id stored by sessionMiddleware.
func currentUserID(c *gin.Context) int {
	return c.GetInt(userIDKey)
}
