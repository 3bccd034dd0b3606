package middleware

import (
	"errors"
	"net/http"
	"strings"

	"todo_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// RefreshHeader carries a replacement token when the session was renewed
// during the request; clients adopt it transparently.
const RefreshHeader = "X-Session-Token"

// Session rejects requests without a valid session token before any domain
// logic runs. The token is taken from "Authorization: Bearer <token>".
func Session(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}

		sess, refreshed, err := sessions.Validate(c.Request.Context(), token)
		if err != nil {
			// a session-store outage is not the caller's fault and must not
			// look like a sign-out
			if errors.Is(err, service.ErrSessionInvalid) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
				return
			}
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable"})
			return
		}

		if refreshed != "" {
			c.Header(RefreshHeader, refreshed)
		}

		c.Set("user_id", sess.UserID)
		c.Set("email", sess.Email)
		c.Set("sid", sess.SID)
		c.Next()
	}
}
