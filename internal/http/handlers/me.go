package handlers

import (
	"net/http"

	"todo_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// Me returns the current account plus its recent activity.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	// activity is best-effort; the account payload is still useful without it
	activity, err := h.Audit.Recent(ctx, userID, 20)
	if err != nil {
		logger.Warn("failed to load recent activity", "user_id", userID, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     userJSON(user),
		"activity": activity,
	})
}
