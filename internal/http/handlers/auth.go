package handlers

import (
	"errors"
	"net/http"

	"todo_backend/internal/domain"
	"todo_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func userJSON(u *domain.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"uuid":       u.UUID,
		"email":      u.Email,
		"created_at": u.CreatedAt,
	}
}

// SignUp registers a new account and opens a session for it.
func (h *Handler) SignUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Auth.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadEmail), errors.Is(err, service.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		}
		return
	}

	token, _, err := h.Sessions.Issue(ctx, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open session"})
		return
	}

	go h.Audit.Record(user.ID, domain.AuditSignUp, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": userJSON(user)})
}

// SignIn checks credentials and opens a session.
func (h *Handler) SignIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign-in failed"})
		return
	}

	token, _, err := h.Sessions.Issue(ctx, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open session"})
		return
	}

	go h.Audit.Record(user.ID, domain.AuditSignIn, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"token": token, "user": userJSON(user)})
}

// SignOut revokes the current session; the token is unusable afterwards.
func (h *Handler) SignOut(c *gin.Context) {
	userID, _ := sessionUserID(c)
	sid := c.GetString("sid")
	if sid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session"})
		return
	}

	if err := h.Sessions.Revoke(c.Request.Context(), sid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign-out failed"})
		return
	}

	go h.Audit.Record(userID, domain.AuditSignOut, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
