package handlers

import (
	"todo_backend/internal/repository"
	"todo_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB       *pgxpool.Pool
	Tasks    *service.TaskService
	Auth     *service.AuthService
	Sessions *service.SessionService
	Audit    *service.AuditService
	Users    *repository.UserRepository
}

func NewHandler(db *pgxpool.Pool, sessions *service.SessionService) *Handler {
	users := repository.NewUserRepository(db)
	return &Handler{
		DB:       db,
		Tasks:    service.NewTaskService(repository.NewTaskRepository(db)),
		Auth:     service.NewAuthService(users),
		Sessions: sessions,
		Audit:    service.NewAuditService(db),
		Users:    users,
	}
}

// sessionUserID extracts the authenticated user id set by the session
// middleware.
func sessionUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
