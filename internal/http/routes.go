package http

import (
	"todo_backend/internal/config"
	"todo_backend/internal/http/handlers"
	"todo_backend/internal/http/middleware"
	"todo_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"
)

// RegisterRoutes wires the full API surface. The session middleware guards
// everything under /api except sign-up and sign-in.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, version string) {
	sessions := service.NewSessionService(rdb, cfg.SessionSecret, cfg.SessionLifetime, cfg.SessionRefreshWindow)
	h := handlers.NewHandler(db, sessions)
	healthHandler := handlers.NewHealthHandler(db, rdb, version)

	middleware.InitRateLimiter(rdb)
	auth := middleware.Session(sessions)

	// Health checks, no rate limiting
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	// Auth: sign-up and sign-in get the tighter window
	authRL := middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)
	api.POST("/auth/signup", authRL, h.SignUp)
	api.POST("/auth/signin", authRL, h.SignIn)
	api.POST("/auth/signout", auth, h.SignOut)

	api.GET("/me", auth, h.Me)

	// Tasks, scoped by the :user_id path segment which must match the
	// session identity
	tasks := api.Group("/:user_id/tasks")
	tasks.Use(auth)
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", h.CreateTask)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
		tasks.PATCH("/:id/complete", h.ToggleTask)
	}
}
