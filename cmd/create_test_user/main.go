package main

import (
	"context"
	"errors"
	"log"

	"todo_backend/internal/config"
	"todo_backend/internal/db"
	"todo_backend/internal/repository"
	"todo_backend/internal/service"
)

// Seeds a dev account and prints a ready-to-use session token.
func main() {
	cfg := config.Load()

	pool := db.Connect(cfg.DatabaseURL)
	defer pool.Close()

	rdb := db.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rdb.Close()

	users := repository.NewUserRepository(pool)
	auth := service.NewAuthService(users)
	sessions := service.NewSessionService(rdb, cfg.SessionSecret, cfg.SessionLifetime, cfg.SessionRefreshWindow)

	ctx := context.Background()

	const email = "tester@example.com"
	const password = "test-password-123"

	user, err := auth.SignUp(ctx, email, password)
	if err != nil {
		if !errors.Is(err, service.ErrEmailTaken) {
			log.Fatalf("sign up failed: %v", err)
		}
		user, err = auth.SignIn(ctx, email, password)
		if err != nil {
			log.Fatalf("sign in failed: %v", err)
		}
		log.Printf("user already exists id=%d\n", user.ID)
	} else {
		log.Printf("user created id=%d\n", user.ID)
	}

	token, _, err := sessions.Issue(ctx, user)
	if err != nil {
		log.Fatalf("failed to open session: %v", err)
	}
	log.Printf("email=%s password=%s\n", email, password)
	log.Printf("token=%s\n", token)
}
