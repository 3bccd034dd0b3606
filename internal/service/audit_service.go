package service

import (
	"context"
	"time"

	"todo_backend/internal/domain"
	"todo_backend/internal/logger"
	"todo_backend/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditService records auth events and task mutations. Writes are
// best-effort: a failed audit insert is logged and never surfaced to the
// request that triggered it.
type AuditService struct {
	repo *repository.AuditRepository
}

func NewAuditService(db *pgxpool.Pool) *AuditService {
	return &AuditService{repo: repository.NewAuditRepository(db)}
}

func (s *AuditService) Record(userID int64, action, ip string, details map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	entry := &domain.AuditEntry{
		UserID:  userID,
		Action:  action,
		Details: details,
		IP:      ip,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Warn("audit write failed", "action", action, "user_id", userID, "error", err)
	}
}

// Recent returns the user's latest audit entries.
func (s *AuditService) Recent(ctx context.Context, userID int64, limit int) ([]*domain.AuditEntry, error) {
	return s.repo.GetByUserID(ctx, userID, limit)
}
