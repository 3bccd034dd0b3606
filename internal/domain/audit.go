package domain

import "time"

// Audit actions recorded by the service.
const (
	AuditSignUp     = "signup"
	AuditSignIn     = "signin"
	AuditSignOut    = "signout"
	AuditTaskCreate = "task_create"
	AuditTaskUpdate = "task_update"
	AuditTaskDelete = "task_delete"
	AuditTaskToggle = "task_toggle"
)

type AuditEntry struct {
	ID        int64                  `db:"id" json:"id"`
	UserID    int64                  `db:"user_id" json:"user_id"`
	Action    string                 `db:"action" json:"action"`
	Details   map[string]interface{} `db:"details" json:"details"`
	IP        string                 `db:"ip" json:"ip"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}
