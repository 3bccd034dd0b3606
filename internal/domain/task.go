package domain

import "time"

// Task is a single to-do item owned by exactly one user. The owner never
// changes after creation.
type Task struct {
	ID          int64     `db:"id" json:"id"`
	UUID        string    `db:"uuid" json:"uuid"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	Completed   bool      `db:"completed" json:"completed"`
	UserID      int64     `db:"user_id" json:"user_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
