package repository

import (
	"context"
	"errors"

	"todo_backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrTaskNotFound covers both a missing row and a row owned by another
// user; every query below filters on user_id so the two cases are
// indistinguishable to callers.
var ErrTaskNotFound = errors.New("task not found")

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, uuid, title, description, completed, user_id, created_at, updated_at`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.UUID, &t.Title, &t.Description, &t.Completed, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByUser returns one page of the user's tasks, newest first, plus the
// full owned count independent of the page window.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]*domain.Task, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 OFFSET $2 LIMIT $3`,
		userID, skip, limit,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.UUID, &t.Title, &t.Description, &t.Completed, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, &t)
	}
	return tasks, total, rows.Err()
}

func (r *TaskRepository) Create(ctx context.Context, userID int64, title string, description *string) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO tasks (uuid, title, description, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+taskColumns,
		uuid.NewString(), title, description, userID,
	)
	return scanTask(row)
}

func (r *TaskRepository) GetByID(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID, userID,
	)
	return scanTask(row)
}

// Update applies the non-nil fields in a single statement so concurrent
// writers never interleave between a read and a write. clearDescription
// nulls the description out; a nil description alone leaves it untouched.
func (r *TaskRepository) Update(ctx context.Context, userID, taskID int64, title *string, description *string, clearDescription bool, completed *bool) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE tasks
		 SET title       = COALESCE($3, title),
		     description = CASE WHEN $6 THEN NULL ELSE COALESCE($4, description) END,
		     completed   = COALESCE($5, completed),
		     updated_at  = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+taskColumns,
		taskID, userID, title, description, completed, clearDescription,
	)
	return scanTask(row)
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID int64) error {
	res, err := r.db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID, userID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// ToggleCompleted flips completion atomically; the NOT happens inside the
// store, never as a read-modify-write across two round trips.
func (r *TaskRepository) ToggleCompleted(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE tasks
		 SET completed = NOT completed, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+taskColumns,
		taskID, userID,
	)
	return scanTask(row)
}
