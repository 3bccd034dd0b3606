package service

import (
	"context"
	"errors"
	"strings"

	"todo_backend/internal/domain"
	"todo_backend/internal/repository"
)

var (
	ErrEmptyTitle  = errors.New("title must not be empty")
	ErrInvalidPage = errors.New("invalid pagination parameters")
	ErrNoChanges   = errors.New("no fields to update")

	// ErrTaskNotFound is returned for missing tasks and for tasks owned by
	// another user alike.
	ErrTaskNotFound = repository.ErrTaskNotFound
)

// maxPageLimit caps a single list page.
const maxPageLimit = 100

// TaskChanges carries a partial update; nil fields are left untouched.
// DescriptionNull clears the description, for clients that send an
// explicit JSON null rather than omitting the field.
type TaskChanges struct {
	Title           *string
	Description     *string
	DescriptionNull bool
	Completed       *bool
}

func (c TaskChanges) empty() bool {
	return c.Title == nil && c.Description == nil && !c.DescriptionNull && c.Completed == nil
}

// TaskService implements the task operations, all scoped to the calling
// user. It holds no state of its own; Postgres is the single source of
// truth.
type TaskService struct {
	repo *repository.TaskRepository
}

func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func validatePage(skip, limit int) error {
	if skip < 0 || limit <= 0 || limit > maxPageLimit {
		return ErrInvalidPage
	}
	return nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	return title, nil
}

func (s *TaskService) List(ctx context.Context, userID int64, skip, limit int) ([]*domain.Task, int64, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByUser(ctx, userID, skip, limit)
}

func (s *TaskService) Create(ctx context.Context, userID int64, title string, description *string) (*domain.Task, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, userID, title, description)
}

func (s *TaskService) Get(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	return s.repo.GetByID(ctx, userID, taskID)
}

func (s *TaskService) Update(ctx context.Context, userID, taskID int64, changes TaskChanges) (*domain.Task, error) {
	if changes.empty() {
		return nil, ErrNoChanges
	}
	if changes.Title != nil {
		title, err := normalizeTitle(*changes.Title)
		if err != nil {
			return nil, err
		}
		changes.Title = &title
	}
	return s.repo.Update(ctx, userID, taskID, changes.Title, changes.Description, changes.DescriptionNull, changes.Completed)
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	return s.repo.Delete(ctx, userID, taskID)
}

func (s *TaskService) ToggleComplete(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	return s.repo.ToggleCompleted(ctx, userID, taskID)
}
