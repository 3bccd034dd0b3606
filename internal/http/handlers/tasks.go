package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"todo_backend/internal/domain"
	"todo_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// updateTaskRequest keeps the raw JSON per field so an absent key and an
// explicit null stay distinguishable after decoding.
type updateTaskRequest struct {
	Title       json.RawMessage `json:"title"`
	Description json.RawMessage `json:"description"`
	Completed   json.RawMessage `json:"completed"`
}

func isJSONNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

// changes translates the request into service-level changes. A null
// description clears the stored value; null is not accepted for the
// other fields.
func (r updateTaskRequest) changes() (service.TaskChanges, error) {
	var changes service.TaskChanges

	if len(r.Title) > 0 {
		if isJSONNull(r.Title) {
			return changes, errors.New("title must not be null")
		}
		var title string
		if err := json.Unmarshal(r.Title, &title); err != nil {
			return changes, errors.New("invalid title")
		}
		changes.Title = &title
	}

	if len(r.Description) > 0 {
		if isJSONNull(r.Description) {
			changes.DescriptionNull = true
		} else {
			var description string
			if err := json.Unmarshal(r.Description, &description); err != nil {
				return changes, errors.New("invalid description")
			}
			changes.Description = &description
		}
	}

	if len(r.Completed) > 0 {
		if isJSONNull(r.Completed) {
			return changes, errors.New("completed must not be null")
		}
		var completed bool
		if err := json.Unmarshal(r.Completed, &completed); err != nil {
			return changes, errors.New("invalid completed flag")
		}
		changes.Completed = &completed
	}

	return changes, nil
}

// pathUserID verifies the :user_id path segment against the session
// identity. The session is authoritative; a mismatched path is rejected
// rather than silently rescoped.
func pathUserID(c *gin.Context) (int64, bool) {
	sessionID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return 0, false
	}

	pathID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	if pathID != sessionID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot access another user's tasks"})
		return 0, false
	}
	return sessionID, true
}

func pathTaskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return 0, false
	}
	return id, true
}

// ListTasks returns one page of the caller's tasks plus the total owned
// count. Defaults: skip=0, limit=100.
func (h *Handler) ListTasks(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	skip := 0
	if v := c.Query("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skip parameter"})
			return
		}
		skip = n
	}
	limit := 100
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
			return
		}
		limit = n
	}

	tasks, total, err := h.Tasks.List(c.Request.Context(), userID, skip, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "total": total})
}

func (h *Handler) CreateTask(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	task, err := h.Tasks.Create(c.Request.Context(), userID, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}

	go h.Audit.Record(userID, domain.AuditTaskCreate, c.ClientIP(), map[string]interface{}{"task_id": task.ID})

	c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathTaskID(c)
	if !ok {
		return
	}

	task, err := h.Tasks.Get(c.Request.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get task"})
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathTaskID(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	changes, err := req.changes()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.Tasks.Update(c.Request.Context(), userID, taskID, changes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyTitle), errors.Is(err, service.ErrNoChanges):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		}
		return
	}

	go h.Audit.Record(userID, domain.AuditTaskUpdate, c.ClientIP(), map[string]interface{}{"task_id": task.ID})

	c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathTaskID(c)
	if !ok {
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), userID, taskID); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}

	go h.Audit.Record(userID, domain.AuditTaskDelete, c.ClientIP(), map[string]interface{}{"task_id": taskID})

	c.Status(http.StatusNoContent)
}

// ToggleTask flips the completion flag in a single atomic update.
func (h *Handler) ToggleTask(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathTaskID(c)
	if !ok {
		return
	}

	task, err := h.Tasks.ToggleComplete(c.Request.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle task"})
		return
	}

	go h.Audit.Record(userID, domain.AuditTaskToggle, c.ClientIP(), map[string]interface{}{"task_id": task.ID, "completed": task.Completed})

	c.JSON(http.StatusOK, task)
}
