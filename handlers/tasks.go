package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"garden-tss-api/models"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// TaskHandler serves the task CRUD and aggregate counts.
type TaskHandler struct {
	db *sqlx.DB
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(db *sqlx.DB) *TaskHandler {
	return &TaskHandler{db: db}
}

// List handles GET /api/admin/tasks - all tasks, newest first.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks := []models.Task{}
	err := h.db.Select(&tasks,
		"SELECT id, title, description, priority, status, assigned_to, due_date, created_at, updated_at FROM tasks ORDER BY created_at DESC",
	)
	if err != nil {
		logRequest(r, "error", "Failed to query tasks", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Get handles GET /api/admin/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var task models.Task
	err = h.db.Get(&task,
		"SELECT id, title, description, priority, status, assigned_to, due_date, created_at, updated_at FROM tasks WHERE id = ?",
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		errorJSON(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		logRequest(r, "error", "Failed to query task", zap.Error(err), zap.Int("task_id", id))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Create handles POST /api/admin/tasks - priority defaults to medium and
// status to pending when omitted.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.TaskRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		errorJSON(w, http.StatusBadRequest, "Title is required")
		return
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if req.Status == "" {
		req.Status = models.StatusPending
	}
	if !models.ValidPriority(req.Priority) {
		errorJSON(w, http.StatusBadRequest, "Invalid priority")
		return
	}
	if !models.ValidStatus(req.Status) {
		errorJSON(w, http.StatusBadRequest, "Invalid status")
		return
	}

	now := time.Now()
	result, err := h.db.Exec(
		"INSERT INTO tasks (title, description, priority, status, assigned_to, due_date, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		req.Title, req.Description, req.Priority, req.Status, req.AssignedTo, req.DueDate, now, now,
	)
	if err != nil {
		logRequest(r, "error", "Failed to create task", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	id, _ := result.LastInsertId()
	logRequest(r, "info", "Task created", zap.Int64("task_id", id))
	createdJSON(w, "Task created successfully", id)
}

// Update handles PUT /api/admin/tasks/{id} - full replace; omitted priority
// and status fall back to the create defaults, and updated_at is refreshed on
// every write.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req models.TaskRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		errorJSON(w, http.StatusBadRequest, "Title is required")
		return
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if req.Status == "" {
		req.Status = models.StatusPending
	}
	if !models.ValidPriority(req.Priority) {
		errorJSON(w, http.StatusBadRequest, "Invalid priority")
		return
	}
	if !models.ValidStatus(req.Status) {
		errorJSON(w, http.StatusBadRequest, "Invalid status")
		return
	}

	result, err := h.db.Exec(
		"UPDATE tasks SET title = ?, description = ?, priority = ?, status = ?, assigned_to = ?, due_date = ?, updated_at = ? WHERE id = ?",
		req.Title, req.Description, req.Priority, req.Status, req.AssignedTo, req.DueDate, time.Now(), id,
	)
	if err != nil {
		logRequest(r, "error", "Failed to update task", zap.Error(err), zap.Int("task_id", id))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		errorJSON(w, http.StatusNotFound, "Task not found")
		return
	}

	messageJSON(w, http.StatusOK, "Task updated successfully")
}

// Delete handles DELETE /api/admin/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	result, err := h.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		logRequest(r, "error", "Failed to delete task", zap.Error(err), zap.Int("task_id", id))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		errorJSON(w, http.StatusNotFound, "Task not found")
		return
	}

	messageJSON(w, http.StatusOK, "Task deleted successfully")
}

// Stats handles GET /api/admin/task-stats - counts computed per request.
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var stats models.TaskStats

	queries := []struct {
		dst   *int
		query string
		args  []any
	}{
		{&stats.Total, "SELECT COUNT(*) FROM tasks", nil},
		{&stats.Pending, "SELECT COUNT(*) FROM tasks WHERE status = ?", []any{models.StatusPending}},
		{&stats.InProgress, "SELECT COUNT(*) FROM tasks WHERE status = ?", []any{models.StatusInProgress}},
		{&stats.Completed, "SELECT COUNT(*) FROM tasks WHERE status = ?", []any{models.StatusCompleted}},
	}
	for _, q := range queries {
		if err := h.db.Get(q.dst, q.query, q.args...); err != nil {
			logRequest(r, "error", "Failed to query task stats", zap.Error(err))
			errorJSON(w, http.StatusInternalServerError, "Server error")
			return
		}
	}

	writeJSON(w, http.StatusOK, stats)
}
