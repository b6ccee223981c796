package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"garden-tss-api/models"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// UserHandler serves the admin CRUD over registered site users.
type UserHandler struct {
	db *sqlx.DB
}

// NewUserHandler creates a new user handler.
func NewUserHandler(db *sqlx.DB) *UserHandler {
	return &UserHandler{db: db}
}

// List handles GET /api/admin/users - all users, hashes excluded.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users := []models.User{}
	err := h.db.Select(&users, "SELECT id, userName, email, role, created_at FROM users")
	if err != nil {
		logRequest(r, "error", "Failed to query users", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Get handles GET /api/admin/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var user models.User
	err = h.db.Get(&user, "SELECT id, userName, email, role, created_at FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		errorJSON(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		logRequest(r, "error", "Failed to query user", zap.Error(err), zap.Int("user_id", id))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Update handles PUT /api/admin/users/{id} - name, email and role are always
// written; the password only when a new one is supplied.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req models.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserName == "" || req.Email == "" {
		errorJSON(w, http.StatusBadRequest, "userName and email are required")
		return
	}
	if req.Role == "" {
		req.Role = "user"
	}
	if req.Role != "user" && req.Role != "moderator" && req.Role != "admin" {
		errorJSON(w, http.StatusBadRequest, "Invalid role")
		return
	}

	var result sql.Result
	if req.Password != "" {
		if len(req.Password) > maxPasswordBytes {
			errorJSON(w, http.StatusBadRequest, "Password must be at most 72 characters")
			return
		}
		hash, hashErr := hashPassword(req.Password)
		if hashErr != nil {
			logRequest(r, "error", "Password hashing failed", zap.Error(hashErr))
			errorJSON(w, http.StatusInternalServerError, "Server error")
			return
		}
		result, err = h.db.Exec(
			"UPDATE users SET userName = ?, email = ?, password = ?, role = ? WHERE id = ?",
			req.UserName, req.Email, hash, req.Role, id,
		)
	} else {
		result, err = h.db.Exec(
			"UPDATE users SET userName = ?, email = ?, role = ? WHERE id = ?",
			req.UserName, req.Email, req.Role, id,
		)
	}
	if err != nil {
		if isDuplicateErr(err) {
			errorJSON(w, http.StatusBadRequest, "Email already exists")
			return
		}
		logRequest(r, "error", "Failed to update user", zap.Error(err), zap.Int("user_id", id))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		errorJSON(w, http.StatusNotFound, "User not found")
		return
	}

	logRequest(r, "info", "User updated", zap.Int("user_id", id))
	messageJSON(w, http.StatusOK, "User updated successfully")
}

// Delete handles DELETE /api/admin/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	result, err := h.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		logRequest(r, "error", "Failed to delete user", zap.Error(err), zap.Int("user_id", id))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		errorJSON(w, http.StatusNotFound, "User not found")
		return
	}

	logRequest(r, "info", "User deleted", zap.Int("user_id", id))
	messageJSON(w, http.StatusOK, "User deleted successfully")
}
