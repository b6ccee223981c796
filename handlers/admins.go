package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"garden-tss-api/models"
	"garden-tss-api/token"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminAccountHandler serves admin authentication and the CRUD over admin
// accounts themselves.
type AdminAccountHandler struct {
	db     *sqlx.DB
	tokens *token.Manager
}

// NewAdminAccountHandler creates a new admin account handler.
func NewAdminAccountHandler(db *sqlx.DB, tokens *token.Manager) *AdminAccountHandler {
	return &AdminAccountHandler{db: db, tokens: tokens}
}

// Login handles POST /api/admin/login - verify admin credentials and issue an
// admin token. Failure is uniform for unknown emails and wrong passwords.
func (h *AdminAccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var admin models.Admin
	err := h.db.Get(&admin,
		"SELECT id, username, email, password, created_at FROM admins WHERE email = ?",
		req.Email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		errorJSON(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		logRequest(r, "error", "Failed to query admin", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	tok, err := h.tokens.SignAdmin(admin.ID, admin.Username)
	if err != nil {
		logRequest(r, "error", "Failed to sign token", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	logRequest(r, "info", "Admin logged in", zap.Int("admin_id", admin.ID))
	writeJSON(w, http.StatusOK, map[string]any{
		"token":    tok,
		"username": admin.Username,
		"isAdmin":  true,
	})
}

// Logout handles POST /api/admin/logout. Tokens are stateless, so the server
// only acknowledges; the client discards its copy.
func (h *AdminAccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims := principalFromContext(r.Context()); claims != nil {
		logRequest(r, "info", "Admin logged out", zap.Int("admin_id", claims.ID))
	}
	messageJSON(w, http.StatusOK, "Logged out successfully")
}

// List handles GET /api/admin/admins - all admin accounts, hashes excluded.
func (h *AdminAccountHandler) List(w http.ResponseWriter, r *http.Request) {
	admins := []models.Admin{}
	err := h.db.Select(&admins, "SELECT id, username, email, created_at FROM admins")
	if err != nil {
		logRequest(r, "error", "Failed to query admins", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, admins)
}

// Get handles GET /api/admin/admins/{id}.
func (h *AdminAccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid admin ID")
		return
	}

	var admin models.Admin
	err = h.db.Get(&admin, "SELECT id, username, email, created_at FROM admins WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		errorJSON(w, http.StatusNotFound, "Admin not found")
		return
	}
	if err != nil {
		logRequest(r, "error", "Failed to query admin", zap.Error(err), zap.Int("admin_id", id))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, admin)
}

// Create handles POST /api/admin/admins - add another admin account.
func (h *AdminAccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		errorJSON(w, http.StatusBadRequest, "username, email and password are required")
		return
	}
	if len(req.Password) > maxPasswordBytes {
		errorJSON(w, http.StatusBadRequest, "Password must be at most 72 characters")
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		logRequest(r, "error", "Password hashing failed", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	result, err := h.db.Exec(
		"INSERT INTO admins (username, email, password, created_at) VALUES (?, ?, ?, ?)",
		req.Username, req.Email, hash, time.Now(),
	)
	if err != nil {
		if isDuplicateErr(err) {
			errorJSON(w, http.StatusBadRequest, "Email already exists")
			return
		}
		logRequest(r, "error", "Failed to create admin", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	id, _ := result.LastInsertId()
	logRequest(r, "info", "Admin created", zap.Int64("admin_id", id))
	createdJSON(w, "Admin created successfully", id)
}

// Update handles PUT /api/admin/admins/{id} - username and email are always
// written; the password only when a new one is supplied.
func (h *AdminAccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid admin ID")
		return
	}

	var req models.UpdateAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Email == "" {
		errorJSON(w, http.StatusBadRequest, "username and email are required")
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
			"UPDATE admins SET username = ?, email = ?, password = ? WHERE id = ?",
			req.Username, req.Email, hash, id,
		)
	} else {
		result, err = h.db.Exec(
			"UPDATE admins SET username = ?, email = ? WHERE id = ?",
			req.Username, req.Email, id,
		)
	}
	if err != nil {
		if isDuplicateErr(err) {
			errorJSON(w, http.StatusBadRequest, "Email already exists")
			return
		}
		logRequest(r, "error", "Failed to update admin", zap.Error(err), zap.Int("admin_id", id))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		errorJSON(w, http.StatusNotFound, "Admin not found")
		return
	}

	messageJSON(w, http.StatusOK, "Admin updated successfully")
}

// Delete handles DELETE /api/admin/admins/{id}.
func (h *AdminAccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid admin ID")
		return
	}

	result, err := h.db.Exec("DELETE FROM admins WHERE id = ?", id)
	if err != nil {
		logRequest(r, "error", "Failed to delete admin", zap.Error(err), zap.Int("admin_id", id))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		errorJSON(w, http.StatusNotFound, "Admin not found")
		return
	}

	messageJSON(w, http.StatusOK, "Admin deleted successfully")
}
