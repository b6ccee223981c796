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

// LoginRecordHandler serves the CRUD surface of the legacy login table. The
// table is an audit mirror of each user's last known password hash; nothing
// here feeds authentication decisions.
type LoginRecordHandler struct {
	db *sqlx.DB
}

// NewLoginRecordHandler creates a new login record handler.
func NewLoginRecordHandler(db *sqlx.DB) *LoginRecordHandler {
	return &LoginRecordHandler{db: db}
}

// List handles GET /api/admin/login - all login records.
func (h *LoginRecordHandler) List(w http.ResponseWriter, r *http.Request) {
	records := []models.LoginRecord{}
	err := h.db.Select(&records, "SELECT id, email, password, created_at FROM login ORDER BY id ASC")
	if err != nil {
		logRequest(r, "error", "Failed to query login records", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Get handles GET /api/admin/login/{id}.
func (h *LoginRecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid login record ID")
		return
	}

	var record models.LoginRecord
	err = h.db.Get(&record, "SELECT id, email, password, created_at FROM login WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		errorJSON(w, http.StatusNotFound, "Login record not found")
		return
	}
	if err != nil {
		logRequest(r, "error", "Failed to query login record", zap.Error(err), zap.Int("record_id", id))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Create handles POST /api/admin/login - insert a record with a freshly
// hashed password.
func (h *LoginRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		errorJSON(w, http.StatusBadRequest, "email and password are required")
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
		"INSERT INTO login (email, password, created_at) VALUES (?, ?, ?)",
		req.Email, hash, time.Now(),
	)
	if err != nil {
		if isDuplicateErr(err) {
			errorJSON(w, http.StatusBadRequest, "Email already exists")
			return
		}
		logRequest(r, "error", "Failed to create login record", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	id, _ := result.LastInsertId()
	logRequest(r, "info", "Login record created", zap.Int64("record_id", id))
	createdJSON(w, "Login record created successfully", id)
}

// Update handles PUT /api/admin/login/{id} - email is always written; the
// password only when a new one is supplied.
func (h *LoginRecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid login record ID")
		return
	}

	var req models.LoginRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" {
		errorJSON(w, http.StatusBadRequest, "email is required")
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
		result, err = h.db.Exec("UPDATE login SET email = ?, password = ? WHERE id = ?", req.Email, hash, id)
	} else {
		result, err = h.db.Exec("UPDATE login SET email = ? WHERE id = ?", req.Email, id)
	}
	if err != nil {
		if isDuplicateErr(err) {
			errorJSON(w, http.StatusBadRequest, "Email already exists")
			return
		}
		logRequest(r, "error", "Failed to update login record", zap.Error(err), zap.Int("record_id", id))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		errorJSON(w, http.StatusNotFound, "Login record not found")
		return
	}

	messageJSON(w, http.StatusOK, "Login record updated successfully")
}

// Delete handles DELETE /api/admin/login/{id}.
func (h *LoginRecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid login record ID")
		return
	}

	result, err := h.db.Exec("DELETE FROM login WHERE id = ?", id)
	if err != nil {
		logRequest(r, "error", "Failed to delete login record", zap.Error(err), zap.Int("record_id", id))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		errorJSON(w, http.StatusNotFound, "Login record not found")
		return
	}

	messageJSON(w, http.StatusOK, "Login record deleted successfully")
}

// TableStats handles GET /api/admin/table-stats.
func (h *LoginRecordHandler) TableStats(w http.ResponseWriter, r *http.Request) {
	var stats models.TableStats
	if err := h.db.Get(&stats.TotalLogins, "SELECT COUNT(*) FROM login"); err != nil {
		logRequest(r, "error", "Failed to query table stats", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
