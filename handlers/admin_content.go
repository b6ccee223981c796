package handlers

import (
	"net/http"
	"strconv"

	"garden-tss-api/models"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// AdminContentHandler serves the admin content editor CRUD and the dashboard
// counters. Unlike the public handler it returns raw rows, values undecoded.
type AdminContentHandler struct {
	db *sqlx.DB
}

// NewAdminContentHandler creates a new admin content handler.
func NewAdminContentHandler(db *sqlx.DB) *AdminContentHandler {
	return &AdminContentHandler{db: db}
}

// List handles GET /api/admin/content - every content row.
func (h *AdminContentHandler) List(w http.ResponseWriter, r *http.Request) {
	rows := []models.ContentEntry{}
	err := h.db.Select(&rows,
		"SELECT id, page_name, section_name, content_key, content_value FROM page_content ORDER BY page_name, section_name",
	)
	if err != nil {
		logRequest(r, "error", "Failed to query content", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// ListByPage handles GET /api/admin/content/{pageName} - rows for one page.
func (h *AdminContentHandler) ListByPage(w http.ResponseWriter, r *http.Request) {
	pageName := mux.Vars(r)["pageName"]

	rows := []models.ContentEntry{}
	err := h.db.Select(&rows,
		"SELECT id, page_name, section_name, content_key, content_value FROM page_content WHERE page_name = ?",
		pageName,
	)
	if err != nil {
		logRequest(r, "error", "Failed to query content", zap.Error(err), zap.String("page", pageName))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Create handles POST /api/admin/content - add a new content row.
func (h *AdminContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ContentRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.PageName == "" || req.SectionName == "" || req.ContentKey == "" {
		errorJSON(w, http.StatusBadRequest, "page_name, section_name and content_key are required")
		return
	}

	result, err := h.db.Exec(
		"INSERT INTO page_content (page_name, section_name, content_key, content_value) VALUES (?, ?, ?, ?)",
		req.PageName, req.SectionName, req.ContentKey, req.ContentValue,
	)
	if err != nil {
		if isDuplicateErr(err) {
			errorJSON(w, http.StatusBadRequest, "Content already exists")
			return
		}
		logRequest(r, "error", "Failed to create content", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	id, _ := result.LastInsertId()
	logRequest(r, "info", "Content created", zap.Int64("content_id", id))
	createdJSON(w, "Content added successfully", id)
}

// Update handles PUT /api/admin/content/{id} - replace a content row.
func (h *AdminContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid content ID")
		return
	}

	var req models.ContentRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.db.Exec(
		"UPDATE page_content SET page_name = ?, section_name = ?, content_key = ?, content_value = ? WHERE id = ?",
		req.PageName, req.SectionName, req.ContentKey, req.ContentValue, id,
	)
	if err != nil {
		if isDuplicateErr(err) {
			errorJSON(w, http.StatusBadRequest, "Content already exists")
			return
		}
		logRequest(r, "error", "Failed to update content", zap.Error(err), zap.Int("content_id", id))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		errorJSON(w, http.StatusNotFound, "Content not found")
		return
	}

	messageJSON(w, http.StatusOK, "Content updated successfully")
}

// Delete handles DELETE /api/admin/content/{id}.
func (h *AdminContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid content ID")
		return
	}

	result, err := h.db.Exec("DELETE FROM page_content WHERE id = ?", id)
	if err != nil {
		logRequest(r, "error", "Failed to delete content", zap.Error(err), zap.Int("content_id", id))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		errorJSON(w, http.StatusNotFound, "Content not found")
		return
	}

	messageJSON(w, http.StatusOK, "Content deleted successfully")
}

// Pages handles GET /api/admin/pages - sorted distinct page names.
func (h *AdminContentHandler) Pages(w http.ResponseWriter, r *http.Request) {
	pages := []string{}
	err := h.db.Select(&pages, "SELECT DISTINCT page_name FROM page_content ORDER BY page_name")
	if err != nil {
		logRequest(r, "error", "Failed to query pages", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

// Stats handles GET /api/admin/stats - dashboard counters.
func (h *AdminContentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var stats models.DashboardStats

	queries := []struct {
		dst   *int
		query string
	}{
		{&stats.TotalUsers, "SELECT COUNT(*) FROM users"},
		{&stats.TotalContent, "SELECT COUNT(*) FROM page_content"},
		{&stats.TotalPages, "SELECT COUNT(DISTINCT page_name) FROM page_content"},
	}
	for _, q := range queries {
		if err := h.db.Get(q.dst, q.query); err != nil {
			logRequest(r, "error", "Failed to query stats", zap.Error(err))
			errorJSON(w, http.StatusInternalServerError, "Server error")
			return
		}
	}

	writeJSON(w, http.StatusOK, stats)
}
