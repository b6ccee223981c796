package handlers

import (
	"net/http"

	"garden-tss-api/models"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ContentHandler serves the public content and search endpoints. Both are
// deliberately unauthenticated: the public site renders from them before any
// login exists.
type ContentHandler struct {
	db *sqlx.DB
}

// NewContentHandler creates a new public content handler.
func NewContentHandler(db *sqlx.DB) *ContentHandler {
	return &ContentHandler{db: db}
}

// GetPage handles GET /api/content/{pageName} - all rows for the page grouped
// into {section: {key: value}} with values decoded structurally.
func (h *ContentHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	pageName := mux.Vars(r)["pageName"]

	var rows []models.ContentEntry
	err := h.db.Select(&rows,
		"SELECT id, page_name, section_name, content_key, content_value FROM page_content WHERE page_name = ?",
		pageName,
	)
	if err != nil {
		logRequest(r, "error", "Failed to query content", zap.Error(err), zap.String("page", pageName))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	if len(rows) == 0 {
		errorJSON(w, http.StatusNotFound, "Page not found")
		return
	}

	content := make(map[string]map[string]models.ContentValue)
	for _, row := range rows {
		section, ok := content[row.SectionName]
		if !ok {
			section = make(map[string]models.ContentValue)
			content[row.SectionName] = section
		}
		section[row.ContentKey] = models.DecodeContentValue(row.ContentValue)
	}

	writeJSON(w, http.StatusOK, content)
}

// Search handles GET /api/search?q= - case-insensitive substring match over
// content values, keys and page names. An empty query returns an empty list
// without touching the table.
func (h *ContentHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusOK, []models.SearchResult{})
		return
	}

	term := "%" + q + "%"
	var rows []models.ContentEntry
	err := h.db.Select(&rows,
		`SELECT id, page_name, section_name, content_key, content_value FROM page_content
		 WHERE content_value LIKE ? OR content_key LIKE ? OR page_name LIKE ?
		 ORDER BY page_name, section_name`,
		term, term, term,
	)
	if err != nil {
		logRequest(r, "error", "Search query failed", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	results := make([]models.SearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, models.SearchResult{
			PageName:     row.PageName,
			SectionName:  row.SectionName,
			ContentKey:   row.ContentKey,
			ContentValue: models.DecodeContentValue(row.ContentValue),
		})
	}

	writeJSON(w, http.StatusOK, results)
}
