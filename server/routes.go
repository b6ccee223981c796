package server

import (
	"net/http"

	"garden-tss-api/config"
	"garden-tss-api/handlers"
	"garden-tss-api/token"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
)

// NewRouter registers every endpoint of the API on a gorilla/mux router.
// Admin routes are individually wrapped with the admin-token gate; content and
// search stay public because the site renders from them before any login.
func NewRouter(dbConn *sqlx.DB, tokens *token.Manager, cfg *config.Config) http.Handler {
	authHandler := handlers.NewAuthHandler(dbConn, tokens)
	contentHandler := handlers.NewContentHandler(dbConn)
	adminContent := handlers.NewAdminContentHandler(dbConn)
	userHandler := handlers.NewUserHandler(dbConn)
	adminAccounts := handlers.NewAdminAccountHandler(dbConn, tokens)
	loginRecords := handlers.NewLoginRecordHandler(dbConn)
	taskHandler := handlers.NewTaskHandler(dbConn)

	router := mux.NewRouter()

	router.HandleFunc("/", handlers.Root).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Public endpoints
	api.HandleFunc("/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/content/{pageName}", contentHandler.GetPage).Methods("GET")
	api.HandleFunc("/search", contentHandler.Search).Methods("GET")

	admin := api.PathPrefix("/admin").Subrouter()

	gate := func(next http.HandlerFunc) http.HandlerFunc {
		return handlers.RequireAdmin(tokens, next)
	}

	// POST /api/admin/login is two operations on one path: an anonymous
	// request is an admin credential login, a request already carrying a
	// token creates a login record.
	admin.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			gate(loginRecords.Create)(w, r)
			return
		}
		adminAccounts.Login(w, r)
	}).Methods("POST")

	admin.HandleFunc("/logout", gate(adminAccounts.Logout)).Methods("POST")

	// Users
	admin.HandleFunc("/users", gate(userHandler.List)).Methods("GET")
	admin.HandleFunc("/users/{id}", gate(userHandler.Get)).Methods("GET")
	admin.HandleFunc("/users/{id}", gate(userHandler.Update)).Methods("PUT")
	admin.HandleFunc("/users/{id}", gate(userHandler.Delete)).Methods("DELETE")

	// Content
	admin.HandleFunc("/content", gate(adminContent.List)).Methods("GET")
	admin.HandleFunc("/content", gate(adminContent.Create)).Methods("POST")
	admin.HandleFunc("/content/{pageName}", gate(adminContent.ListByPage)).Methods("GET")
	admin.HandleFunc("/content/{id}", gate(adminContent.Update)).Methods("PUT")
	admin.HandleFunc("/content/{id}", gate(adminContent.Delete)).Methods("DELETE")
	admin.HandleFunc("/pages", gate(adminContent.Pages)).Methods("GET")
	admin.HandleFunc("/stats", gate(adminContent.Stats)).Methods("GET")

	// Login records
	admin.HandleFunc("/login", gate(loginRecords.List)).Methods("GET")
	admin.HandleFunc("/login/{id}", gate(loginRecords.Get)).Methods("GET")
	admin.HandleFunc("/login/{id}", gate(loginRecords.Update)).Methods("PUT")
	admin.HandleFunc("/login/{id}", gate(loginRecords.Delete)).Methods("DELETE")
	admin.HandleFunc("/table-stats", gate(loginRecords.TableStats)).Methods("GET")

	// Tasks
	admin.HandleFunc("/tasks", gate(taskHandler.List)).Methods("GET")
	admin.HandleFunc("/tasks", gate(taskHandler.Create)).Methods("POST")
	admin.HandleFunc("/tasks/{id}", gate(taskHandler.Get)).Methods("GET")
	admin.HandleFunc("/tasks/{id}", gate(taskHandler.Update)).Methods("PUT")
	admin.HandleFunc("/tasks/{id}", gate(taskHandler.Delete)).Methods("DELETE")
	admin.HandleFunc("/task-stats", gate(taskHandler.Stats)).Methods("GET")

	// Admin accounts
	admin.HandleFunc("/admins", gate(adminAccounts.List)).Methods("GET")
	admin.HandleFunc("/admins", gate(adminAccounts.Create)).Methods("POST")
	admin.HandleFunc("/admins/{id}", gate(adminAccounts.Get)).Methods("GET")
	admin.HandleFunc("/admins/{id}", gate(adminAccounts.Update)).Methods("PUT")
	admin.HandleFunc("/admins/{id}", gate(adminAccounts.Delete)).Methods("DELETE")

	// CORS wraps the router rather than running as mux middleware: every route
	// above is pinned to a method, so a preflight OPTIONS would 405 before any
	// middleware runs.
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})(router)
}
