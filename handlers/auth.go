package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"garden-tss-api/models"
	"garden-tss-api/token"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for every stored password hash.
const bcryptCost = 10

// AuthHandler serves the public registration and login endpoints.
type AuthHandler struct {
	db     *sqlx.DB
	tokens *token.Manager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(db *sqlx.DB, tokens *token.Manager) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens}
}

// Register handles POST /api/register - create a user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserName == "" || req.Email == "" || req.Password == "" {
		errorJSON(w, http.StatusBadRequest, "userName, email and password are required")
		return
	}
	if len(req.Password) > maxPasswordBytes {
		errorJSON(w, http.StatusBadRequest, "Password must be at most 72 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		logRequest(r, "error", "Password hashing failed", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	_, err = h.db.Exec(
		"INSERT INTO users (userName, email, password, created_at) VALUES (?, ?, ?, ?)",
		req.UserName, req.Email, string(hash), time.Now(),
	)
	if err != nil {
		if isDuplicateErr(err) {
			errorJSON(w, http.StatusBadRequest, "Email already exists")
			return
		}
		logRequest(r, "error", "Failed to register user", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	logRequest(r, "info", "User registered", zap.String("email", req.Email))
	messageJSON(w, http.StatusCreated, "User registered successfully")
}

// Login handles POST /api/login - verify credentials and issue a user token.
// Unknown emails and wrong passwords fail with the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var user models.User
	err := h.db.Get(&user,
		"SELECT id, userName, email, password, role, created_at FROM users WHERE email = ?",
		req.Email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		errorJSON(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		logRequest(r, "error", "Failed to query user", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	h.recordLogin(r, user.Email, user.Password)

	tok, err := h.tokens.SignUser(user.ID, user.UserName, user.Email)
	if err != nil {
		logRequest(r, "error", "Failed to sign token", zap.Error(err))
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}

	logRequest(r, "info", "User logged in", zap.Int("user_id", user.ID))
	writeJSON(w, http.StatusOK, map[string]any{
		"token":    tok,
		"userName": user.UserName,
		"email":    user.Email,
	})
}

// recordLogin mirrors the user's current hash into the login table. Best
// effort: a failure is logged and the login still succeeds.
func (h *AuthHandler) recordLogin(r *http.Request, email, passwordHash string) {
	res, err := h.db.Exec("UPDATE login SET password = ? WHERE email = ?", passwordHash, email)
	if err == nil {
		if n, _ := res.RowsAffected(); n > 0 {
			return
		}
		_, err = h.db.Exec(
			"INSERT INTO login (email, password, created_at) VALUES (?, ?, ?)",
			email, passwordHash, time.Now(),
		)
	}
	if err != nil {
		logRequest(r, "error", "Failed to record login", zap.Error(err))
	}
}
