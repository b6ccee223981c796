package handlers

import (
	"errors"
	"net/http"

	"github.com/mattn/go-sqlite3"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// logRequest logs a handler event with the request's method and path attached.
func logRequest(r *http.Request, level string, message string, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}, fields...)

	switch level {
	case "info":
		logger.Info(message, allFields...)
	case "error":
		logger.Error(message, allFields...)
	case "debug":
		logger.Debug(message, allFields...)
	}
}

// bcrypt ignores everything past 72 bytes, so longer passwords are rejected
// up front instead of being silently truncated.
const maxPasswordBytes = 72

// isDuplicateErr reports whether err is a unique-constraint violation.
func isDuplicateErr(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// hashPassword bcrypt-hashes a plaintext password at the standard cost.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Root handles GET / as a liveness probe.
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Garden TSS API is running",
		"status":  "ok",
	})
}
