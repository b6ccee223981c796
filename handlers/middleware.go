package handlers

import (
	"context"
	"net/http"
	"strings"

	"garden-tss-api/token"

	"go.uber.org/zap"
)

type contextKey string

const principalKey contextKey = "principal"

// RequireAdmin wraps next so that it only runs for requests carrying a valid
// admin token. A missing or unverifiable token is 401; a valid token without
// the admin claim is 403. The verified claims are stored in the request
// context for the wrapped handler.
func RequireAdmin(tokens *token.Manager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			errorJSON(w, http.StatusUnauthorized, "No token provided")
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			logRequest(r, "debug", "Token rejected", zap.Error(err))
			errorJSON(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		if !claims.IsAdmin {
			errorJSON(w, http.StatusForbidden, "Not authorized as admin")
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header, returning "" when absent or malformed.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// principalFromContext returns the claims stored by RequireAdmin, or nil when
// the request did not pass through it.
func principalFromContext(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(principalKey).(*token.Claims)
	return claims
}
