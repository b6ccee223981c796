// Package token issues and verifies the signed identity tokens used by the
// API. Verification is stateless: signature plus expiry, no revocation list.
// Every token carries a unique jti so a denylist can be added later without
// re-minting.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned when a token parses but fails validation.
var ErrInvalidToken = errors.New("invalid token")

// Claims carried by every issued token. User tokens fill UserName and Email;
// admin tokens fill Username and set IsAdmin.
type Claims struct {
	ID       int    `json:"id"`
	UserName string `json:"userName,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and parses tokens with an injected secret and lifetimes.
type Manager struct {
	secret   []byte
	userTTL  time.Duration
	adminTTL time.Duration
}

func NewManager(secret string, userTTL, adminTTL time.Duration) *Manager {
	return &Manager{
		secret:   []byte(secret),
		userTTL:  userTTL,
		adminTTL: adminTTL,
	}
}

// SignUser issues a user identity token.
func (m *Manager) SignUser(id int, userName, email string) (string, error) {
	return m.sign(&Claims{ID: id, UserName: userName, Email: email}, m.userTTL)
}

// SignAdmin issues an admin token.
func (m *Manager) SignAdmin(id int, username string) (string, error) {
	return m.sign(&Claims{ID: id, Username: username, IsAdmin: true}, m.adminTTL)
}

func (m *Manager) sign(claims *Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies the signature and expiry of tokenString and returns its
// claims. Expired, malformed and wrongly signed tokens all return an error.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
