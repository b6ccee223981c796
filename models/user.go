package models

import "time"

// User is a self-registered site account. Password holds the bcrypt hash and
// is never serialized.
type User struct {
	ID        int       `json:"id" db:"id"`
	UserName  string    `json:"userName" db:"userName"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/login and POST /api/admin/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest is the body of PUT /api/admin/users/{id}.
// Password is optional; when present it is re-hashed before storage.
type UpdateUserRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}
