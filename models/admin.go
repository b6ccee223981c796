package models

import "time"

// Admin is a dashboard account. Admins live in their own identity space and
// never self-register.
type Admin struct {
	ID        int       `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateAdminRequest is the body of POST /api/admin/admins.
type CreateAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateAdminRequest is the body of PUT /api/admin/admins/{id}.
// Password is optional; when present it is re-hashed before storage.
type UpdateAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}
