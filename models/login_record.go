package models

import "time"

// LoginRecord mirrors a user's last known password hash, keyed by email. It is
// an audit/legacy table with its own admin CRUD surface and is never consulted
// for authentication decisions. The hash is visible to admins, matching the
// dashboard's table view.
type LoginRecord struct {
	ID        int       `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"password" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LoginRecordRequest is the body of POST and PUT on /api/admin/login.
// Password is plaintext and hashed before storage; on update it is optional.
type LoginRecordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}
