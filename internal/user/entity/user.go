package entity

import (
	"errors"
	"time"
)

// ErrDuplicateEmail is returned by the store when an insert violates the
// unique email constraint. Uniqueness is case-insensitive and enforced at
// the database level, so concurrent registrations race there and exactly
// one wins.
var ErrDuplicateEmail = errors.New("duplicate email")

// User represents an account row in the `users` table.
//
// LoginAttempts, LockUntil and LastLogin are part of the persisted shape
// but are dormant: nothing reads or updates them after the insert
// defaults. Lockout enforcement is deliberately not wired in.
type User struct {
	ID            string     `db:"id"`
	Email         string     `db:"email"`
	PasswordHash  string     `db:"password_hash"`
	Active        bool       `db:"active"`
	LastLogin     *time.Time `db:"last_login"`
	LoginAttempts int        `db:"login_attempts"`
	LockUntil     *time.Time `db:"lock_until"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// Summary is the minimal projection returned to clients. The password
// hash never leaves the server.
type Summary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Summary returns the client-safe projection of the user.
func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Email: u.Email}
}
