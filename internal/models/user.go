package models

import "time"

// User is an account holder. All categories and transactions are scoped to a user.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // don't expose hash
	CreatedAt    time.Time `json:"created_at"`

	// Reset ticket: only the hash of the one-time reset token is stored,
	// together with its expiry. Cleared once the password is changed.
	ResetTokenHash string     `json:"-"`
	ResetExpiresAt *time.Time `json:"-"`
}

// PublicUser is the user shape returned by auth endpoints.
type PublicUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public strips everything but the identity fields.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}
