package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
//
// NOTE: Password is stored and compared in plain text. This mirrors the
// current product scope and must be revisited before any real deployment.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Username is the login name. Unique across all users.
	Username string `json:"username"`

	// Password is the user's password, unhashed.
	Password string `json:"password"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"createdAt"`
}

// NewUser creates a new user with a generated ID and timestamp.
func NewUser(username, password string) *User {
	return &User{
		ID:        uuid.New().String(),
		Username:  username,
		Password:  password,
		CreatedAt: time.Now().Unix(),
	}
}

// Credentials is a validated username/password pair.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserFilter selects users by exact match on every non-nil field.
type UserFilter struct {
	Username *string
	Password *string
}

// ByUsername matches users with the given username.
func ByUsername(username string) UserFilter {
	return UserFilter{Username: &username}
}

// ByCredentials matches the user whose username and password both equal
// the given credentials.
func ByCredentials(c Credentials) UserFilter {
	return UserFilter{Username: &c.Username, Password: &c.Password}
}
