// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/cardstash/internal/models"
)

// ErrConflict is returned when a write violates a uniqueness constraint,
// such as a second user with the same username.
var ErrConflict = errors.New("storage: unique constraint violated")

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser persists a new user. ID and CreatedAt are filled in when
	// empty. Returns ErrConflict if the username is already stored.
	CreateUser(ctx context.Context, user *models.User) error

	// FindUser returns the first user matching every set field of the filter.
	// Returns nil, nil when no user matches.
	FindUser(ctx context.Context, filter models.UserFilter) (*models.User, error)

	// ListUsers returns all users. The slice is empty, never nil, when there
	// are none.
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// CardStore persists cards.
type CardStore interface {
	// CreateCard persists a new card. ID and CreatedAt are filled in when empty.
	CreateCard(ctx context.Context, card *models.Card) error

	// FindCards returns the cards matching the filter, oldest first.
	FindCards(ctx context.Context, filter models.CardFilter) ([]*models.Card, error)
}

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	UserStore
	CardStore

	// Ping reports whether the backing database is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
