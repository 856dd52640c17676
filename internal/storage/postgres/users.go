package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/cardstash/internal/models"
	"github.com/mmynk/cardstash/internal/storage"
)

const userColumns = "id, username, password, created_at"

// CreateUser inserts a new user.
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES ($1, $2, $3, $4)",
		user.ID, user.Username, user.Password, user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to create user %q: %w", user.Username, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUser retrieves the first user matching the filter.
func (s *PostgresStore) FindUser(ctx context.Context, filter models.UserFilter) (*models.User, error) {
	var conds conditions
	if filter.Username != nil {
		conds.add("username = ?", *filter.Username)
	}
	if filter.Password != nil {
		conds.add("password = ?", *filter.Password)
	}

	query := "SELECT " + userColumns + " FROM users" + conds.String() + " ORDER BY created_at, id LIMIT 1"

	user := &models.User{}
	err := s.db.QueryRowContext(ctx, query, conds.args...).Scan(
		&user.ID, &user.Username, &user.Password, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers retrieves all users.
func (s *PostgresStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}
