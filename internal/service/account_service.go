package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/cardstash/internal/models"
	"github.com/mmynk/cardstash/internal/storage"
)

var (
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AccountService handles registration, sign-in and user listing.
type AccountService struct {
	users  storage.UserStore
	logger *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(users storage.UserStore, logger *slog.Logger) *AccountService {
	return &AccountService{
		users:  users,
		logger: logger,
	}
}

// Register creates a new user account.
//
// The username lookup and the insert are separate calls. Two concurrent
// registrations can both pass the lookup; the storage unique index then
// rejects the second insert, which is reported as ErrUsernameTaken too.
func (s *AccountService) Register(ctx context.Context, creds models.Credentials) (*models.User, error) {
	existing, err := s.users.FindUser(ctx, models.ByUsername(creds.Username))
	if err != nil {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}
	if existing != nil {
		s.logger.Info("Registration rejected", "username", creds.Username, "reason", "taken")
		return nil, ErrUsernameTaken
	}

	user := models.NewUser(creds.Username, creds.Password)
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			s.logger.Warn("Registration lost race", "username", creds.Username)
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate returns the user whose username and password both match.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *AccountService) Authenticate(ctx context.Context, creds models.Credentials) (*models.User, error) {
	user, err := s.users.FindUser(ctx, models.ByCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to look up credentials: %w", err)
	}
	if user == nil {
		s.logger.Warn("Login failed", "username", creds.Username)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// ListUsers returns every registered user.
func (s *AccountService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
