package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mmynk/cardstash/internal/models"
	"github.com/mmynk/cardstash/internal/storage"
)

const (
	insertUser = "INSERT INTO users (id, username, password, created_at) VALUES ($1, $2, $3, $4)"
	insertCard = "INSERT INTO cards (id, name, owner_id, created_at) VALUES ($1, $2, $3, $4)"
	selectUser = "SELECT id, username, password, created_at FROM users"
	selectCard = "SELECT id, name, owner_id, created_at FROM cards"
)

func newStoreWithMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		db.Close()
	})
	return NewFromDB(db), mock
}

func strPtr(s string) *string { return &s }

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password", "created_at"})
}

func cardRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "owner_id", "created_at"})
}

func TestCreateUser_Success(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(insertUser).
		WithArgs("u-1", "alice", "secret", int64(1700000000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &models.User{ID: "u-1", Username: "alice", Password: "secret", CreatedAt: 1700000000}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
}

func TestCreateUser_GeneratesIDAndTimestamp(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(insertUser).
		WithArgs(sqlmock.AnyArg(), "alice", "secret", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &models.User{Username: "alice", Password: "secret"}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if user.ID == "" || user.CreatedAt == 0 {
		t.Fatalf("expected generated ID and CreatedAt, got %+v", user)
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(insertUser).
		WithArgs("u-2", "alice", "other", int64(1)).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "idx_users_username"})

	err := store.CreateUser(context.Background(), &models.User{ID: "u-2", Username: "alice", Password: "other", CreatedAt: 1})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCreateUser_DBError(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(insertUser).
		WithArgs("u-3", "bob", "pw", int64(1)).
		WillReturnError(errors.New("db down"))

	err := store.CreateUser(context.Background(), &models.User{ID: "u-3", Username: "bob", Password: "pw", CreatedAt: 1})
	if err == nil || errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected plain db error, got %v", err)
	}
}

func TestFindUser(t *testing.T) {
	tests := []struct {
		name   string
		filter models.UserFilter
		query  string
		args   []any
	}{
		{
			name:   "by username",
			filter: models.ByUsername("alice"),
			query:  selectUser + " WHERE username = $1 ORDER BY created_at, id LIMIT 1",
			args:   []any{"alice"},
		},
		{
			name:   "by credentials",
			filter: models.ByCredentials(models.Credentials{Username: "alice", Password: "secret"}),
			query:  selectUser + " WHERE username = $1 AND password = $2 ORDER BY created_at, id LIMIT 1",
			args:   []any{"alice", "secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newStoreWithMock(t)

			args := make([]driver.Value, len(tt.args))
			for i, a := range tt.args {
				args[i] = a
			}
			mock.ExpectQuery(tt.query).
				WithArgs(args...).
				WillReturnRows(userRows().AddRow("u-1", "alice", "secret", int64(1700000000)))

			got, err := store.FindUser(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("FindUser error: %v", err)
			}
			if got == nil || got.ID != "u-1" || got.Username != "alice" || got.CreatedAt != 1700000000 {
				t.Fatalf("unexpected user: %+v", got)
			}
		})
	}
}

func TestFindUser_NotFound(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(selectUser + " WHERE username = $1 ORDER BY created_at, id LIMIT 1").
		WithArgs("nobody").
		WillReturnRows(userRows())

	got, err := store.FindUser(context.Background(), models.ByUsername("nobody"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil user, got %+v", got)
	}
}

func TestFindUser_DBError(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(selectUser + " WHERE username = $1 ORDER BY created_at, id LIMIT 1").
		WithArgs("alice").
		WillReturnError(sql.ErrConnDone)

	got, err := store.FindUser(context.Background(), models.ByUsername("alice"))
	if !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("expected wrapped ErrConnDone, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil user, got %+v", got)
	}
}

func TestListUsers(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(selectUser + " ORDER BY created_at, id").
		WillReturnRows(userRows().
			AddRow("u-1", "alice", "a", int64(1)).
			AddRow("u-2", "bob", "b", int64(2)))

	users, err := store.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}
	if len(users) != 2 || users[0].Username != "alice" || users[1].Username != "bob" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestListUsers_Empty(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(selectUser + " ORDER BY created_at, id").WillReturnRows(userRows())

	users, err := store.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", users)
	}
}

func TestCreateCard(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(insertCard).
		WithArgs("c-1", "Pikachu", "u-1", int64(1700000000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	card := &models.Card{ID: "c-1", Name: "Pikachu", OwnerID: "u-1", CreatedAt: 1700000000}
	if err := store.CreateCard(context.Background(), card); err != nil {
		t.Fatalf("CreateCard error: %v", err)
	}
}

func TestCreateCard_DBError(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(insertCard).
		WithArgs("c-1", "Pikachu", "u-1", int64(1)).
		WillReturnError(errors.New("db down"))

	err := store.CreateCard(context.Background(), &models.Card{ID: "c-1", Name: "Pikachu", OwnerID: "u-1", CreatedAt: 1})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestFindCards(t *testing.T) {
	tests := []struct {
		name   string
		filter models.CardFilter
		query  string
		args   []string
	}{
		{
			name:   "no filter",
			filter: models.CardFilter{},
			query:  selectCard + " ORDER BY created_at, id",
		},
		{
			name:   "owner only",
			filter: models.CardFilter{OwnerID: strPtr("u-1")},
			query:  selectCard + " WHERE owner_id = $1 ORDER BY created_at, id",
			args:   []string{"u-1"},
		},
		{
			name:   "owner and substring",
			filter: models.CardFilter{OwnerID: strPtr("u-1"), NameContains: strPtr("chu")},
			query:  selectCard + " WHERE owner_id = $1 AND strpos(name, $2) > 0 ORDER BY created_at, id",
			args:   []string{"u-1", "chu"},
		},
		{
			name:   "empty substring is no filter",
			filter: models.CardFilter{OwnerID: strPtr("u-1"), NameContains: strPtr("")},
			query:  selectCard + " WHERE owner_id = $1 ORDER BY created_at, id",
			args:   []string{"u-1"},
		},
		{
			name:   "substring only",
			filter: models.CardFilter{NameContains: strPtr("chu")},
			query:  selectCard + " WHERE strpos(name, $1) > 0 ORDER BY created_at, id",
			args:   []string{"chu"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newStoreWithMock(t)

			args := make([]driver.Value, len(tt.args))
			for i, a := range tt.args {
				args[i] = a
			}
			exp := mock.ExpectQuery(tt.query)
			if len(args) > 0 {
				exp = exp.WithArgs(args...)
			}
			exp.WillReturnRows(cardRows().AddRow("c-1", "Pikachu", "u-1", int64(1)))

			cards, err := store.FindCards(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("FindCards error: %v", err)
			}
			if len(cards) != 1 || cards[0].Name != "Pikachu" || cards[0].OwnerID != "u-1" {
				t.Fatalf("unexpected cards: %+v", cards)
			}
		})
	}
}

func TestFindCards_DBError(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(selectCard + " ORDER BY created_at, id").WillReturnError(errors.New("db down"))

	cards, err := store.FindCards(context.Background(), models.CardFilter{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if cards != nil {
		t.Fatalf("expected nil cards, got %+v", cards)
	}
}
