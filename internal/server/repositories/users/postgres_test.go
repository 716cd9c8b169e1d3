package users

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/irabeny89/ebbs2022-sub000/internal/common"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/models"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("a@b.com", "alice", []byte("hash"), []byte("salt"), "USER").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("u-1", now))

	user, err := repo.Create(context.Background(), &models.User{
		Email:        "a@b.com",
		Username:     "alice",
		PasswordHash: []byte("hash"),
		Salt:         []byte("salt"),
		Audience:     "USER",
	})
	require.NoError(t, err)
	require.Equal(t, "u-1", user.ID)
	require.Equal(t, now, user.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	_, err := repo.Create(context.Background(), &models.User{Email: "a@b.com"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestGetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db)

	cols := []string{"id", "email", "username", "password_hash", "salt", "audience", "service_id", "created_at"}
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("u-1", "a@b.com", "alice", []byte("hash"), []byte("salt"), "USER", nil, time.Now()))

	user, err := repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.Equal(t, "u-1", user.ID)
	require.Equal(t, "alice", user.Username)
	require.Empty(t, user.ServiceID)
}

func TestGetByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("missing@b.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "missing@b.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdatePassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("u-1", []byte("newhash"), []byte("newsalt")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePassword(context.Background(), "u-1", []byte("newhash"), []byte("newsalt"))
	require.NoError(t, err)
}

func TestUpdatePassword_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE users SET password_hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), "missing", []byte("h"), []byte("s"))
	require.ErrorIs(t, err, common.ErrorNotFound)
}
