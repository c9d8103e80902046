package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rowColumns = []string{
	"id", "name", "email", "password",
	"created_at", "created_by", "modified_at", "modified_by", "deleted_at", "deleted_by",
}

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestFindByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, name, email, password, .+ FROM users WHERE lower\(email\) = lower\(\$1\) AND deleted_at IS NULL LIMIT 1`).
		WithArgs("Admin@Example.com").
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow("u-1", "Admin", "admin@example.com", "$2a$10$hash", now, nil, now, nil, nil, nil))

	u, err := repo.FindByEmail(context.Background(), "Admin@Example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "$2a$10$hash", u.Password)
}

func TestFindByIDMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM users WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs("u-404").
		WillReturnRows(sqlmock.NewRows(rowColumns))

	u, err := repo.FindByID(context.Background(), "u-404")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestFindByIDError(t *testing.T) {
	repo, mock := newMockRepo(t)
	boom := errors.New("timeout")

	mock.ExpectQuery(`FROM users`).WillReturnError(boom)

	_, err := repo.FindByID(context.Background(), "u-1")
	assert.ErrorIs(t, err, boom)
}

func TestCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	u := &model.User{ID: "u-1", Name: "Admin", Email: "admin@example.com", Password: "hash", Audit: model.NewAudit(nil, now)}

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("u-1", "Admin", "admin@example.com", "hash", now, nil, now, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}
