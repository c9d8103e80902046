package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%electr%", ContainsPattern("electr"))
	assert.Equal(t, `%50\%\_off\\%`, ContainsPattern(`50%_off\`))
}

func TestNamedCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	sdb := sqlx.NewDb(db, "pgx")

	mock.ExpectQuery(`SELECT count\(\*\) FROM categories WHERE name ILIKE \$1`).
		WithArgs("%a%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := NamedCount(context.Background(), sdb,
		"SELECT count(*) FROM categories WHERE name ILIKE :search",
		map[string]interface{}{"search": "%a%"})

	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAffectedRows(t *testing.T) {
	n, err := AffectedRows(sqlmock.NewResult(0, 3), nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	boom := errors.New("boom")
	_, err = AffectedRows(nil, boom)
	assert.ErrorIs(t, err, boom)
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "products_category_id_fkey"}

	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("insert: %w", fk)))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(errors.New("boom")))
	assert.False(t, IsForeignKeyViolation(nil))
}
