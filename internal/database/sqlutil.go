package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

const foreignKeyViolation = "23503"

// NamedCount runs a named COUNT(*) query and returns the single value.
func NamedCount(ctx context.Context, db *sqlx.DB, query string, arg interface{}) (int, error) {
	rows, err := db.NamedQueryContext(ctx, query, arg)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, err
		}
	}
	return count, rows.Err()
}

// NamedSelect prepares a named query and scans every row into dest.
func NamedSelect(ctx context.Context, db *sqlx.DB, dest interface{}, query string, arg interface{}) error {
	nstmt, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer nstmt.Close()

	return nstmt.SelectContext(ctx, dest, arg)
}

// AffectedRows unwraps the affected-row count of a write.
func AffectedRows(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE/ILIKE operand matching term anywhere,
// with the term's own wildcard characters escaped.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// IsForeignKeyViolation reports whether err is a Postgres foreign key
// violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
