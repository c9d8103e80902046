package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const columns = `id, name, email, password, created_at, created_by, modified_at, modified_by, deleted_at, deleted_by`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (id, name, email, password, created_at, created_by, modified_at, modified_by, deleted_at, deleted_by)
        VALUES (:id, :name, :email, :password, :created_at, :created_by, :modified_at, :modified_by, NULL, NULL)
    `
	_, err := r.DB.NamedExecContext(ctx, query, u)
	return err
}

func (r *PGRepository) findOne(ctx context.Context, where string, arg string) (*model.User, error) {
	var user model.User
	query := `SELECT ` + columns + ` FROM users WHERE ` + where + ` AND deleted_at IS NULL LIMIT 1`
	if err := r.DB.GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail matches case-insensitively.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "lower(email) = lower($1)", email)
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, "id = $1", id)
}
