package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const columns = `id, name, created_at, created_by, modified_at, modified_by, deleted_at, deleted_by`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, name, created_at, created_by, modified_at, modified_by, deleted_at, deleted_by)
        VALUES (:id, :name, :created_at, :created_by, :modified_at, :modified_by, NULL, NULL)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	query := `SELECT ` + columns + ` FROM categories WHERE id = $1 AND deleted_at IS NULL LIMIT 1`
	err := r.DB.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	conditions := []string{"deleted_at IS NULL"}
	args := map[string]interface{}{}

	if f.Search != "" {
		conditions = append(conditions, "name ILIKE :search")
		args["search"] = database.ContainsPattern(f.Search)
	}
	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	// Count and page are separate statements; they may disagree under concurrent writes.
	count, err := database.NamedCount(ctx, r.DB, "SELECT count(*) FROM categories"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM categories%s ORDER BY %s %s LIMIT :limit OFFSET :offset",
		columns, whereClause, f.SortBy, f.SortDir)
	args["limit"] = f.Limit
	args["offset"] = f.Offset

	categories := []model.Category{}
	if err := database.NamedSelect(ctx, r.DB, &categories, query, args); err != nil {
		return nil, 0, err
	}
	return categories, count, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) (bool, error) {
	query := `
        UPDATE categories
        SET name = :name,
            modified_at = :modified_at,
            modified_by = :modified_by
        WHERE id = :id AND deleted_at IS NULL
    `
	affected, err := database.AffectedRows(r.DB.NamedExecContext(ctx, query, c))
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PGRepository) SoftDelete(ctx context.Context, d model.Deletion) (bool, error) {
	query := `
        UPDATE categories
        SET deleted_at = :deleted_at,
            deleted_by = :deleted_by
        WHERE id = :id AND deleted_at IS NULL
    `
	affected, err := database.AffectedRows(r.DB.NamedExecContext(ctx, query, d))
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
