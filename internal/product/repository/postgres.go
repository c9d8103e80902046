package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

const (
	selectColumns = `p.id, p.name, p.price, p.stock, p.category_id, c.name AS category_name,
            p.created_at, p.created_by, p.modified_at, p.modified_by, p.deleted_at, p.deleted_by`
	fromJoin = ` FROM products p JOIN categories c ON c.id = p.category_id`
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, name, price, stock, category_id,
            created_at, created_by, modified_at, modified_by, deleted_at, deleted_by
        )
        VALUES (
            :id, :name, :price, :stock, :category_id,
            :created_at, :created_by, :modified_at, :modified_by, NULL, NULL
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT ` + selectColumns + fromJoin +
		` WHERE p.id = $1 AND p.deleted_at IS NULL AND c.deleted_at IS NULL LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	conditions := []string{"p.deleted_at IS NULL", "c.deleted_at IS NULL"}
	args := map[string]interface{}{}

	if f.Search != "" {
		conditions = append(conditions, "(p.name ILIKE :search OR c.name ILIKE :search)")
		args["search"] = database.ContainsPattern(f.Search)
	}
	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	count, err := database.NamedCount(ctx, r.DB, "SELECT count(*)"+fromJoin+whereClause, args)
	if err != nil {
		return nil, 0, err
	}

	// SortBy is already resolved against the allow-list.
	query := fmt.Sprintf("SELECT %s%s%s ORDER BY p.%s %s LIMIT :limit OFFSET :offset",
		selectColumns, fromJoin, whereClause, f.SortBy, f.SortDir)
	args["limit"] = f.Limit
	args["offset"] = f.Offset

	products := []model.Product{}
	if err := database.NamedSelect(ctx, r.DB, &products, query, args); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) (bool, error) {
	query := `
        UPDATE products
        SET name = :name,
            price = :price,
            stock = :stock,
            category_id = :category_id,
            modified_at = :modified_at,
            modified_by = :modified_by
        WHERE id = :id AND deleted_at IS NULL
    `
	affected, err := database.AffectedRows(r.DB.NamedExecContext(ctx, query, p))
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PGRepository) SoftDelete(ctx context.Context, d model.Deletion) (bool, error) {
	query := `
        UPDATE products
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

// AdjustStock applies delta in a single statement. It reports false when the
// product is not visible (own or category soft-deleted) or would go below zero.
func (r *PGRepository) AdjustStock(ctx context.Context, adj *dto.StockAdjustment) (bool, error) {
	query := `
        UPDATE products
        SET stock = stock + :delta,
            modified_at = :modified_at,
            modified_by = :modified_by
        WHERE id = :id
          AND deleted_at IS NULL
          AND category_id IN (SELECT id FROM categories WHERE deleted_at IS NULL)
          AND stock + :delta >= 0
    `
	affected, err := database.AffectedRows(r.DB.NamedExecContext(ctx, query, adj))
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
