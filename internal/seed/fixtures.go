package seed

import (
	"context"
	"embed"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/user"
	userdto "github.com/fekuna/omnipos-catalog-service/internal/user/dto"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

//go:embed data/*.json
var fixtures embed.FS

type UserFixture struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CategoryFixture struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProductFixture struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	CategoryID string          `json:"category_id"`
}

func readFixture[T any](name string) ([]T, error) {
	raw, err := fixtures.ReadFile("data/" + name)
	if err != nil {
		return nil, err
	}
	var rows []T
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

type Deps struct {
	DB         *sqlx.DB
	Users      user.UseCase
	Categories category.Repository
	Products   product.Repository
	Now        func() time.Time
}

// Steps returns the fixture steps in dependency order. Rows are stamped with
// the seed time and a null actor.
func Steps(d Deps) []Step {
	now := d.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	return []Step{
		{
			Name: "0001-seed-users",
			Up: func(ctx context.Context) error {
				rows, err := readFixture[UserFixture]("users.json")
				if err != nil {
					return err
				}
				for _, u := range rows {
					if _, err := d.Users.Register(ctx, &userdto.RegisterInput{
						ID: u.ID, Name: u.Name, Email: u.Email, Password: u.Password,
					}); err != nil {
						return err
					}
				}
				return nil
			},
			Down: func(ctx context.Context) error {
				rows, err := readFixture[UserFixture]("users.json")
				if err != nil {
					return err
				}
				return deleteByID(ctx, d.DB, "users", ids(rows, func(u UserFixture) string { return u.ID }))
			},
		},
		{
			Name: "0002-seed-categories",
			Up: func(ctx context.Context) error {
				rows, err := readFixture[CategoryFixture]("categories.json")
				if err != nil {
					return err
				}
				for _, c := range rows {
					if err := d.Categories.Create(ctx, &model.Category{
						ID: c.ID, Name: c.Name, Audit: model.NewAudit(nil, now()),
					}); err != nil {
						return err
					}
				}
				return nil
			},
			Down: func(ctx context.Context) error {
				rows, err := readFixture[CategoryFixture]("categories.json")
				if err != nil {
					return err
				}
				return deleteByID(ctx, d.DB, "categories", ids(rows, func(c CategoryFixture) string { return c.ID }))
			},
		},
		{
			Name: "0003-seed-products",
			Up: func(ctx context.Context) error {
				rows, err := readFixture[ProductFixture]("products.json")
				if err != nil {
					return err
				}
				for _, p := range rows {
					if err := d.Products.Create(ctx, &model.Product{
						ID:         p.ID,
						Name:       p.Name,
						Price:      p.Price,
						Stock:      p.Stock,
						CategoryID: p.CategoryID,
						Audit:      model.NewAudit(nil, now()),
					}); err != nil {
						return err
					}
				}
				return nil
			},
			Down: func(ctx context.Context) error {
				rows, err := readFixture[ProductFixture]("products.json")
				if err != nil {
					return err
				}
				return deleteByID(ctx, d.DB, "products", ids(rows, func(p ProductFixture) string { return p.ID }))
			},
		},
	}
}

func ids[T any](rows []T, id func(T) string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, id(r))
	}
	return out
}

// deleteByID hard-deletes fixture rows. table is always a literal from Steps.
func deleteByID(ctx context.Context, db *sqlx.DB, table string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM "+table+" WHERE id IN (?)", ids)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, db.Rebind(query), args...)
	return err
}
