package dto

import "time"

type ProductFilters struct {
	Search  string // Matched against product and category names
	SortBy  string
	SortDir string // ASC or DESC
	Limit   int
	Offset  int
}

type StockAdjustment struct {
	ProductID  string    `db:"id"`
	Delta      int       `db:"delta"`
	ModifiedAt time.Time `db:"modified_at"`
	ModifiedBy *string   `db:"modified_by"`
}
