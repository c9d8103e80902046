package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	Name       string
	Price      decimal.Decimal
	Stock      int
	CategoryID string
	CallerID   *string
}

type UpdateProductInput struct {
	ID         string
	Name       string
	Price      decimal.Decimal
	Stock      int
	CategoryID string
	CallerID   *string
}
