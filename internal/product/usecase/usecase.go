package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/pagination"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SortFields lists the product columns a listing may be ordered by.
var SortFields = pagination.NewSortFields("name", "price", "stock", "created_at", "modified_at")

type productUseCase struct {
	repo   product.Repository
	logger logger.ZapLogger
	now    func() time.Time
}

func NewProductUseCase(repo product.Repository, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (uc *productUseCase) ListProducts(ctx context.Context, req pagination.Request) (*pagination.Result[model.Product], error) {
	params := pagination.Sanitize(req.Page, req.PerPage)

	products, count, err := uc.repo.FindAll(ctx, &dto.ProductFilters{
		Search:  req.Search,
		SortBy:  pagination.ResolveSortField(req.SortBy, SortFields, pagination.DefaultSortBy),
		SortDir: pagination.Direction(req.SortDir),
		Limit:   params.PerPage,
		Offset:  params.Offset,
	})
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}

	return &pagination.Result[model.Product]{
		Data: products,
		Meta: pagination.BuildMeta(req.BasePath, req.Query, count, params.Page, params.PerPage),
	}, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	p := &model.Product{
		ID:         uuid.New().String(),
		Name:       input.Name,
		Price:      input.Price,
		Stock:      input.Stock,
		CategoryID: input.CategoryID,
		Audit:      model.NewAudit(input.CallerID, uc.now()),
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		uc.logger.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	return uc.repo.FindByID(ctx, p.ID)
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p := &model.Product{
		ID:         input.ID,
		Name:       input.Name,
		Price:      input.Price,
		Stock:      input.Stock,
		CategoryID: input.CategoryID,
	}
	p.Touch(input.CallerID, uc.now())

	updated, err := uc.repo.Update(ctx, p)
	if err != nil {
		uc.logger.Error("failed to update product", zap.String("product_id", input.ID), zap.Error(err))
		return nil, err
	}
	if !updated {
		return nil, nil
	}

	return uc.repo.FindByID(ctx, input.ID)
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string, callerID *string) (bool, error) {
	deleted, err := uc.repo.SoftDelete(ctx, model.NewDeletion(id, callerID, uc.now()))
	if err != nil {
		uc.logger.Error("failed to delete product", zap.String("product_id", id), zap.Error(err))
		return false, err
	}
	return deleted, nil
}

// AdjustStock moves a product's stock by delta. It returns false when the
// product is gone or the stock would drop below zero.
func (uc *productUseCase) AdjustStock(ctx context.Context, productID string, delta int, callerID *string) (bool, error) {
	ok, err := uc.repo.AdjustStock(ctx, &dto.StockAdjustment{
		ProductID:  productID,
		Delta:      delta,
		ModifiedAt: uc.now(),
		ModifiedBy: callerID,
	})
	if err != nil {
		uc.logger.Error("failed to adjust stock",
			zap.String("product_id", productID),
			zap.Int("delta", delta),
			zap.Error(err),
		)
		return false, err
	}
	if !ok {
		uc.logger.Warn("stock adjustment rejected",
			zap.String("product_id", productID),
			zap.Int("delta", delta),
		)
	}
	return ok, nil
}
