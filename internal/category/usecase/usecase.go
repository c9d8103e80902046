package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/pagination"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SortFields lists the columns a category listing may be ordered by.
var SortFields = pagination.NewSortFields("name", "created_at", "modified_at")

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
	now    func() time.Time
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, req pagination.Request) (*pagination.Result[model.Category], error) {
	params := pagination.Sanitize(req.Page, req.PerPage)

	filters := &dto.CategoryFilters{
		Search:  req.Search,
		SortBy:  pagination.ResolveSortField(req.SortBy, SortFields, pagination.DefaultSortBy),
		SortDir: pagination.Direction(req.SortDir),
		Limit:   params.PerPage,
		Offset:  params.Offset,
	}

	categories, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []model.Category{}
	}

	return &pagination.Result[model.Category]{
		Data: categories,
		Meta: pagination.BuildMeta(req.BasePath, req.Query, count, params.Page, params.PerPage),
	}, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	cat := &model.Category{
		ID:    uuid.New().String(),
		Name:  input.Name,
		Audit: model.NewAudit(input.CallerID, uc.now()),
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		uc.logger.Error("failed to create category", zap.Error(err))
		return nil, err
	}

	return uc.repo.FindByID(ctx, cat.ID)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat := &model.Category{ID: input.ID, Name: input.Name}
	cat.Touch(input.CallerID, uc.now())

	updated, err := uc.repo.Update(ctx, cat)
	if err != nil {
		uc.logger.Error("failed to update category", zap.String("category_id", input.ID), zap.Error(err))
		return nil, err
	}
	if !updated {
		return nil, nil
	}

	return uc.repo.FindByID(ctx, input.ID)
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string, callerID *string) (bool, error) {
	deleted, err := uc.repo.SoftDelete(ctx, model.NewDeletion(id, callerID, uc.now()))
	if err != nil {
		uc.logger.Error("failed to delete category", zap.String("category_id", id), zap.Error(err))
		return false, err
	}
	return deleted, nil
}
