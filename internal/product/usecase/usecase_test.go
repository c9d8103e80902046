package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/pagination"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, p *model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *mockRepo) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Int(1), args.Error(2)
}

func (m *mockRepo) Update(ctx context.Context, p *model.Product) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) SoftDelete(ctx context.Context, d model.Deletion) (bool, error) {
	args := m.Called(ctx, d)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) AdjustStock(ctx context.Context, adj *dto.StockAdjustment) (bool, error) {
	args := m.Called(ctx, adj)
	return args.Bool(0), args.Error(1)
}

var fixedNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func newTestUseCase(repo *mockRepo) *productUseCase {
	uc := NewProductUseCase(repo, logger.NewNop()).(*productUseCase)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestListProductsResolvesSort(t *testing.T) {
	tests := []struct {
		sortBy, sortDir string
		wantBy, wantDir string
	}{
		{"price", "asc", "price", "ASC"},
		{"stock", "DESC", "stock", "DESC"},
		{"category_name", "asc", "created_at", "ASC"},
		{"price; DROP TABLE products", "", "created_at", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			repo := &mockRepo{}
			uc := newTestUseCase(repo)

			repo.On("FindAll", mock.Anything, &dto.ProductFilters{
				SortBy: tt.wantBy, SortDir: tt.wantDir, Limit: 10, Offset: 0,
			}).Return([]model.Product{}, 0, nil)

			res, err := uc.ListProducts(context.Background(), pagination.Request{
				Page: 1, PerPage: 10, SortBy: tt.sortBy, SortDir: tt.sortDir,
				BasePath: "http://localhost/api/products",
			})
			require.NoError(t, err)
			assert.Equal(t, 0, res.Meta.From)
			assert.Equal(t, 1, res.Meta.LastPage)
			repo.AssertExpectations(t)
		})
	}
}

func TestListProductsPastLastPage(t *testing.T) {
	repo := &mockRepo{}
	uc := newTestUseCase(repo)

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f *dto.ProductFilters) bool {
		return f.Offset == 90 && f.Limit == 10
	})).Return(nil, 25, nil)

	res, err := uc.ListProducts(context.Background(), pagination.Request{Page: 10, PerPage: 10})
	require.NoError(t, err)
	assert.Empty(t, res.Data)
	assert.Equal(t, 3, res.Meta.CurrentPage)
	assert.Equal(t, 3, res.Meta.LastPage)
}

func TestCreateProduct(t *testing.T) {
	repo := &mockRepo{}
	uc := newTestUseCase(repo)
	ctx := context.Background()
	price := decimal.RequireFromString("19.99")

	repo.On("Create", ctx, mock.MatchedBy(func(p *model.Product) bool {
		return p.ID != "" && p.Name == "Mug" && p.Price.Equal(price) && p.Stock == 0 &&
			p.CategoryID == "c-1" && p.CreatedAt.Equal(fixedNow) && p.CreatedBy == nil && p.DeletedAt == nil
	})).Return(nil)
	repo.On("FindByID", ctx, mock.AnythingOfType("string")).
		Return(&model.Product{Name: "Mug", CategoryName: "Kitchen"}, nil)

	got, err := uc.CreateProduct(ctx, &dto.CreateProductInput{Name: "Mug", Price: price, CategoryID: "c-1"})
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", got.CategoryName)
	repo.AssertExpectations(t)
}

func TestCreateProductStoreErrorPassesThrough(t *testing.T) {
	repo := &mockRepo{}
	uc := newTestUseCase(repo)
	fk := errors.New("violates foreign key constraint")

	repo.On("Create", mock.Anything, mock.Anything).Return(fk)

	got, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{Name: "Mug", CategoryID: "c-404"})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, fk)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("missing product", func(t *testing.T) {
		repo := &mockRepo{}
		uc := newTestUseCase(repo)
			repo.On("Update", ctx, mock.Anything).Return(false, nil)

		got, err := uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: "p-1", Name: "Mug", CategoryID: "c-1"})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("deleted product with unknown category", func(t *testing.T) {
		repo := &mockRepo{}
		uc := newTestUseCase(repo)
		repo.On("Update", ctx, mock.MatchedBy(func(p *model.Product) bool {
			return p.ID == "p-deleted" && p.CategoryID == "c-gone"
		})).Return(false, nil)

		got, err := uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: "p-deleted", Name: "Mug", CategoryID: "c-gone"})
		require.NoError(t, err)
		assert.Nil(t, got)
		repo.AssertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		repo := &mockRepo{}
		uc := newTestUseCase(repo)
		boom := errors.New("fk violation")
			repo.On("Update", ctx, mock.Anything).Return(false, boom)

		_, err := uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: "p-1", CategoryID: "c-1"})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("stamps modification", func(t *testing.T) {
		repo := &mockRepo{}
		uc := newTestUseCase(repo)
		caller := model.CallerID("u-2")
			repo.On("Update", ctx, mock.MatchedBy(func(p *model.Product) bool {
			return p.ModifiedAt.Equal(fixedNow) && p.ModifiedBy == caller && p.CreatedAt.IsZero() && p.Stock == 7
		})).Return(true, nil)
		repo.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1", Stock: 7}, nil)

		got, err := uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: "p-1", Stock: 7, CategoryID: "c-1", CallerID: caller})
		require.NoError(t, err)
		assert.Equal(t, 7, got.Stock)
	})
}

func TestDeleteProduct(t *testing.T) {
	repo := &mockRepo{}
	uc := newTestUseCase(repo)

	repo.On("SoftDelete", mock.Anything, model.NewDeletion("p-1", nil, fixedNow)).Return(false, nil)

	deleted, err := uc.DeleteProduct(context.Background(), "p-1", nil)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestAdjustStock(t *testing.T) {
	repo := &mockRepo{}
	uc := newTestUseCase(repo)

	repo.On("AdjustStock", mock.Anything, &dto.StockAdjustment{
		ProductID: "p-1", Delta: -3, ModifiedAt: fixedNow,
	}).Return(false, nil)

	ok, err := uc.AdjustStock(context.Background(), "p-1", -3, nil)
	require.NoError(t, err)
	assert.False(t, ok)
	repo.AssertExpectations(t)
}
